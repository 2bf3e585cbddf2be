package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingcraft.yml")
	writeConfig := func(addr string) {
		t.Helper()
		data := "interval: 30s\nservers:\n  - address: " + addr + "\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("os.WriteFile() error: %v", err)
		}
	}
	writeConfig("a.example.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgCh := make(chan Config, 1)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- Watch(ctx, path, zerolog.Nop(), cfgCh)
	}()

	// Give the watcher a moment to register before touching the file.
	time.Sleep(100 * time.Millisecond)
	writeConfig("b.example.com")

	select {
	case cfg := <-cfgCh:
		if len(cfg.Servers) != 1 || cfg.Servers[0].Address != "b.example.com" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reloaded config")
	}

	cancel()
	select {
	case err := <-watchErr:
		if err != context.Canceled {
			t.Errorf("Watch() error = %v; want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for watcher to stop")
	}
}

func TestWatch_ignoresInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingcraft.yml")
	if err := os.WriteFile(path, []byte("interval: 30s\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgCh := make(chan Config, 1)
	go func() { _ = Watch(ctx, path, zerolog.Nop(), cfgCh) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("interval: -5s\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	select {
	case cfg := <-cfgCh:
		t.Errorf("received config from invalid file: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}
