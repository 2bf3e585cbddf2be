package tracker

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pingcraft/pingcraft/internal/config"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol/status"
)

const statusDoc = `{
	"version": {"name": "1.20.4", "protocol": 765},
	"players": {"max": 20, "online": 3},
	"description": {"text": "A Minecraft Server"}
}`

// statusListener accepts connections, consumes the handshake and the
// request and answers with a fixed status document.
func statusListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer func() { _ = conn.Close() }()
				r := bufio.NewReader(conn)
				for i := 0; i < 2; i++ {
					var pk protocol.Packet
					if _, err := pk.ReadFrom(r); err != nil {
						return
					}
				}
				resp := status.ClientBoundResponse{
					JSONResponse: protocol.String(statusDoc),
				}
				var pk protocol.Packet
				if err := resp.Marshal(&pk); err != nil {
					return
				}
				_, _ = pk.WriteTo(conn)
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func newTestTracker(addr string) *Tracker {
	cfg := config.New(
		config.AddServer("local", addr),
	)
	cfg.ResolveSRV = false
	cfg.Timeout = config.Duration(2 * time.Second)
	return New(cfg, zerolog.Nop(), nil)
}

func TestTracker_Sweep(t *testing.T) {
	addr := statusListener(t)
	tr := newTestTracker(addr)

	tr.Sweep(context.Background())

	res, ok := tr.Result("local")
	if !ok {
		t.Fatal("Result(local) missing")
	}
	obs := res.Observation
	if !obs.Online {
		t.Fatalf("Online = false; error = %q", obs.Error)
	}
	if obs.Version != "1.20.4" || obs.Protocol != 765 {
		t.Errorf("version = %q/%d; want 1.20.4/765", obs.Version, obs.Protocol)
	}
	if obs.Players != 3 || obs.MaxPlayer != 20 {
		t.Errorf("players = %d/%d; want 3/20", obs.Players, obs.MaxPlayer)
	}
	if obs.MOTD != "A Minecraft Server" {
		t.Errorf("MOTD = %q; want %q", obs.MOTD, "A Minecraft Server")
	}
}

func TestTracker_Sweep_unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	tr := newTestTracker(addr)
	tr.Sweep(context.Background())

	res, ok := tr.Result("local")
	if !ok {
		t.Fatal("Result(local) missing")
	}
	if res.Observation.Online {
		t.Error("Online = true; want false")
	}
	if res.Observation.Error == "" {
		t.Error("Error is empty; want dial failure")
	}
}

func TestTracker_SetConfig_dropsRemovedServers(t *testing.T) {
	addr := statusListener(t)
	tr := newTestTracker(addr)
	tr.Sweep(context.Background())

	if _, ok := tr.Result("local"); !ok {
		t.Fatal("Result(local) missing after sweep")
	}

	tr.SetConfig(config.New(config.AddServer("other", addr)))

	if _, ok := tr.Result("local"); ok {
		t.Error("Result(local) still present after removal")
	}
	if results := tr.Results(); len(results) != 0 {
		t.Errorf("len(Results()) = %d; want 0", len(results))
	}
}
