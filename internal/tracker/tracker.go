// Package tracker periodically polls a set of servers for their status
// and keeps the latest result of each in memory.
package tracker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pingcraft/pingcraft/internal/config"
	"github.com/pingcraft/pingcraft/internal/storage"
	"github.com/pingcraft/pingcraft/pkg/pingcraft"
	"github.com/pingcraft/pingcraft/pkg/pingcraft/protocol"
)

// Result is the outcome of the most recent poll of one server.
type Result struct {
	Observation storage.Observation
	Favicon     []byte
}

// Tracker polls all configured servers on a fixed interval.
type Tracker struct {
	Logger zerolog.Logger
	Repo   *storage.Repository

	mu      sync.RWMutex
	cfg     config.Config
	results map[string]Result
}

func New(cfg config.Config, logger zerolog.Logger, repo *storage.Repository) *Tracker {
	return &Tracker{
		Logger:  logger,
		Repo:    repo,
		cfg:     cfg,
		results: map[string]Result{},
	}
}

// SetConfig swaps the active configuration. The new server set and
// interval take effect on the next sweep.
func (t *Tracker) SetConfig(cfg config.Config) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = cfg

	known := map[string]struct{}{}
	for _, srv := range cfg.Servers {
		known[srv.DisplayName()] = struct{}{}
	}
	for name := range t.results {
		if _, ok := known[name]; !ok {
			delete(t.results, name)
		}
	}
}

func (t *Tracker) interval() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg.Interval.Std()
}

func (t *Tracker) servers() []config.ServerConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()
	srvs := make([]config.ServerConfig, len(t.cfg.Servers))
	copy(srvs, t.cfg.Servers)
	return srvs
}

func (t *Tracker) pinger() *pingcraft.Pinger {
	t.mu.RLock()
	defer t.mu.RUnlock()
	opts := []pingcraft.Option{
		pingcraft.WithProtocolVersion(protocol.Version(t.cfg.ProtocolVersion)),
		pingcraft.WithTimeout(t.cfg.Timeout.Std()),
	}
	if !t.cfg.ResolveSRV {
		opts = append(opts, pingcraft.WithoutSRV())
	}
	return pingcraft.NewPinger(opts...)
}

// Run sweeps all servers immediately and then on every interval tick
// until the context is canceled.
func (t *Tracker) Run(ctx context.Context) error {
	t.Sweep(ctx)

	timer := time.NewTimer(t.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			t.Sweep(ctx)
			timer.Reset(t.interval())
		}
	}
}

// Sweep polls every configured server concurrently and waits for all
// results.
func (t *Tracker) Sweep(ctx context.Context) {
	srvs := t.servers()
	pinger := t.pinger()

	var wg sync.WaitGroup
	for _, srv := range srvs {
		wg.Add(1)
		go func(srv config.ServerConfig) {
			defer wg.Done()
			t.poll(ctx, pinger, srv)
		}(srv)
	}
	wg.Wait()
}

func (t *Tracker) poll(ctx context.Context, pinger *pingcraft.Pinger, srv config.ServerConfig) {
	name := srv.DisplayName()
	logger := t.Logger.With().
		Str("server", name).
		Str("address", srv.Address).
		Logger()

	pong, err := pinger.PingAddr(ctx, srv.Address)

	obs := storage.Observation{
		Name:      name,
		Address:   srv.Address,
		CheckedAt: time.Now().UTC(),
	}
	var favicon []byte
	if err != nil {
		obs.Error = err.Error()
		serverUp.With(labels(name)).Set(0)
		pingFailures.With(labels(name)).Inc()
		logger.Debug().
			Err(err).
			Msg("status exchange failed")
	} else {
		obs.Online = true
		obs.Version = pong.Version
		obs.Protocol = int(pong.Protocol)
		obs.Players = pong.OnlinePlayers
		obs.MaxPlayer = pong.MaxPlayers
		obs.MOTD = pong.MOTD
		obs.Latency = pong.Latency.Milliseconds()
		favicon = pong.Favicon

		serverUp.With(labels(name)).Set(1)
		pingDuration.With(labels(name)).Observe(pong.Latency.Seconds())
		playersOnline.With(labels(name)).Set(float64(pong.OnlinePlayers))
		playersMax.With(labels(name)).Set(float64(pong.MaxPlayers))
		logger.Debug().
			Int("players", pong.OnlinePlayers).
			Dur("latency", pong.Latency).
			Msg("status exchange succeeded")
	}

	t.mu.Lock()
	t.results[name] = Result{Observation: obs, Favicon: favicon}
	t.mu.Unlock()

	if t.Repo != nil {
		if err := t.Repo.Record(obs); err != nil {
			logger.Error().
				Err(err).
				Msg("failed to record observation")
		}
	}
}

func labels(name string) map[string]string {
	return map[string]string{"server": name}
}

// Results returns the latest result of every tracked server, sorted by
// name.
func (t *Tracker) Results() []Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	results := make([]Result, 0, len(t.results))
	for _, res := range t.results {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Observation.Name < results[j].Observation.Name
	})
	return results
}

// Result returns the latest result of one server by name.
func (t *Tracker) Result(name string) (Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res, ok := t.results[name]
	return res, ok
}
