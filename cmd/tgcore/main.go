// Command tgcore inspects Telegram boosts, stars, stories and dialogs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/tgcore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tgcore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tgcore/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tgcore/internal/adapters/driven/transport/replay"
	"github.com/custodia-labs/tgcore/internal/adapters/driven/transport/throttle"
	"github.com/custodia-labs/tgcore/internal/adapters/driving/cli"
	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/core/services"
	"github.com/custodia-labs/tgcore/internal/logger"
	"github.com/custodia-labs/tgcore/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(func(flags cli.Flags) (*cli.Services, func(), error) {
		return bootstrap(ctx, flags)
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services from the configuration.
func bootstrap(ctx context.Context, flags cli.Flags) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(flags.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	if flags.Cassette != "" {
		settings.Transport.Cassette = flags.Cassette
	}
	if err := logger.SetLevel(settings.Log.Level); err != nil {
		logger.Warn("ignoring log level %q: %v", settings.Log.Level, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	closers := []func(){cancel}
	shutdown := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	transport, err := openTransport(ctx, settings.Transport)
	if err != nil {
		shutdown()
		return nil, nil, err
	}

	peerStore, closeStore, err := openPeerStore(settings.Storage, flags.ConfigDir)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	metrics.RegisterMetrics()
	opts := services.OptionsFromSettings(settings)
	peerService := services.NewPeerService(peerStore, settings.Decode.SelfID)
	caller := services.NewCaller(transport, peerService, metrics.NewObserver(), opts)

	return &cli.Services{
		Boost:     services.NewBoostService(caller, peerService),
		Payment:   services.NewPaymentService(caller, peerService),
		Story:     services.NewStoryService(caller, peerService),
		Dialog:    services.NewDialogService(caller, peerService),
		GroupCall: services.NewGroupCallService(caller),
		Peer:      peerService,
		Decode:    services.NewDecodeService(opts),
		Settings:  settingsService,
	}, shutdown, nil
}

// openTransport returns nil when no cassette is configured; calls then
// fail with domain.ErrTransportUnavailable.
func openTransport(ctx context.Context, cfg domain.TransportSettings) (driven.Transport, error) {
	if cfg.Cassette == "" {
		return nil, nil
	}

	tape, err := replay.Open(cfg.Cassette)
	if err != nil {
		return nil, fmt.Errorf("opening cassette: %w", err)
	}
	if cfg.Watch {
		if _, err := tape.Watch(ctx); err != nil {
			return nil, err
		}
		logger.Debug("watching cassette %s", cfg.Cassette)
	}

	return throttle.New(tape, cfg.Rate, cfg.Burst), nil
}

func openPeerStore(cfg domain.StorageSettings, configDir string) (driven.PeerStore, func(), error) {
	if cfg.Backend == domain.StorageMemory {
		return memory.NewPeerStore(), func() {}, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" && configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening peer store: %w", err)
	}
	logger.Debug("peer store: %s", store.Path())

	return store.PeerStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing peer store: %v", err)
		}
	}, nil
}
