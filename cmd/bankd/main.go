// cmd/bankd runs the central bank HTTP service: it loads configuration,
// restores state from the most recent snapshot or replays the ledger
// from scratch, seeds @root, and serves spec.md §6's HTTP contract
// until asked to stop.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"centralbank/internal/backup"
	"centralbank/internal/bootstrap"
	"centralbank/internal/config"
	"centralbank/internal/domain"
	"centralbank/internal/engine"
	"centralbank/internal/ledger"
	"centralbank/internal/service"
)

func main() {
	configPath := flag.String("config", "bankd.json", "path to the JSON config document")
	envPath := flag.String("env", ".env", "path to an optional .env overlay")
	snapshotEvery := flag.String("snapshot-every", "@every 5m", "cron spec for periodic full-state snapshots")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(*configPath, *envPath, *snapshotEvery, logger); err != nil {
		logger.Fatal("bankd exited", zap.Error(err))
	}
}

func run(configPath, envPath, snapshotEvery string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := loadState(cfg, store, logger)
	if err != nil {
		return err
	}

	tokens, err := bootstrap.EnsureRoot(state)
	if err != nil {
		return err
	}
	bootstrap.PrintRootTokens(os.Stdout, state, tokens)

	processor := ledger.NewProcessor(state, store)
	envelope := service.NewEnvelope(processor, highestTransactionId(store, logger), logger)

	broadcaster := service.NewBroadcaster(logger)
	envelope.OnApplied(broadcaster.Publish)

	var scheduler *backup.Scheduler
	if cfg.SnapshotPath != "" {
		// Snapshot reads go through the envelope's own reader/writer
		// lock, the same one engine.Apply's writes take, so there is
		// exactly one lock discipline over state (spec.md §5).
		scheduler = backup.NewScheduler(envelope.Snapshot, cfg.SnapshotPath, logger)
		if err := scheduler.Start(snapshotEvery); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	limiter := service.NewRateLimiter(50, 100)
	handler := service.Router(envelope, broadcaster, logger, limiter)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: handler,
	}

	group, ctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		logger.Info("bankd listening", zap.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-ctx.Done():
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("bankd shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func openStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		return ledger.NewSQLiteStore(cfg.StorePath)
	default:
		return ledger.NewJSONLStore(cfg.StorePath)
	}
}

// loadState prefers resuming from cfg.SnapshotPath, the fast-restart
// cache backup.Scheduler maintains, replaying only the ledger entries
// newer than the snapshot's watermark. If no usable snapshot exists it
// falls back to a full cold replay of the ledger, per the package doc
// comment on internal/backup.
func loadState(cfg *config.Config, store ledger.Store, logger *zap.Logger) (*engine.State, error) {
	if cfg.SnapshotPath != "" {
		snap, err := backup.Load(cfg.SnapshotPath)
		switch {
		case err == nil:
			state := backup.FromSnapshot(snap)
			if err := ledger.LoadSince(state, store, snap.Meta.LastTransactionId); err != nil {
				return nil, err
			}
			logger.Info("resumed from snapshot",
				zap.String("path", cfg.SnapshotPath),
				zap.Uint64("last_transaction_id", uint64(snap.Meta.LastTransactionId)))
			return state, nil
		case os.IsNotExist(err):
			// No snapshot yet, e.g. first boot — fall through to a cold
			// replay below without logging this as a problem.
		default:
			logger.Warn("snapshot present but unreadable, falling back to full ledger replay", zap.Error(err))
		}
	}

	// @root is seeded before replay so that its own ledger entries
	// authenticate; its boot token is minted afterwards by EnsureRoot.
	state := engine.NewState()
	state.Accounts[bootstrap.RootAccount] = engine.NewAccountData(domain.NewScopeSet(domain.ScopeUnbounded))
	if err := ledger.Load(state, store); err != nil {
		return nil, err
	}
	return state, nil
}

// highestTransactionId scans the store once more for the counter seed,
// since loadState folds transactions into state without tracking the
// highest id it saw.
func highestTransactionId(store ledger.Store, logger *zap.Logger) uint64 {
	txs, err := store.Scan()
	if err != nil {
		logger.Warn("could not determine starting transaction id, starting from 0", zap.Error(err))
		return 0
	}
	var max uint64
	for _, tx := range txs {
		if id := uint64(tx.Id); id > max {
			max = id
		}
	}
	return max
}
