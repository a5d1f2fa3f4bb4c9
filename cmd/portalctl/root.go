package main

import (
	"context"
	"fmt"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/blobstore"
	"invest-portal/internal/config"
	"invest-portal/internal/database"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/features/cleanup"
	"invest-portal/internal/features/user"
	"invest-portal/internal/logger"
	"invest-portal/internal/recordstore"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Maintenance commands for the investment portal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSeedAdminCmd())
	cmd.AddCommand(newSweepCmd())
	return cmd
}

func newRegistry(mongodb *database.MongodbDB, blobs blobstore.Store, log *zap.Logger) *attachment.Registry {
	return attachment.NewRegistry(func(collection string) recordstore.Store {
		return recordstore.NewMongoStore(mongodb, collection)
	}, blobs, log, attachment.Schemas()...)
}

// withApp starts a small fx graph, fills targets from it, runs fn and stops the graph.
func withApp(ctx context.Context, fn func() error, targets ...interface{}) error {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			blobstore.NewStore,
			newRegistry,
			audit.NewAuditRepository,
			audit.NewAuditService,
			user.NewUserRepository,
			user.NewUserService,
			cleanup.NewCleanupService,
			func(r user.UserRepository) audit.UserFinder { return r },
		),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn()
}
