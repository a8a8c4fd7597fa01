package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/redhat-data-and-ai/adlookup/internal/controller/periodicjobs"
	"github.com/redhat-data-and-ai/adlookup/internal/httpapi/handlers"
	"github.com/redhat-data-and-ai/adlookup/internal/httpapi/server"
	"github.com/redhat-data-and-ai/adlookup/pkg/cache"
	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
	"github.com/redhat-data-and-ai/adlookup/pkg/config"
	"github.com/redhat-data-and-ai/adlookup/pkg/directory"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the account status sweep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts.appConfig)
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := ldap.InitLdap(cfg.LDAP)
	if err != nil {
		return err
	}
	profiles := directory.NewProfileService(client, cfg.LDAP.BaseDN).WithEmail()
	accounts := directory.NewAccountService(client, cfg.LDAP.BaseDN)

	mgr := periodicjobs.NewPeriodicTaskManager()
	var statuses *cache.StatusStore
	if cfg.Sweep.Enabled {
		c, err := cache.New(&cfg.Cache)
		if err != nil {
			return err
		}
		ttl := cfg.Sweep.StatusTTL
		if ttl == 0 {
			ttl = cache.NoExpiration
		}
		statuses = cache.NewStatusStore(c, ttl)
		periodicjobs.NewAccountStatusSweepJob(accounts, statuses, cfg.Sweep.Users, cfg.Sweep.Interval).
			AddToPeriodicTaskManager(mgr)
	}

	logrus.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"sweep":       cfg.Sweep.Enabled,
	}).Info("starting adlookup")

	jobs := mgr.RunAll(ctx)

	h := handlers.NewHandlers(cfg, profiles, accounts, statuses)
	err = server.NewAPIServer(cfg, h).Start(ctx)

	cancel()
	jobs.Wait()
	return err
}
