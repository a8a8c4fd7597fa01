package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/redhat-data-and-ai/adlookup/pkg/config"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

type rootOptions struct {
	env       string
	configDir string

	appConfig *config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "adlookup",
		Short: "adlookup - Active Directory user lookups",
		Long: `adlookup queries an Active Directory server for user profiles and
account state, either once from the command line or as an HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.loadConfig()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "Configuration environment to load on top of the defaults (or set APP_ENV)")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Directory holding the configuration files")

	cmd.AddCommand(
		newServeCmd(opts),
		newProfileCmd(opts),
		newEnabledCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) loadConfig() error {
	logger.Init()

	opts := config.NewDefaultOptions()
	if o.configDir != "" {
		opts = config.NewOptions(config.DefaultConfigType, o.configDir, config.DefaultConfigFileName)
	}

	appConfig, err := config.LoadConfigFrom(opts, o.env)
	if err != nil {
		return err
	}
	if appConfig.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	o.appConfig = appConfig
	return nil
}
