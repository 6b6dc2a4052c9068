//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for lootbox.
package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lootbox/lootbox-admin/internal/config"
	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/metrics"
	"github.com/lootbox/lootbox-admin/pkg/version"
)

var (
	// Global flags
	cfgFile   string
	dbHost    string
	dbPort    int
	dbUser    string
	dbPass    string
	dbName    string
	auditUser int64
	logLevel  string
	logFile   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "lootbox",
		Short: "Administration backend for the LootBox store",
		Long: `lootbox administers the LootBox geek merchandise store database.

It creates the schema and synthetic seed data, serves the customer,
product, order, inventory, promotion and audit operations as a JSON
API, and runs the predefined analytic views and queries from the
command line.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./lootbox.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbHost, "host", "",
		"database host")
	rootCmd.PersistentFlags().IntVar(&dbPort, "port", 0,
		"database port")
	rootCmd.PersistentFlags().StringVar(&dbUser, "user", "",
		"database user")
	rootCmd.PersistentFlags().StringVar(&dbPass, "password", "",
		"database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "",
		"database name")
	rootCmd.PersistentFlags().Int64Var(&auditUser, "audit-user", 0,
		"user id recorded by audit triggers for changes made through this process")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write JSON logs to this file, rotated by size")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Database.Host = dbHost
	}
	if flags.Changed("port") {
		cfg.Database.Port = dbPort
	}
	if flags.Changed("user") {
		cfg.Database.User = dbUser
	}
	if flags.Changed("password") {
		cfg.Database.Password = dbPass
	}
	if flags.Changed("database") {
		cfg.Database.Name = dbName
	}
	if flags.Changed("audit-user") {
		cfg.Database.AuditUserID = auditUser
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		File:   cfg.LogFile,
	})

	return nil
}

// newExecutor wires the per-call connector to an executor. reg may be nil.
func newExecutor(reg prometheus.Registerer) (*db.Executor, *db.Connector, error) {
	connector, err := db.NewConnector(cfg.Database.DSN(), cfg.Database.AuditUserID)
	if err != nil {
		return nil, nil, err
	}
	return db.NewExecutor(connector, metrics.NewQueryMetrics(reg)), connector, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
