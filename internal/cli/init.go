//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/schema"
	"github.com/lootbox/lootbox-admin/internal/seed"
)

var (
	initScale        float64
	initSeed         uint64
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a database with schema and seed data",
	Long: `Initialize a PostgreSQL database with the LootBox schema (tables,
views, routines and audit triggers) and synthetic seed data. The scale
parameter multiplies the default row counts; the seed makes the data
reproducible.

Example:
  lootbox init --scale 0.5 --seed 7 --host db.internal`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Float64Var(&initScale, "scale", 0,
		"multiplier for the default row counts (default: 1.0)")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"random seed for reproducible data (default: 42)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if cmd.Flags().Changed("scale") {
		cfg.Init.Scale = initScale
	}
	if cmd.Flags().Changed("seed") {
		cfg.Init.Seed = initSeed
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	logging.Info().
		Str("database", cfg.Database.Name).
		Float64("scale", cfg.Init.Scale).
		Uint64("seed", cfg.Init.Seed).
		Msg("Initializing database")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database.DSN(), 4)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to seed twice unless asked to start over
	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check metadata: %w", err)
	}
	if exists && !cfg.Init.DropExisting {
		meta, _ := db.GetAllMetadata(ctx, pool)
		return fmt.Errorf(
			"database was already initialized (seed %s, scale %s at %s); "+
				"use --drop-existing to reinitialize",
			meta["seed"], meta["scale"], meta["seeded_at"])
	}

	// Drop existing schema if requested
	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := schema.Drop(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	// Create schema
	logging.Info().Msg("Creating schema")
	if err := schema.Create(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Generate data
	seeder := seed.New(seed.Options{Seed: cfg.Init.Seed, Scale: cfg.Init.Scale})
	ds, err := seeder.Generate(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	// Save metadata
	if err := db.SaveMetadata(ctx, pool, db.SeedInfo{Seed: cfg.Init.Seed, Scale: cfg.Init.Scale}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Int("rows", ds.Rows()).
		Int("customers", ds.Counts.Customers).
		Int("products", ds.Counts.Products).
		Int("orders", ds.Counts.Orders).
		Msg("Database initialization complete")

	return nil
}
