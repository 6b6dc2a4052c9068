//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package main is the entry point for lootbox.
package main

import (
	"fmt"
	"os"

	"github.com/lootbox/lootbox-admin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
