package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/config"
	"github.com/groblegark/kforms/internal/store/postgres"
	formsync "github.com/groblegark/kforms/internal/sync"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all forms, schemas, and records as JSONL to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		return formsync.ExportJSONL(cmd.Context(), store, os.Stdout)
	},
}
