package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"housing-dashboard/services"
	"housing-dashboard/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the JSON data file into PostgreSQL",
	Long: `Read and clean the JSON data file, then replace the contents of the
house_sales table with it. Afterwards the other commands can read from
PostgreSQL with --source postgres.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	src := storage.NewJSONSource(cfg.DataPath, services.NewCleaner(logger))
	records, err := src.Load(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Error("All rows were dropped during cleaning. Nothing to import.")
		return fmt.Errorf("import: %w", services.ErrEmptyDataset)
	}
	logger.Info("Cleaned dataset: %d sales", len(records))

	store, err := openPostgres(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var w storage.RecordWriter = store
	if err := w.Write(ctx, records); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.Info("Clean sales stored in PostgreSQL (table: house_sales)")
	return nil
}
