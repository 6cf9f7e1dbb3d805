// cmd/importsheet/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/config"
	"github.com/javajoker/protein-search/internal/database"
	"github.com/javajoker/protein-search/internal/services"
	"github.com/javajoker/protein-search/internal/sheets"
	"github.com/javajoker/protein-search/internal/utils"
)

const (
	sheetIDFlag = "sheet-id"
	gidFlag     = "gid"
	fileFlag    = "file"
	limitFlag   = "limit"
)

func main() {
	if err := newImportCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importsheet",
		Short: "Import protein products from the configured spreadsheet",
		Long: `Import protein products from the configured Google Sheets tab.

Products are matched on brand and model, so running the import again updates
existing rows instead of duplicating them.

Examples:
  importsheet                          # Import from SHEET_ID / SHEET_GID
  importsheet --gid 0                  # Import another tab of the same sheet
  importsheet --file products.xlsx     # Import an exported copy
  importsheet history --limit 5        # Show recent import runs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runImport,
	}

	cmd.Flags().String(sheetIDFlag, "", "Spreadsheet document id (defaults to SHEET_ID)")
	cmd.Flags().String(gidFlag, "", "Spreadsheet tab id (defaults to SHEET_GID)")
	cmd.Flags().String(fileFlag, "", "Read rows from a local .csv or .xlsx export instead of the sheet")

	cmd.AddCommand(newHistoryCommand())
	return cmd
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List the most recent import runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHistory,
	}
	cmd.Flags().Int(limitFlag, 10, "Number of runs to show")
	return cmd
}

func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	utils.SetupLogger(cfg.Log)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}
	return cfg, db, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, db, err := setup()
	if err != nil {
		logrus.WithError(err).Error("Import aborted")
		return err
	}
	defer database.Close(db)

	source, err := resolveSource(cmd, cfg.Sheet)
	if err != nil {
		logrus.WithError(err).Error("Import aborted")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := services.NewImportService(db).Run(ctx, source)
	if err != nil {
		logrus.WithError(err).Error("Import failed")
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Import #%d from %s: %d rows, %d imported, %d skipped, %d failed\n",
		summary.RunID, summary.Location, summary.RowsSeen, summary.Imported, summary.Skipped, summary.Failed)
	return nil
}

func resolveSource(cmd *cobra.Command, sheet config.SheetConfig) (sheets.Source, error) {
	if path, _ := cmd.Flags().GetString(fileFlag); path != "" {
		return sheets.NewFileSource(path)
	}

	sheetID, _ := cmd.Flags().GetString(sheetIDFlag)
	if sheetID == "" {
		sheetID = sheet.SheetID
	}
	gid, _ := cmd.Flags().GetString(gidFlag)
	if gid == "" {
		gid = sheet.GID
	}
	return sheets.NewGVizSource(sheet.BaseURL, sheetID, gid), nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	_, db, err := setup()
	if err != nil {
		logrus.WithError(err).Error("History unavailable")
		return err
	}
	defer database.Close(db)

	limit, _ := cmd.Flags().GetInt(limitFlag)
	runs, err := services.NewImportService(db).LatestRuns(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, run := range runs {
		fmt.Fprintf(out, "#%d\t%s\t%s\t%s\timported=%d skipped=%d failed=%d\t%s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Source, run.Status,
			run.Imported, run.Skipped, run.Failed, run.Location)
	}
	return nil
}
