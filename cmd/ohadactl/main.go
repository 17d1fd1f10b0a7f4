package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/core/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
	"github.com/plancompta/ohada_chart_app/internal/platform/config"
	"github.com/plancompta/ohada_chart_app/internal/repositories/database/pgsql"
	"github.com/plancompta/ohada_chart_app/pkg/database"
	"github.com/spf13/cobra"
)

var (
	tenantID string
	filePath string
	replace  bool
	purge    bool
	nested   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ohadactl",
		Short:        "Administration tool for the OHADA chart-of-accounts service",
		SilenceUsage: true,
	}

	importCmd := &cobra.Command{
		Use:   "import-chart",
		Short: "Import a chart of accounts from a JSON seed file",
		Long: `Imports a chart of accounts for one tenant in a single transaction.

The default format is a JSON array of {"code": "...", "libelle": "..."} seed
records. With --nested, the file holds the legacy nested chart format where
keys encode "<code> <name>" and nesting encodes the parent relationship.`,
		RunE: runImportChart,
	}
	importCmd.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant UUID (required)")
	importCmd.Flags().StringVar(&filePath, "file", "", "Path to the JSON seed file (required)")
	importCmd.Flags().BoolVar(&replace, "replace", false, "Delete the tenant's existing chart before importing")
	importCmd.Flags().BoolVar(&purge, "purge", false, "Like --replace, and report deletion counts")
	importCmd.Flags().BoolVar(&nested, "nested", false, "Treat the file as the legacy nested chart format")
	_ = importCmd.MarkFlagRequired("tenant-id")
	_ = importCmd.MarkFlagRequired("file")

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Hard-delete a tenant's whole chart of accounts",
		RunE:  runPurge,
	}
	purgeCmd.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant UUID (required)")
	_ = purgeCmd.MarkFlagRequired("tenant-id")

	rootCmd.AddCommand(importCmd, purgeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newImporter wires config, database pool and the importer service. The
// returned cleanup closes the pool.
func newImporter(ctx context.Context) (portssvc.ChartImporterSvc, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repos := pgsql.NewRepositoryProvider(dbPool)
	return services.NewChartImporterService(repos.ChartRepo), func() { database.ClosePgxPool(dbPool) }, nil
}

func cliContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return middleware.WithLogger(context.Background(), logger)
}

func runImportChart(cmd *cobra.Command, args []string) error {
	ctx := cliContext()

	// The file is checked before any database work so a typo in --file never
	// opens a transaction.
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrSourceNotFound, filePath)
		}
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	importer, cleanup, err := newImporter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := dto.ImportOptions{Purge: purge, Replace: replace}
	var summary domain.ImportSummary
	if nested {
		var chart map[string]any
		if err := json.Unmarshal(raw, &chart); err != nil {
			return fmt.Errorf("%w: %s is not a nested chart object: %s", apperrors.ErrInvalidRecord, filePath, err.Error())
		}
		summary, err = importer.ImportNestedChart(ctx, tenantID, chart, opts)
		if err != nil {
			return err
		}
	} else {
		var records []dto.ImportRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return fmt.Errorf("%w: %s is not an array of seed records: %s", apperrors.ErrInvalidRecord, filePath, err.Error())
		}
		summary, err = importer.ImportChart(ctx, tenantID, records, opts)
		if err != nil {
			return err
		}
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary domain.ImportSummary) {
	cmd.Printf("Processed:          %d\n", summary.Processed)
	cmd.Printf("Classes created:    %d\n", summary.ClassesCreated)
	cmd.Printf("Categories created: %d\n", summary.CategoriesCreated)
	cmd.Printf("Accounts created:   %d\n", summary.AccountsCreated)
	cmd.Printf("Accounts updated:   %d\n", summary.AccountsUpdated)
	cmd.Printf("Parents linked:     %d\n", summary.ParentsLinked)
	if summary.Purged != nil {
		cmd.Printf("Purged:             %d accounts, %d categories, %d classes\n",
			summary.Purged.Accounts, summary.Purged.Categories, summary.Purged.Classes)
	}
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cliContext()

	importer, cleanup, err := newImporter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := importer.PurgeChart(ctx, tenantID)
	if err != nil {
		return err
	}
	cmd.Printf("Purged %d accounts, %d categories, %d classes\n",
		result.Accounts, result.Categories, result.Classes)
	return nil
}
