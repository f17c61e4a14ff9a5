package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"artifact-host/core/config"
	"artifact-host/core/logger"
	"artifact-host/core/storage"
	"artifact-host/feature/contentpack"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var packJSONFlag bool

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <id>",
	Short: "Inspect a content pack",
	Long:  `Fetches a content pack, lists its artifacts and checks that every referenced model exists in storage.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPack(cmd.Context(), args[0])
	},
}

func runPack(ctx context.Context, id string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	// Storage is optional here; without it only descriptors are validated.
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Storage unavailable, skipping model checks", zap.Error(err))
		store = nil
	}

	fetcher, err := contentpack.NewFetcher(cfg.ContentPack, store, cfg.Storage.Bucket)
	if err != nil {
		return err
	}
	service := contentpack.NewService(contentpack.NewLoader(fetcher, cfg.ContentPack.CacheTTL()), store, cfg.Storage.Bucket, cfg.Storage.ModelPrefix, logg)

	ctx, cancel := context.WithTimeout(ctx, cfg.ContentPack.Timeout()+time.Minute)
	defer cancel()

	db, err := service.GetPack(ctx, id)
	if err != nil {
		return err
	}
	report, err := service.CheckIntegrity(ctx, id)
	if err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	if packJSONFlag {
		out := struct {
			Artifacts contentpack.Database         `json:"artifacts"`
			Integrity *contentpack.IntegrityReport `json:"integrity"`
		}{db, report}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tMODEL\tLIBRARY\tATTACH")
	for _, key := range db.Keys() {
		d := db[key]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", key, d.DisplayName, d.ResourceName, d.ResourceID, d.AttachPoint)
	}
	_ = w.Flush()

	fmt.Println("\n=== Content Pack Integrity ===")
	fmt.Printf("Total Artifacts: %d\n", report.TotalArtifacts)
	fmt.Printf("Library Artifacts: %d\n", report.LibraryArtifacts)
	fmt.Printf("Model Artifacts: %d\n", report.ModelArtifacts)
	fmt.Printf("Models Checked: %t\n", report.ModelsChecked)
	fmt.Printf("Missing Models: %d\n", len(report.MissingModels))
	fmt.Printf("Unreferenced Models: %d\n", len(report.UnreferencedModels))
	fmt.Printf("Malformed: %d\n", len(report.Malformed))
	fmt.Printf("Status: %s\n", report.Status)
	fmt.Printf("Execution Time: %s\n", report.ExecutionTime)

	logg.Info("Content pack inspected",
		zap.String("pack", id),
		zap.Int("artifacts", len(db)),
		zap.String("status", report.Status),
	)
	return nil
}

func init() {
	packCmd.Flags().BoolVar(&packJSONFlag, "json", false, "print artifacts and the integrity report as JSON")
	RootCmd.AddCommand(packCmd)
}
