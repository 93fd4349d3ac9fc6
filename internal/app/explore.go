package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roshansmehta/MLB-salary-predictor/internal/dataset"
	"github.com/roshansmehta/MLB-salary-predictor/internal/report"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Print the exploratory summary and save the figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		records, loadReport, err := dataset.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		logger.Info().Int("read", loadReport.RowsRead).
			Int("kept", loadReport.RowsKept).
			Int("dropped", loadReport.RowsDropped).
			Msg("dataset cleaned")

		records, err = dataset.WithCareerAverages(records)
		if err != nil {
			return err
		}
		design, y, err := dataset.Build(records)
		if err != nil {
			return err
		}
		summary, err := report.Summarize(design, y)
		if err != nil {
			return err
		}

		fmt.Printf("rows kept: %d (dropped %d)\n\n", loadReport.RowsKept, loadReport.RowsDropped)
		fmt.Print(summary.Format())
		fmt.Println("\nstrongest salary correlations:")
		for i, c := range summary.SalaryCorrelations() {
			if i == 8 {
				break
			}
			fmt.Printf("  %-12s %+.3f\n", c.Name, c.R)
		}

		if !cfg.Plots {
			return nil
		}
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		if err := report.SaveHistograms(design, y, cfg.OutDir); err != nil {
			return err
		}
		if err := report.SaveScatter(design, y, "CHits", cfg.OutDir); err != nil {
			return err
		}
		if err := report.SaveCorrelationHeatmap(summary, cfg.OutDir); err != nil {
			return err
		}
		logger.Info().Str("dir", cfg.OutDir).Msg("figures written")
		return nil
	},
}
