package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roshansmehta/MLB-salary-predictor/internal/pipeline"
	"github.com/roshansmehta/MLB-salary-predictor/internal/store"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis and compare the five models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		res, err := pipeline.Run(cfg, logger)
		if err != nil {
			return err
		}

		printResult(res)

		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		reportPath := filepath.Join(cfg.OutDir, "report.txt")
		if err := os.WriteFile(reportPath, []byte(formatResult(res)), 0o644); err != nil {
			return errors.Wrap(err, "writing report")
		}
		logger.Info().Str("path", reportPath).Msg("report written")

		if cfg.DBPath != "" {
			if err := recordRun(cfg.DBPath, cfg.DataPath, res); err != nil {
				return err
			}
			logger.Info().Str("path", cfg.DBPath).Msg("run recorded")
		}
		return nil
	},
}

func printResult(res *pipeline.Result) {
	fmt.Print(formatResult(res))
}

func formatResult(res *pipeline.Result) string {
	out := fmt.Sprintf("rows kept: %d (dropped %d)\n\n",
		res.LoadReport.RowsKept, res.LoadReport.RowsDropped)
	out += res.Summary.Format() + "\n"

	out += fmt.Sprintf("best subset (size %d):", res.Subset.BestSize)
	for _, c := range res.Subset.Best.Columns {
		out += fmt.Sprintf(" %s=%.3f", c, res.Subset.Best.Coefficients[c])
	}
	out += fmt.Sprintf(" (intercept %.3f)\n", res.Subset.Best.Intercept)
	if res.SubsetCV != nil {
		out += fmt.Sprintf("cross-validated subset choice: size %d (cv MSE %.2f)\n",
			res.SubsetCV.BestSize, res.SubsetCV.Curve.Errors[res.SubsetCV.Curve.ArgMin()])
	}
	out += fmt.Sprintf("lasso keeps %d of %d predictors\n\n",
		res.LassoNonZero, len(res.Summary.Names)-1)

	out += fmt.Sprintf("%-8s %14s %12s\n", "model", "test MSE", "tuning")
	for _, m := range res.Models {
		out += fmt.Sprintf("%-8s %14.2f %s=%g\n", m.Name, m.TestMSE, m.TunedLabel, m.TunedValue)
	}
	out += fmt.Sprintf("\nwinner: %s (test MSE %.2f)\n", res.Winner.Name, res.Winner.TestMSE)
	out += "note: the subset split is seeded independently of the split shared\n" +
		"by ridge, lasso, PCR, and PLS, so its MSE uses different test rows\n"
	return out
}

func recordRun(dbPath, dataPath string, res *pipeline.Result) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	run := &store.Run{
		CreatedAt:   time.Now().UTC(),
		DataPath:    dataPath,
		RowsKept:    res.LoadReport.RowsKept,
		RowsDropped: res.LoadReport.RowsDropped,
		Winner:      res.Winner.Name,
	}
	for _, m := range res.Models {
		run.Metrics = append(run.Metrics, store.Metric{
			Model:      m.Name,
			TestMSE:    m.TestMSE,
			TunedValue: m.TunedValue,
			TunedLabel: m.TunedLabel,
		})
	}
	_, err = s.InsertRun(run)
	return err
}
