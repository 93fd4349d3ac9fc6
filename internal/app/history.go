package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roshansmehta/MLB-salary-predictor/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		s, err := store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded yet")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("run %d  %s  %s  rows %d  winner %s\n",
				r.ID, r.CreatedAt.Format(time.RFC3339), r.DataPath, r.RowsKept, r.Winner)
			for _, m := range r.Metrics {
				fmt.Printf("    %-8s mse %.2f  %s=%g\n", m.Model, m.TestMSE, m.TunedLabel, m.TunedValue)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
}
