package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"room_balancer/internal/adapters/synthetic"
	"room_balancer/internal/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic reservation export for demos and load tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := property()
		if err != nil {
			return err
		}
		start, err := domain.ParseDate(viper.GetString("start"))
		if err != nil {
			return err
		}
		rs := synthetic.Generate(p, synthetic.Options{
			Start:  start,
			Days:   viper.GetInt("days"),
			PerDay: viper.GetInt("per-day"),
			Seed:   viper.GetInt64("seed"),
		})

		out := cmd.OutOrStdout()
		if path := viper.GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		if err := writeIndented(out, map[string]any{"reservations": rs}); err != nil {
			return err
		}
		log.Info().Int("reservations", len(rs)).Str("start", start.String()).Msg("reservations generated")
		return nil
	},
}

func init() {
	generateCmd.Flags().String("start", time.Now().Format(domain.DateLayout), "first check-in date (YYYY-MM-DD)")
	generateCmd.Flags().Int("days", 7, "number of check-in days")
	generateCmd.Flags().Int("per-day", 150, "mean arrivals per day")
	generateCmd.Flags().Int64("seed", 42, "random seed")
	generateCmd.Flags().String("out", "", "output file (default stdout)")

	viper.BindPFlags(generateCmd.Flags())
}
