package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"room_balancer/internal/adapters/observability"
	"room_balancer/internal/app"
	"room_balancer/internal/domain"
	"room_balancer/internal/shared"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "balancer",
	Short: "Balances room inventory against arrivals for one night",
	Long: `balancer runs the room-balancing engine offline: it reads a reservation
export, finds overbooked room types and proposes upgrades, cross-category
moves or walks for the displaced guests.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = observability.NewLogger(viper.GetString("env"), viper.GetString("log-level"), "balancer")
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.balancer.yaml)")
	rootCmd.PersistentFlags().String("property", "", "property table file (YAML/JSON); built-in table when empty")
	rootCmd.PersistentFlags().String("env", "dev", "log format: dev for console, anything else for JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(analyzeCmd, finalizeCmd, exportCmd, datesCmd, generateCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".balancer")
	}

	viper.SetEnvPrefix("balancer")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func property() (domain.Property, error) {
	return shared.LoadProperty(viper.GetString("property"))
}

// readReservations decodes and normalizes a reservation export. Rejected
// records are logged and dropped.
func readReservations(path string) ([]domain.Reservation, error) {
	if path == "" {
		return nil, fmt.Errorf("--input is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := app.DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rs, rejected := app.NewIngestionService(nil, nil).Normalize(context.Background(), raw)
	log.Info().Str("file", path).Int("records", len(raw)).Int("rejected", rejected).Msg("reservations loaded")
	return rs, nil
}

func dateFlag(cmd *cobra.Command) (domain.Date, error) {
	s, _ := cmd.Flags().GetString("date")
	if s == "" {
		return domain.Date{}, fmt.Errorf("--date is required")
	}
	return domain.ParseDate(s)
}
