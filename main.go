package main

import (
	"fmt"
	"os"
	"time"

	"ble-locator.klederson.com/internal/app"
	"ble-locator.klederson.com/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDemo     bool
	flagConfig   string
	flagFilter   string
	flagSinkURL  string
	flagInterval time.Duration
	flagDebugLog string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ble-locator",
		Short: "BLE Locator - Terminal beacon trilateration with periodic position reporting",
		Long: `BLE Locator scans for named Bluetooth Low Energy beacons, estimates the
receiver's 2D position by trilateration against three configured anchor
positions, and reports the estimate to a collector endpoint on a fixed
interval.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo flag for demonstration mode without Bluetooth hardware.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with fake beacons (no Bluetooth required)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&flagFilter, "filter", "", "Beacon name substring filter (overrides config)")
	rootCmd.Flags().StringVar(&flagSinkURL, "sink-url", "", "Collector URL for position reports (overrides config)")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Position report interval (overrides config)")
	rootCmd.Flags().StringVar(&flagDebugLog, "debug-log", "", "Write debug logs to this file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagFilter != "" {
		cfg.Beacon.Filter = flagFilter
	}
	if flagSinkURL != "" {
		cfg.Report.URL = flagSinkURL
	}
	if flagInterval > 0 {
		cfg.Report.Interval = flagInterval
	}
	if flagDebugLog != "" {
		cfg.LogFile = flagDebugLog
	}

	log, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	model := app.New(cfg, flagDemo, log)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	// Start the session with reference to the tea program
	if err := model.StartSession(p); err != nil {
		if !flagDemo {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./ble-locator")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./ble-locator")
			fmt.Fprintln(os.Stderr, "  ./ble-locator --demo    (demo mode, no hardware needed)")
			return err
		}
	}

	_, err = p.Run()
	return err
}

// newLogger builds a file-backed logger, or a no-op logger when no path is
// configured. Logging to stderr would corrupt the TUI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", path, err)
	}
	return log, nil
}
