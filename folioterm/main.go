package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	endpoint      string
	simulate      bool
	metricsAddr   string
	reducedMotion bool
	logFile       string
	debug         bool
)

var rootCmd = &cobra.Command{
	Use:   "folioterm",
	Short: "Terminal contact form for the folio site",
	Long: `folioterm opens the folio contact form in the terminal.

Messages are posted as JSON to the configured endpoint. Without an
endpoint, or with --simulate, delivery is simulated locally.

Settings are read from the config file, then FOLIOTERM_* environment
variables, then flags.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&endpoint, "endpoint", "", "contact endpoint URL (http or https)")
	flags.BoolVar(&simulate, "simulate", false, "simulate delivery instead of posting")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "disable the animated pending indicator")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
