package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/joshuapare/pfkit/internal/logger"
	"github.com/joshuapare/pfkit/internal/mmfile"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "pfctl",
	Short: "Inspect PF pack files and recover their layouts from the game client",
	Long: `pfctl reads "PF" pack files (sound bank indexes, sound banks, waveforms,
voice mappings) and recovers chunk layouts from the reflection tables
embedded in the game executable.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON lines")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setupLogging enables the logger when --log-level is given, or at debug
// level with --verbose.
func setupLogging(cmd *cobra.Command) error {
	opts := logger.Options{JSON: logJSON}
	switch {
	case cmd.Flags().Changed("log-level"):
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		opts.Enabled = true
		opts.Level = level
	case verbose:
		opts.Enabled = true
	}
	logger.Init(opts)
	return nil
}

// openInput maps path and returns its bytes with the unmap function.
func openInput(path string) ([]byte, func() error, error) {
	printVerbose("Opening: %s\n", path)
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger.Debug("mapped input", "path", path, "bytes", len(data))
	return data, cleanup, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
