package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pfkit/internal/logger"
	"github.com/joshuapare/pfkit/internal/pe"
	"github.com/joshuapare/pfkit/pkg/extract"
	"github.com/joshuapare/pfkit/pkg/schema"
	"github.com/joshuapare/pfkit/pkg/schema/printer"
)

var (
	scanOutput   string
	scanMagic    []string
	scanLatest   bool
	scanDepth    int
	scanMaxTypes int
)

func init() {
	cmd := newScanCmd()
	cmd.Flags().StringVarP(&scanOutput, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringSliceVarP(&scanMagic, "magic", "m", nil, "Only print chunks with these magics")
	cmd.Flags().BoolVar(&scanLatest, "latest", false, "Only print the newest version of each chunk")
	cmd.Flags().IntVar(&scanDepth, "depth", 0, "Maximum nesting to print (0 = unlimited)")
	cmd.Flags().IntVar(&scanMaxTypes, "max-type-depth", 0, "Maximum type nesting to recover (0 = default)")
	rootCmd.AddCommand(cmd)
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <exe>",
		Short: "Recover chunk layouts from the game executable",
		Long: `The scan command searches a 64-bit game executable for chunk descriptors
and prints the layout of every version it can recover.

Example:
  pfctl scan Gw2-64.exe
  pfctl scan Gw2-64.exe --magic BIDX,BKCK --latest
  pfctl scan Gw2-64.exe --output yaml > layouts.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args)
		},
	}
}

func runScan(args []string) error {
	format := printer.Format(scanOutput)
	if jsonOut {
		format = printer.FormatJSON
	}
	format, err := printer.ParseFormat(string(format))
	if err != nil {
		return err
	}

	data, cleanup, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	img, err := pe.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse executable: %w", err)
	}
	printVerbose("Image base %#x, %d section(s)\n", img.Base, len(img.Sections))

	s, err := extract.NewScanner(img, extract.Options{Logger: logger.L, MaxDepth: scanMaxTypes})
	if err != nil {
		return err
	}
	var chunks []schema.Chunk
	for c := range s.All() {
		if matchesMagic(c.Magic) {
			chunks = append(chunks, c)
		}
	}
	stats := s.Stats()
	logger.Info("scan finished", "candidates", stats.Candidates, "accepted", stats.Accepted, "rejected", stats.Rejected)
	printVerbose("%d candidate(s), %d accepted, %d rejected\n", stats.Candidates, stats.Accepted, stats.Rejected)

	if quiet {
		return nil
	}
	opts := printer.DefaultOptions()
	opts.Format = format
	opts.LatestOnly = scanLatest
	opts.MaxDepth = scanDepth
	return printer.New(os.Stdout, opts).PrintChunks(chunks)
}

func matchesMagic(magic string) bool {
	if len(scanMagic) == 0 {
		return true
	}
	for _, m := range scanMagic {
		if strings.EqualFold(m, magic) {
			return true
		}
	}
	return false
}
