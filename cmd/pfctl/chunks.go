package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pfkit/pkg/pf"
)

func init() {
	rootCmd.AddCommand(newChunksCmd())
}

func newChunksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file>",
		Short: "List the chunk headers of a pack file",
		Long: `The chunks command lists every chunk of a PF pack file without decoding
the payloads. Any format tag is accepted.

Example:
  pfctl chunks 184691.abix
  pfctl chunks 179764.abnk --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunks(args)
		},
	}
}

type chunkInfo struct {
	Magic   string `json:"magic"`
	Version uint16 `json:"version"`
	Size    int    `json:"size"`
	Error   string `json:"error,omitempty"`
}

func runChunks(args []string) error {
	data, cleanup, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	h, it, err := pf.Open[pf.RawChunk](data, pf.RawChunks{})
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var chunks []chunkInfo
	for {
		res, ok := it.Next()
		if !ok {
			break
		}
		info := chunkInfo{
			Magic:   res.Header.Magic.String(),
			Version: res.Header.Version,
			Size:    len(res.Value.Payload),
		}
		if res.Err != nil {
			info.Error = res.Err.Error()
		}
		chunks = append(chunks, info)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"format": h.Format.String(),
			"wide":   h.Wide(),
			"chunks": chunks,
			"count":  len(chunks),
		})
	}

	printInfo("Format: %s (%d-bit pointers)\n", h.Format, pointerBits(h.Wide()))
	for i, c := range chunks {
		if c.Error != "" {
			printInfo("  #%d %s v%d: %s\n", i, c.Magic, c.Version, c.Error)
			continue
		}
		printInfo("  #%d %s v%d, %d bytes\n", i, c.Magic, c.Version, c.Size)
	}
	return nil
}

func pointerBits(wide bool) int {
	if wide {
		return 64
	}
	return 32
}
