package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pfkit/internal/logger"
	"github.com/joshuapare/pfkit/pkg/formats"
	"github.com/joshuapare/pfkit/pkg/pf"
)

var (
	decodeFormat  string
	decodeExtract string
)

func init() {
	cmd := newDecodeCmd()
	cmd.Flags().StringVarP(&decodeFormat, "format", "f", "", "Pack file format (ABIX, ABNK, ASND, txtv); default from the header")
	cmd.Flags().StringVar(&decodeExtract, "extract", "", "Write embedded audio streams to this directory (ABNK, ASND)")
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a pack file and summarise its records",
		Long: `The decode command decodes every chunk of a known pack file format and
prints a summary of the records.

Example:
  pfctl decode 184691 --format ABIX
  pfctl decode 179764.abnk --extract out/
  pfctl decode voices.txtv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args)
		},
	}
}

func runDecode(args []string) error {
	data, cleanup, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	format := decodeFormat
	if format == "" {
		h, err := pf.ParseHeader(data)
		if err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}
		format = h.Format.String()
		printVerbose("Detected format: %s\n", format)
	}

	switch strings.ToUpper(format) {
	case "ABIX":
		return decodeABIX(data)
	case "ABNK":
		return decodeABNK(data)
	case "ASND":
		return decodeASND(data, "")
	case "TXTV":
		return decodeTXTV(data)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// reportSkipped logs chunks that failed to decode.
func reportSkipped(errs []error) {
	for _, err := range errs {
		logger.Warn("chunk skipped", "err", err)
		printVerbose("  skipped: %v\n", err)
	}
}

type languageSummary struct {
	Files int      `json:"files"`
	Named int      `json:"named"`
	IDs   []uint32 `json:"ids,omitempty"`
}

func decodeABIX(data []byte) error {
	chunks, err := formats.ReadStrict(formats.ABIXFile, data)
	if err != nil {
		return fmt.Errorf("failed to decode ABIX: %w", err)
	}

	var langs []languageSummary
	for _, c := range chunks {
		for _, lang := range c.Data().BankLanguage {
			s := languageSummary{Files: len(lang.BankFileName)}
			for _, f := range lang.BankFileName {
				if f.FileName == nil {
					continue
				}
				s.Named++
				if verbose {
					s.IDs = append(s.IDs, f.FileName.ID())
				}
			}
			langs = append(langs, s)
		}
	}

	if jsonOut {
		return printJSON(map[string]any{"format": "ABIX", "languages": langs})
	}
	printInfo("ABIX: %d chunk(s), %d language(s)\n", len(chunks), len(langs))
	for i, l := range langs {
		printInfo("  language %d: %d bank file(s), %d named\n", i, l.Files, l.Named)
		for _, id := range l.IDs {
			printVerbose("    %d\n", id)
		}
	}
	return nil
}

type soundSummary struct {
	VoiceID uint32  `json:"voice_id"`
	Flags   uint32  `json:"flags"`
	Length  float32 `json:"length"`
	Bytes   int     `json:"bytes"`
}

func decodeABNK(data []byte) error {
	bank, err := formats.Read(formats.ABNKFile, data)
	if err != nil {
		return fmt.Errorf("failed to decode ABNK: %w", err)
	}
	reportSkipped(bank.Skipped)

	var sounds []soundSummary
	for _, c := range bank.Chunks {
		for _, f := range c.Data().Files {
			sounds = append(sounds, soundSummary{
				VoiceID: f.VoiceID,
				Flags:   f.Flags,
				Length:  f.Length,
				Bytes:   len(f.AudioData),
			})
			if decodeExtract != "" {
				if err := decodeASND(f.AudioData, fmt.Sprint(f.VoiceID)); err != nil {
					return fmt.Errorf("voice %d: %w", f.VoiceID, err)
				}
			}
		}
	}

	if jsonOut {
		return printJSON(map[string]any{"format": "ABNK", "sounds": sounds, "skipped": len(bank.Skipped)})
	}
	printInfo("ABNK: %d chunk(s), %d sound(s)\n", len(bank.Chunks), len(sounds))
	for _, s := range sounds {
		printInfo("  voice %d: %.2fs, %d bytes\n", s.VoiceID, s.Length, s.Bytes)
	}
	return nil
}

type waveSummary struct {
	CRC        uint32 `json:"crc"`
	Samples    uint32 `json:"samples"`
	Channels   uint8  `json:"channels"`
	Format     uint8  `json:"format"`
	AudioBytes int    `json:"audio_bytes"`
}

// decodeASND summarises a sound file. name, when set, marks a sound nested
// in a bank; only top-level files are printed.
func decodeASND(data []byte, name string) error {
	sound, err := formats.Read(formats.ASNDFile, data)
	if err != nil {
		return fmt.Errorf("failed to decode ASND: %w", err)
	}
	reportSkipped(sound.Skipped)

	var waves []waveSummary
	for i, c := range sound.Chunks {
		w := c.Data()
		waves = append(waves, waveSummary{
			CRC:        w.CRC,
			Samples:    w.NumSamples,
			Channels:   w.NumChannels,
			Format:     w.Format,
			AudioBytes: len(w.AudioData),
		})
		if decodeExtract != "" {
			if err := writeAudio(name, i, w.AudioData); err != nil {
				return err
			}
		}
	}
	if name != "" {
		return nil
	}

	if jsonOut {
		return printJSON(map[string]any{"format": "ASND", "waveforms": waves})
	}
	printInfo("ASND: %d waveform(s)\n", len(waves))
	for _, w := range waves {
		printInfo("  crc %08x: %d samples, %d channel(s), %d bytes\n", w.CRC, w.Samples, w.Channels, w.AudioBytes)
	}
	return nil
}

func writeAudio(name string, i int, audio []byte) error {
	if name == "" {
		name = "sound"
	}
	if err := os.MkdirAll(decodeExtract, 0o755); err != nil {
		return err
	}
	path := filepath.Join(decodeExtract, fmt.Sprintf("%s_%d.mp3", name, i))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printVerbose("Wrote %s (%d bytes)\n", path, len(audio))
	return nil
}

func decodeTXTV(data []byte) error {
	chunks, err := formats.ReadStrict(formats.TXTVFile, data)
	if err != nil {
		return fmt.Errorf("failed to decode txtv: %w", err)
	}

	var mappings []formats.TextPackVoice
	for _, c := range chunks {
		mappings = append(mappings, c.Data().Mappings...)
	}

	if jsonOut {
		type mapping struct {
			TextID  uint32 `json:"text_id"`
			VoiceID uint32 `json:"voice_id"`
		}
		out := make([]mapping, len(mappings))
		for i, m := range mappings {
			out[i] = mapping{TextID: m.TextID, VoiceID: m.VoiceID}
		}
		return printJSON(map[string]any{"format": "txtv", "mappings": out})
	}
	printInfo("textId;voiceId\n")
	for _, m := range mappings {
		printInfo("%d;%d\n", m.TextID, m.VoiceID)
	}
	return nil
}
