package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bbluecircles/jsoncompressor/compress"
	"github.com/bbluecircles/jsoncompressor/engine"
)

type codecFlags struct {
	compression string
	output      string
	force       bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.compression, "compression", "c", "", "codec: none, gzip, zlib, zstd, s2, lz4 (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
}

func compressCmd(a *app) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "compress [file|-]",
		Short: "Compress a payload with the configured codec",
		Long: `Compress a payload with the configured codec.

Examples:
  jsonc compress data.json -o data.json.gz
  jsonc compress -c zstd - < data.json > data.json.zst
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodec(cmd, a, &flags, firstArg(args), true)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "write compressed data even if stdout is a terminal")

	return cmd
}

func decompressCmd(a *app) *cobra.Command {
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "decompress [file|-]",
		Short: "Decompress a payload to JSON text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodec(cmd, a, &flags, firstArg(args), false)
		},
	}

	flags.register(cmd)

	return cmd
}

func runCodec(cmd *cobra.Command, a *app, flags *codecFlags, input string, compressing bool) error {
	comp, err := a.compression(flags.compression)
	if err != nil {
		return err
	}

	if compressing && flags.output == "" && !flags.force && isTerminal(cmd.OutOrStdout()) {
		return errTerminalOutput
	}

	eng, err := engine.New(engine.WithCompression(comp), engine.WithLogger(a.logger))
	if err != nil {
		return err
	}

	in, err := openInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var out []byte
	if compressing {
		res, err := eng.Compress(data)
		if err != nil {
			return err
		}
		defer res.Release()
		out = res.Bytes()
	} else {
		res, err := eng.Decompress(data)
		if err != nil {
			return err
		}
		defer res.Release()
		out = []byte(res.String())
	}

	w, err := openOutput(flags.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		_ = w.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	original, compressed := len(data), len(out)
	if !compressing {
		original, compressed = compressed, original
	}
	stats := compress.NewCompressionStats(comp, original, compressed)

	a.success("%s: %s -> %s (ratio %.3f, saved %.1f%%)",
		comp,
		humanize.Bytes(uint64(len(data))),
		humanize.Bytes(uint64(len(out))),
		stats.CompressionRatio(),
		stats.SpaceSavings(),
	)

	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
