package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bbluecircles/jsoncompressor/engine"
	"github.com/bbluecircles/jsoncompressor/internal/hash"
)

// errChecksumMismatch is returned when the streamed output does not match the
// checksum of the staged text.
var errChecksumMismatch = errors.New("output checksum mismatch")

type runFlags struct {
	action      string
	params      string
	compression string
	chunkSize   int
	output      string
	plain       bool
}

func runCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <chunk>...",
		Short: "Ingest compressed chunks, apply an action and stream the result",
		Long: `Ingest one or more compressed chunks, apply an action to all records and
stream the resulting JSON array.

Each chunk must decompress to a complete JSON array. Records from all chunks
are concatenated in argument order before the action runs.

Examples:
  jsonc run --action sort --params '{"field":"name","dir":"asc"}' part1.gz part2.gz
  jsonc run --action filter --params '{"logic":"OR","filters":[{"field":"tag","operator":"contains","value":"red"}]}' data.gz
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, a, &flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.action, "action", "a", "", "action to apply: sort or filter (empty stages records unchanged)")
	cmd.Flags().StringVarP(&flags.params, "params", "p", "{}", "action parameters as JSON")
	cmd.Flags().StringVarP(&flags.compression, "compression", "c", "", "chunk codec (default from config)")
	cmd.Flags().IntVar(&flags.chunkSize, "chunk-size", 0, "output chunk size in bytes (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "chunks are uncompressed JSON")

	return cmd
}

func runPipeline(cmd *cobra.Command, a *app, flags *runFlags, paths []string) error {
	cfg := *a.cfg
	if flags.compression != "" {
		cfg.Engine.Compression = flags.compression
	}
	if flags.chunkSize != 0 {
		cfg.Engine.ChunkSize = flags.chunkSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := cfg.EngineOptions(a.logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	eng, err := engine.New(opts...)
	if err != nil {
		return err
	}

	var ingested int64
	for _, path := range paths {
		n, err := ingestFile(eng, path, flags.plain)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		ingested += n
	}

	if flags.action == "" {
		eng.StageOutput()
	} else if err := eng.RunAction(flags.action, []byte(flags.params)); err != nil {
		return err
	}
	defer eng.FinalizeOutput()

	w, err := openOutput(flags.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	written, sum, err := streamOutput(eng, w, cfg.Engine.ChunkSize)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		return err
	}

	info := eng.OutputInfo()
	if sum != info.Checksum || written != int64(info.Size) {
		return fmt.Errorf("%w: wrote %d bytes with %016x, staged %d bytes with %016x",
			errChecksumMismatch, written, sum, info.Size, info.Checksum)
	}

	if eng.OutstandingHandles() != 0 {
		a.warn("%d output handles were not released", eng.OutstandingHandles())
	}

	a.success("%d records from %d chunks (%s in) -> %s out, checksum %016x",
		eng.Len(), len(paths), humanize.Bytes(uint64(ingested)), humanize.Bytes(uint64(written)), sum)

	return nil
}

func ingestFile(eng *engine.Engine, path string, plain bool) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	if plain {
		err = eng.IngestJSON(data)
	} else {
		err = eng.IngestChunk(data)
	}
	if err != nil {
		return 0, err
	}

	return int64(len(data)), nil
}

// streamOutput drains the staged output into w in chunkSize pieces and returns
// the byte count and running checksum of what was written.
func streamOutput(eng *engine.Engine, w io.Writer, chunkSize int) (int64, uint64, error) {
	digest := hash.NewDigest()

	var written int64
	for {
		chunk, more := eng.NextOutputChunk(chunkSize)
		if !more {
			break
		}

		_, _ = digest.Write(chunk.Bytes())
		n, err := w.Write(chunk.Bytes())
		written += int64(n)
		_ = chunk.Release()

		if err != nil {
			return written, digest.Sum64(), fmt.Errorf("write output: %w", err)
		}
	}

	return written, digest.Sum64(), nil
}
