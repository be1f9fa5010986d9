package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/bbluecircles/jsoncompressor/action"
	"github.com/bbluecircles/jsoncompressor/compress"
	"github.com/bbluecircles/jsoncompressor/errs"
	"github.com/bbluecircles/jsoncompressor/format"
	"github.com/bbluecircles/jsoncompressor/internal/options"
	"github.com/bbluecircles/jsoncompressor/record"
)

// Operation names used in error messages, logs and metric labels.
const (
	opCompress   = "compress"
	opDecompress = "decompress"
	opIngest     = "ingest_chunk"
	opIngestJSON = "ingest_json"
	opRunAction  = "run_action"
	opNextChunk  = "next_output_chunk"
)

// Engine runs the ingest → act → extract cycle over one record collection.
//
// The ingestion buffer, the output stager and the error register each have
// their own lock, and no method holds more than one of them at a time.
// Methods are safe to call from multiple goroutines, but a meaningful cycle
// still needs the caller to sequence ingestion, the action and extraction.
type Engine struct {
	compression format.CompressionType
	codec       compress.Codec

	buffer  *Buffer
	stager  *Stager
	lastErr ErrorRegister

	handles *handleTracker
	metrics *Metrics
	logger  *slog.Logger
}

// New creates an Engine configured by opts.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, fmt.Errorf("invalid engine option: %w", err)
	}

	codec := cfg.codec
	if codec == nil {
		var err error
		codec, err = compress.CreateCodec(cfg.compression, "chunk")
		if err != nil {
			return nil, err
		}
	}

	metrics, err := NewMetrics(cfg.registerer)
	if err != nil {
		return nil, err
	}

	return &Engine{
		compression: cfg.compression,
		codec:       codec,
		buffer:      NewBuffer(),
		stager:      NewStager(cfg.cursorMode),
		handles:     &handleTracker{metrics: metrics},
		metrics:     metrics,
		logger:      cfg.logger,
	}, nil
}

// Compression returns the configured compression type.
func (e *Engine) Compression() format.CompressionType {
	return e.compression
}

// Compress compresses data with the engine codec.
func (e *Engine) Compress(data []byte) (*Bytes, error) {
	out, err := e.codec.Compress(data)
	if err != nil {
		return nil, e.fail(opCompress, err)
	}

	e.logger.Debug("compressed payload",
		slog.String("input", humanize.Bytes(uint64(len(data)))),
		slog.String("output", humanize.Bytes(uint64(len(out)))),
	)

	return newBytes(e.handles, out), nil
}

// Decompress decompresses data with the engine codec and returns it as text.
// Malformed framing and non-UTF-8 output fail with errs.ErrDecode.
func (e *Engine) Decompress(data []byte) (*Text, error) {
	text, err := e.decompressText(data)
	if err != nil {
		return nil, e.fail(opDecompress, err)
	}

	return newText(e.handles, string(text)), nil
}

// IngestChunk decompresses one chunk, parses it as a JSON array and appends
// its records to the buffer.
//
// Each chunk must hold a complete array. On failure nothing is appended.
func (e *Engine) IngestChunk(data []byte) error {
	text, err := e.decompressText(data)
	if err != nil {
		return e.fail(opIngest, err)
	}

	return e.ingest(opIngest, len(data), text)
}

// IngestJSON parses uncompressed JSON array text and appends its records.
func (e *Engine) IngestJSON(text []byte) error {
	return e.ingest(opIngestJSON, len(text), text)
}

func (e *Engine) ingest(op string, inputLen int, text []byte) error {
	seq, err := record.Parse(text)
	if err != nil {
		return e.fail(op, err)
	}

	e.buffer.Append(seq)
	e.metrics.recordIngest(len(seq))

	e.logger.Debug("ingested chunk",
		slog.String("op", op),
		slog.String("input", humanize.Bytes(uint64(inputLen))),
		slog.String("decoded", humanize.Bytes(uint64(len(text)))),
		slog.Int("records", len(seq)),
	)

	return nil
}

// RunAction applies the named action to the whole buffer, installs the
// result as the new buffer contents and stages it for extraction.
//
// Parameters that are not valid JSON fail with
// errs.ErrMalformedActionParameters and leave buffer and staging untouched.
// An unknown action name is a no-op on the buffer: the current contents are
// staged unchanged and no error is returned.
func (e *Engine) RunAction(name string, params []byte) error {
	act, err := action.Parse(name, params)
	switch {
	case errors.Is(err, errs.ErrUnknownAction):
		e.logger.Warn("unknown action, staging buffer unchanged", slog.String("action", name))
		e.stage(e.buffer.Snapshot())

		return nil
	case err != nil:
		return e.fail(opRunAction, err)
	}

	before := e.buffer.Snapshot()
	result := act.Apply(before)
	e.buffer.Replace(result)
	e.metrics.recordAction(act.Name())

	e.logger.Debug("applied action",
		slog.String("action", act.Name()),
		slog.Int("input_records", len(before)),
		slog.Int("output_records", len(result)),
	)

	e.stage(result)

	return nil
}

// StageOutput stages the current buffer contents without transforming them.
func (e *Engine) StageOutput() {
	e.stage(e.buffer.Snapshot())
}

func (e *Engine) stage(seq record.Sequence) {
	info := e.stager.Stage(seq)

	e.logger.Debug("staged output",
		slog.String("size", humanize.Bytes(uint64(info.Size))),
		slog.Uint64("checksum", info.Checksum),
	)
}

// NextOutputChunk returns the next chunk of at most maxLen bytes of staged
// output and true, or nil and false once the output is exhausted or nothing
// is staged. A non-positive maxLen returns nil and false and records
// errs.ErrInvalidChunkSize in the error register.
func (e *Engine) NextOutputChunk(maxLen int) (*Bytes, bool) {
	if maxLen <= 0 {
		_ = e.fail(opNextChunk, fmt.Errorf("%w: %d", errs.ErrInvalidChunkSize, maxLen))
		return nil, false
	}

	chunk, more := e.stager.Next(maxLen)
	if !more {
		return nil, false
	}
	e.metrics.recordOutput(len(chunk))

	return newBytes(e.handles, chunk), true
}

// FinalizeOutput discards the staged output. It is idempotent.
func (e *Engine) FinalizeOutput() {
	e.stager.Finalize()
}

// OutputInfo describes the staged output.
func (e *Engine) OutputInfo() StagedInfo {
	return e.stager.Info()
}

// Len returns the number of buffered records.
func (e *Engine) Len() int {
	return e.buffer.Len()
}

// Snapshot returns a copy of the buffered records.
func (e *Engine) Snapshot() record.Sequence {
	return e.buffer.Snapshot()
}

// LastError returns the message of the most recent failure, or "".
func (e *Engine) LastError() string {
	return e.lastErr.Get()
}

// OutstandingHandles returns the number of results not yet released.
func (e *Engine) OutstandingHandles() int64 {
	return e.handles.count()
}

// Reset empties the buffer, discards staged output and clears the last error,
// readying the engine for a new cycle. Outstanding handles stay valid.
func (e *Engine) Reset() {
	e.buffer.Reset()
	e.stager.Finalize()
	e.lastErr.Clear()
}

func (e *Engine) decompressText(data []byte) ([]byte, error) {
	out, err := e.codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: decompressed data is not valid UTF-8", errs.ErrDecode)
	}

	return out, nil
}

// RecordError records a failure that happened outside the engine, such as at
// a language boundary, and returns it wrapped with op.
func (e *Engine) RecordError(op string, err error) error {
	if err == nil {
		return nil
	}

	return e.fail(op, err)
}

// fail records err in the error register, counts it and returns it wrapped
// with the operation name.
func (e *Engine) fail(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)

	e.lastErr.SetError(wrapped)
	e.metrics.recordError(op)
	e.logger.Error("operation failed", slog.String("op", op), slog.Any("error", err))

	return wrapped
}
