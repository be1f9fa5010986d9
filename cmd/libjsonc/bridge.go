package main

import (
	"log/slog"
	"os"
	"unsafe"

	"github.com/bbluecircles/jsoncompressor/config"
	"github.com/bbluecircles/jsoncompressor/engine"
)

// Operation names recorded for failures detected at the boundary.
const (
	opConfig       = "config"
	opReleaseBytes = "release_bytes"
	opReleaseText  = "release_text"
)

// bridge adapts the engine to pointer-and-length calls. Results are copied
// into the allocation table and the engine handles released immediately.
type bridge struct {
	eng    *engine.Engine
	allocs *allocTable
}

func newBridge(eng *engine.Engine, mem allocator) *bridge {
	return &bridge{eng: eng, allocs: newAllocTable(mem)}
}

// loadBridge builds the engine from JSONC_* settings. A bad configuration
// falls back to defaults and leaves the reason in the error register.
func loadBridge(mem allocator) *bridge {
	cfg, cfgErr := config.Load("")
	if cfgErr != nil {
		cfg = config.Default()
	}

	var eng *engine.Engine
	logger, err := cfg.NewLogger(os.Stderr)
	if err == nil {
		var opts []engine.Option
		opts, err = cfg.EngineOptions(logger, nil)
		if err == nil {
			eng, err = engine.New(opts...)
		}
	}
	if err != nil {
		eng, _ = engine.New(engine.WithLogger(slog.New(slog.DiscardHandler)))
	}

	b := newBridge(eng, mem)
	_ = b.eng.RecordError(opConfig, cfgErr)

	return b
}

func (b *bridge) compress(data []byte) (unsafe.Pointer, int, int) {
	out, err := b.eng.Compress(data)
	if err != nil {
		return nil, 0, 0
	}
	defer out.Release()

	return b.allocs.putBytes(out.Bytes())
}

func (b *bridge) decompress(data []byte) unsafe.Pointer {
	text, err := b.eng.Decompress(data)
	if err != nil {
		return nil
	}
	defer text.Release()

	return b.allocs.putText(text.String())
}

func (b *bridge) ingestChunk(data []byte) int {
	if err := b.eng.IngestChunk(data); err != nil {
		return -1
	}

	return 0
}

func (b *bridge) runAction(name string, params []byte) int {
	if err := b.eng.RunAction(name, params); err != nil {
		return -1
	}

	return 0
}

// nextOutputChunk returns nil once the staged output is exhausted.
func (b *bridge) nextOutputChunk(maxLen int) (unsafe.Pointer, int, int) {
	chunk, more := b.eng.NextOutputChunk(maxLen)
	if !more {
		return nil, 0, 0
	}
	defer chunk.Release()

	return b.allocs.putBytes(chunk.Bytes())
}

func (b *bridge) finalizeOutput() {
	b.eng.FinalizeOutput()
}

// lastError returns the last error as text, or nil when there is none.
func (b *bridge) lastError() unsafe.Pointer {
	msg := b.eng.LastError()
	if msg == "" {
		return nil
	}

	return b.allocs.putText(msg)
}

func (b *bridge) releaseBytes(p unsafe.Pointer, n, capacity int) int {
	if err := b.allocs.releaseBytes(p, n, capacity); err != nil {
		_ = b.eng.RecordError(opReleaseBytes, err)
		return -1
	}

	return 0
}

func (b *bridge) releaseText(p unsafe.Pointer) int {
	if err := b.allocs.releaseText(p); err != nil {
		_ = b.eng.RecordError(opReleaseText, err)
		return -1
	}

	return 0
}

// reset starts a new cycle. Live allocations stay valid.
func (b *bridge) reset() {
	b.eng.Reset()
}
