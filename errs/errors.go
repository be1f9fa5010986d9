// Package errs defines the sentinel errors returned by jsoncompressor packages.
//
// Errors are wrapped with context using fmt.Errorf("...: %w", err); test them
// with errors.Is.
package errs

import "errors"

var (
	// ErrDecode reports compressed input with malformed framing, or decompressed
	// output that is not valid UTF-8 text.
	ErrDecode = errors.New("malformed compressed input")

	// ErrFormat reports decompressed text that is not a JSON array.
	ErrFormat = errors.New("input is not a JSON array")

	// ErrMalformedActionParameters reports an action parameter payload that is
	// not valid JSON or does not match the action's parameter shape.
	ErrMalformedActionParameters = errors.New("malformed action parameters")

	// ErrUnknownAction reports an action name outside the known set. The engine
	// treats it as a no-op rather than a failure.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidCompression reports an unsupported compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrInvalidChunkSize reports a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrReleased reports a handle that was already released.
	ErrReleased = errors.New("handle already released")

	// ErrHandleMismatch reports a release call whose (pointer, length, capacity)
	// tuple does not match an allocation produced by the engine.
	ErrHandleMismatch = errors.New("release does not match an engine allocation")
)
