//go:build cgo

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

var (
	sharedOnce   sync.Once //nolint:gochecknoglobals // process-wide library state
	sharedBridge *bridge   //nolint:gochecknoglobals // process-wide library state
)

// shared returns the process-wide bridge, configuring it on first use.
func shared() *bridge {
	sharedOnce.Do(func() {
		sharedBridge = loadBridge(cHeap{})
	})

	return sharedBridge
}

// cHeap allocates with malloc so that hosts may hold results indefinitely.
type cHeap struct{}

func (cHeap) alloc(n int) unsafe.Pointer {
	return C.malloc(C.size_t(n))
}

func (cHeap) free(p unsafe.Pointer) {
	C.free(p)
}

func goBytes(data *C.char, n C.int) []byte {
	if data == nil || n <= 0 {
		return nil
	}

	return C.GoBytes(unsafe.Pointer(data), n)
}

func setOut(dst *C.int, v int) {
	if dst != nil {
		*dst = C.int(v)
	}
}

//export jc_compress
func jc_compress(data *C.char, n C.int, outLen, outCap *C.int) *C.char {
	p, l, c := shared().compress(goBytes(data, n))
	setOut(outLen, l)
	setOut(outCap, c)

	return (*C.char)(p)
}

//export jc_decompress
func jc_decompress(data *C.char, n C.int) *C.char {
	return (*C.char)(shared().decompress(goBytes(data, n)))
}

//export jc_ingest_chunk
func jc_ingest_chunk(data *C.char, n C.int) C.int {
	return C.int(shared().ingestChunk(goBytes(data, n)))
}

//export jc_run_action
func jc_run_action(name, params *C.char) C.int {
	var p []byte
	if params != nil {
		p = []byte(C.GoString(params))
	}

	return C.int(shared().runAction(C.GoString(name), p))
}

//export jc_next_output_chunk
func jc_next_output_chunk(maxLen C.int, outLen, outCap *C.int) *C.char {
	p, l, c := shared().nextOutputChunk(int(maxLen))
	setOut(outLen, l)
	setOut(outCap, c)

	return (*C.char)(p)
}

//export jc_finalize_output
func jc_finalize_output() {
	shared().finalizeOutput()
}

//export jc_get_last_error
func jc_get_last_error() *C.char {
	return (*C.char)(shared().lastError())
}

//export jc_release_bytes
func jc_release_bytes(p *C.char, n, capacity C.int) C.int {
	return C.int(shared().releaseBytes(unsafe.Pointer(p), int(n), int(capacity)))
}

//export jc_release_text
func jc_release_text(p *C.char) C.int {
	return C.int(shared().releaseText(unsafe.Pointer(p)))
}

//export jc_reset
func jc_reset() {
	shared().reset()
}
