// Package main builds libjsonc, a C shared library exposing a process-wide
// jsoncompressor engine to foreign hosts:
//
//	go build -buildmode=c-shared -o libjsonc.so ./cmd/libjsonc
//
// Every buffer the library returns lives on the C heap and is recorded in an
// allocation table. Hosts hand it back with jc_release_bytes(ptr, len, cap) or
// jc_release_text(ptr); a release that does not match a live allocation is
// rejected with -1 and recorded as the last error.
//
// Failing calls return NULL, 0 or -1 and record a message retrievable with
// jc_get_last_error. The engine is configured from JSONC_* environment
// variables on first use.
package main

func main() {}
