// Package engine implements the stateful three-phase pipeline: chunked
// ingestion, a whole-collection action, and chunked extraction.
//
// # Cycle
//
//	eng, _ := engine.New()
//	for _, chunk := range chunks {       // each chunk: a compressed JSON array
//	    if err := eng.IngestChunk(chunk); err != nil {
//	        return err                    // eng.LastError() holds the message too
//	    }
//	}
//	if err := eng.RunAction("sort", []byte(`{"field":"name","dir":"asc"}`)); err != nil {
//	    return err
//	}
//	for {
//	    chunk, more := eng.NextOutputChunk(64 * 1024)
//	    if !more {
//	        break
//	    }
//	    w.Write(chunk.Bytes())
//	    chunk.Release()
//	}
//	eng.FinalizeOutput()
//
// # Ownership
//
// Every result the engine produces (compressed bytes, decompressed text,
// output chunks) is a handle owned by the caller. Release hands it back; a
// second Release reports errs.ErrReleased. OutstandingHandles and the
// jsonc_outstanding_handles gauge expose results that were never released.
//
// # Errors
//
// Failing methods return an error and also leave its message in the error
// register, read with LastError. The register keeps only the latest message.
package engine
