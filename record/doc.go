// Package record holds parsed JSON records and the sequences they form.
//
// A Sequence always corresponds to a top-level JSON array. Each element is a
// Record: the compact literal text of one JSON value. Keeping literals instead
// of decoded Go values means numbers such as 12345678901234567890 or 1.50 and
// escaped strings come back out of the engine byte-for-byte, while Field,
// StringValue and Text decode on demand for sorting and filtering.
//
//	seq, err := record.Parse([]byte(`[{"a":"z"},{"a":"a"}]`))
//	if err != nil {
//	    return err // wraps errs.ErrFormat
//	}
//	v, ok := seq[0].Field("a") // `"z"`, true
package record
