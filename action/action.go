// Package action implements the declarative transforms applied to a whole
// record sequence: a stable sort on a string field, and a boolean-combined
// substring filter.
//
// Actions arrive as a name plus a JSON parameter payload:
//
//	sort:   {"field": "name", "dir": "asc"}
//	filter: {"logic": "OR", "filters": [{"field": "tag", "operator": "contains", "value": "red"}]}
//
// Parse turns that pair into an Action; Apply runs it. Neither mutates its
// input sequence.
package action

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bbluecircles/jsoncompressor/errs"
	"github.com/bbluecircles/jsoncompressor/record"
)

// Action names accepted by Parse.
const (
	NameSort   = "sort"
	NameFilter = "filter"
)

// Action is a transform over a complete record sequence.
//
// The implementations are Sort and Filter.
type Action interface {
	// Name returns the wire name of the action.
	Name() string

	// Apply returns the transformed sequence. The input is not modified.
	Apply(seq record.Sequence) record.Sequence
}

// Parse builds the Action named by name from its JSON parameters.
//
// Empty params are treated as "{}". Params that are not valid JSON, or do not
// fit the action's parameter shape, return errs.ErrMalformedActionParameters.
// Any name other than NameSort or NameFilter returns errs.ErrUnknownAction.
func Parse(name string, params []byte) (Action, error) {
	if len(bytes.TrimSpace(params)) == 0 {
		params = []byte("{}")
	}

	switch name {
	case NameSort:
		p, err := decodeSortParams(params)
		if err != nil {
			return nil, err
		}

		return p.action(), nil
	case NameFilter:
		p, err := decodeFilterParams(params)
		if err != nil {
			return nil, err
		}

		return p.action(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownAction, name)
	}
}

// Apply parses the action and applies it to seq in one step.
func Apply(name string, params []byte, seq record.Sequence) (record.Sequence, error) {
	act, err := Parse(name, params)
	if err != nil {
		return nil, err
	}

	return act.Apply(seq), nil
}

// param binds one parameter key to its destination. Keys match exactly,
// including case.
type param struct {
	key string
	dst any
}

// decodeObject decodes a JSON object, filling each bound destination whose key
// is present. Unbound keys are ignored.
func decodeObject(data []byte, params ...param) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: invalid JSON", errs.ErrMalformedActionParameters)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedActionParameters, err)
	}

	for _, p := range params {
		raw, ok := members[p.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, p.dst); err != nil {
			return fmt.Errorf("%w: %q: %w", errs.ErrMalformedActionParameters, p.key, err)
		}
	}

	return nil
}
