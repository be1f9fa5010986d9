package action

import (
	"encoding/json"
	"strings"

	"github.com/bbluecircles/jsoncompressor/record"
)

// Logic values for combining filter clauses.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// OperatorContains matches when the rendered field value contains the
// rendered clause value.
const OperatorContains = "contains"

// Clause is a single filter condition.
type Clause struct {
	Field    string
	Operator string
	Value    record.Record
}

// FilterSpec combines clauses with Logic.
type FilterSpec struct {
	Logic   string
	Clauses []Clause
}

// Filter is the filter action.
//
// A clause passes when the record has Field and the operator matches; an
// unknown operator never matches. AND keeps records where every clause passes
// and OR keeps records where any clause passes, so with zero clauses AND keeps
// everything and OR keeps nothing. Any other logic value keeps nothing. The
// output preserves the input order.
//
// For "contains", both sides are compared by their canonical JSON rendering
// (see record.Record.Text), so string values match with their quotes:
// "red" matches a field holding "red" but not one holding "bored".
type Filter struct {
	FilterSpec
}

var _ Action = Filter{}

type clauseParams struct {
	Field    string
	Operator string
	Value    json.RawMessage
}

type filterParams struct {
	Logic   string
	Filters []clauseParams
}

func decodeFilterParams(data []byte) (filterParams, error) {
	var (
		p       filterParams
		filters []json.RawMessage
	)

	if err := decodeObject(data,
		param{"logic", &p.Logic},
		param{"filters", &filters},
	); err != nil {
		return filterParams{}, err
	}

	p.Filters = make([]clauseParams, len(filters))
	for i, raw := range filters {
		c := &p.Filters[i]
		if err := decodeObject(raw,
			param{"field", &c.Field},
			param{"operator", &c.Operator},
			param{"value", &c.Value},
		); err != nil {
			return filterParams{}, err
		}
	}

	return p, nil
}

func (p filterParams) action() Filter {
	clauses := make([]Clause, len(p.Filters))
	for i, c := range p.Filters {
		value, err := record.Raw(string(c.Value))
		if err != nil {
			value = record.MustRaw("null")
		}
		clauses[i] = Clause{Field: c.Field, Operator: c.Operator, Value: value}
	}

	return Filter{FilterSpec{Logic: p.Logic, Clauses: clauses}}
}

// Name implements Action.
func (f Filter) Name() string {
	return NameFilter
}

// Apply implements Action.
func (f Filter) Apply(seq record.Sequence) record.Sequence {
	out := make(record.Sequence, 0, len(seq))

	if f.Logic != LogicAnd && f.Logic != LogicOr {
		return out
	}

	targets := make([]string, len(f.Clauses))
	for i, c := range f.Clauses {
		targets[i] = c.Value.Text()
	}

	for _, rec := range seq {
		if f.match(rec, targets) {
			out = append(out, rec)
		}
	}

	return out
}

func (f Filter) match(rec record.Record, targets []string) bool {
	members, _ := rec.Members()

	switch f.Logic {
	case LogicAnd:
		for i, c := range f.Clauses {
			if !c.match(members, targets[i]) {
				return false
			}
		}

		return true
	case LogicOr:
		for i, c := range f.Clauses {
			if c.match(members, targets[i]) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func (c Clause) match(members map[string]record.Record, target string) bool {
	v, ok := members[c.Field]
	if !ok {
		return false
	}

	switch c.Operator {
	case OperatorContains:
		return strings.Contains(v.Text(), target)
	default:
		return false
	}
}
