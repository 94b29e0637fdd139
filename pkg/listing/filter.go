package listing

import (
	"regexp"
	"sort"
)

// Operators understood in filter documents.
const (
	OpEq      = "$eq"
	OpNe      = "$ne"
	OpIn      = "$in"
	OpNin     = "$nin"
	OpGt      = "$gt"
	OpGte     = "$gte"
	OpLt      = "$lt"
	OpLte     = "$lte"
	OpRegex   = "$regex"
	OpOptions = "$options"
	OpExists  = "$exists"
	OpOr      = "$or"
	OpAnd     = "$and"
)

// Filter is a MongoDB-style filter document. Keys are field paths such as
// "createdBy._id" or the logical operators $or and $and, whose values are
// []Filter. A field value is either a literal (equality) or an Op.
type Filter map[string]any

// Op holds the operator matchers for a single field, e.g. Op{"$in": []any{...}}.
type Op map[string]any

// Keys returns the filter keys in a stable order.
func (f Filter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns the operator names in a stable order.
func (o Op) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func Eq(field string, value any) Filter {
	return Filter{field: value}
}

func Ne(field string, value any) Filter {
	return Filter{field: Op{OpNe: value}}
}

func In[V any](field string, values []V) Filter {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return Filter{field: Op{OpIn: list}}
}

// Contains matches values holding text as a case-insensitive substring.
// Regex metacharacters in text are matched literally.
func Contains(field, text string) Filter {
	return Filter{field: Op{OpRegex: regexp.QuoteMeta(text), OpOptions: "i"}}
}

// Matches is Contains anchored on both ends: a case-insensitive whole-value match.
func Matches(field, text string) Filter {
	return Filter{field: Op{OpRegex: "^" + regexp.QuoteMeta(text) + "$", OpOptions: "i"}}
}

// And intersects filters. Empty filters are dropped; a single survivor is
// returned as is.
func And(filters ...Filter) Filter {
	parts := nonEmpty(filters)
	switch len(parts) {
	case 0:
		return Filter{}
	case 1:
		return parts[0]
	}
	return Filter{OpAnd: parts}
}

// Or matches documents satisfying any of the filters. An empty member
// matches everything, so the whole disjunction collapses to no filter.
// Calling it with no filters also yields no filter.
func Or(filters ...Filter) Filter {
	if len(filters) == 0 {
		return Filter{}
	}
	for _, f := range filters {
		if len(f) == 0 {
			return Filter{}
		}
	}
	if len(filters) == 1 {
		return filters[0]
	}
	return Filter{OpOr: filters}
}

func nonEmpty(filters []Filter) []Filter {
	out := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if len(f) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// setOp adds an operator to a field, folding an existing literal into $eq.
func setOp(f Filter, key, op string, value any) {
	cur, exists := f[key]
	if !exists {
		f[key] = Op{op: value}
		return
	}
	if existing, ok := cur.(Op); ok {
		existing[op] = value
		return
	}
	f[key] = Op{OpEq: cur, op: value}
}

func setEq(f Filter, key string, value any) {
	if _, exists := f[key]; !exists {
		f[key] = value
		return
	}
	setOp(f, key, OpEq, value)
}

// matchNothing marks a field whose requested value cannot exist, e.g. a
// non-numeric value for a numeric field.
func matchNothing(f Filter, key string) {
	setOp(f, key, OpIn, []any{})
}
