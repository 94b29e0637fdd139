package listing

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

// Reserved query keys. They steer the listing and never become filter fields.
const (
	KeyCurrent  = "current"
	KeyPageSize = "pageSize"
	KeySort     = "sort"
	KeyFields   = "fields"
	KeyPopulate = "populate"
	KeyFilter   = "filter"
	KeySkip     = "skip"
	KeyLimit    = "limit"
)

const (
	maxFilterDepth   = 4
	maxPopulateDepth = 2
)

// SortField is one sort key. Earlier keys take priority.
type SortField struct {
	Field string
	Desc  bool
}

// Directive asks for a relation to be resolved into the referenced entity.
// Select limits the fields loaded; empty means all of them.
type Directive struct {
	Path     string
	Select   []string
	Populate []Directive
}

// Populate builds a directive for path restricted to fields.
func Populate(path string, fields ...string) Directive {
	return Directive{Path: path, Select: fields}
}

// With nests directives under d.
func (d Directive) With(nested ...Directive) Directive {
	d.Populate = append(append([]Directive(nil), d.Populate...), nested...)
	return d
}

// Projection limits the fields returned. Include wins when both are set.
type Projection struct {
	Include []string
	Exclude []string
}

func (p Projection) IsZero() bool {
	return len(p.Include) == 0 && len(p.Exclude) == 0
}

// Query is a raw query string decomposed against a schema.
type Query struct {
	Filter     Filter
	Sort       []SortField
	Population []Directive
	Projection Projection
}

// ParseQuery decomposes a raw query string such as
// "location=Hanoi&salary>=1000&level=JUNIOR,SENIOR&sort=-createdAt".
//
//	k=v           equality (k=/re/i for a regex, k=a,b for $in)
//	k!=v          $ne (k!=a,b for $nin)
//	k>v k>=v k<v k<=v
//	k  / !k       $exists true / false
//	filter={...}  JSON filter document, ANDed with the rest ($or/$and allowed)
//	sort, fields, populate  directives
//
// current and pageSize are pagination directives and are dropped, as are
// skip and limit. Empty values mean "no filter". The only error is
// ErrInvalidArgument for malformed identifiers.
func ParseQuery(raw string, schema *Schema) (Query, error) {
	q := Query{Filter: Filter{}}
	var documents []Filter

	for _, part := range strings.Split(strings.TrimPrefix(raw, "?"), "&") {
		if part == "" {
			continue
		}
		key, op, value := splitPart(part)

		switch key {
		case "", KeyCurrent, KeyPageSize, KeySkip, KeyLimit:
			continue
		case KeySort:
			q.Sort = ParseSort(value, schema)
			continue
		case KeyFields:
			q.Projection = parseProjection(value, schema)
			continue
		case KeyPopulate:
			q.Population = parsePopulation(value, schema)
			continue
		case KeyFilter:
			doc, err := parseDocument(value, schema)
			if err != nil {
				return Query{}, err
			}
			if len(doc) > 0 {
				documents = append(documents, doc)
			}
			continue
		}

		if err := addMatcher(q.Filter, schema, key, op, value); err != nil {
			return Query{}, err
		}
	}

	if len(documents) > 0 {
		q.Filter = And(append([]Filter{q.Filter}, documents...)...)
	}
	return q, nil
}

// Extract removes every pair for key from raw and returns the last value
// given with "=", along with the remaining query. Call sites use it for
// parameters with their own semantics, such as free-text search.
func Extract(raw, key string) (value, rest string) {
	parts := strings.Split(strings.TrimPrefix(raw, "?"), "&")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" {
			continue
		}
		k, op, v := splitPart(part)
		if k != key {
			kept = append(kept, part)
			continue
		}
		if op == OpEq {
			value = strings.TrimSpace(v)
		}
	}
	return value, strings.Join(kept, "&")
}

// splitPart finds the comparison operator in an undecoded "key<op>value" pair.
func splitPart(part string) (key, op, value string) {
	idx := strings.IndexAny(part, "=!<>")
	if idx < 0 {
		return unescape(part), OpExists, "true"
	}
	if idx == 0 && part[0] == '!' && !strings.ContainsAny(part[1:], "=!<>") {
		return unescape(part[1:]), OpExists, "false"
	}

	key, rest := unescape(part[:idx]), part[idx:]
	switch {
	case strings.HasPrefix(rest, "!="):
		return key, OpNe, unescape(rest[2:])
	case strings.HasPrefix(rest, ">="):
		return key, OpGte, unescape(rest[2:])
	case strings.HasPrefix(rest, "<="):
		return key, OpLte, unescape(rest[2:])
	case rest[0] == '>':
		return key, OpGt, unescape(rest[1:])
	case rest[0] == '<':
		return key, OpLt, unescape(rest[1:])
	case rest[0] == '=':
		return key, OpEq, unescape(rest[1:])
	}
	return "", "", ""
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func addMatcher(f Filter, schema *Schema, key, op, value string) error {
	// Operators are only accepted inside filter={...}.
	if strings.HasPrefix(key, "$") {
		return nil
	}
	value = strings.TrimSpace(value)

	switch op {
	case OpExists:
		setOp(f, key, OpExists, value == "true")
		return nil
	case OpEq:
		if value == "" {
			return nil
		}
		if pattern, options, ok := regexLiteral(value); ok {
			setOp(f, key, OpRegex, pattern)
			if options != "" {
				setOp(f, key, OpOptions, options)
			}
			return nil
		}
		if strings.Contains(value, ",") {
			raws := splitList(value)
			if blankList(raws) {
				return nil
			}
			values, err := castAll(schema, key, raws)
			if err != nil {
				return err
			}
			setOp(f, key, OpIn, values)
			return nil
		}
		v, ok, err := schema.Cast(key, value)
		if err != nil {
			return err
		}
		if !ok {
			matchNothing(f, key)
			return nil
		}
		setEq(f, key, v)
	case OpNe:
		if value == "" {
			return nil
		}
		if strings.Contains(value, ",") {
			raws := splitList(value)
			if blankList(raws) {
				return nil
			}
			values, err := castAll(schema, key, raws)
			if err != nil {
				return err
			}
			setOp(f, key, OpNin, values)
			return nil
		}
		v, ok, err := schema.Cast(key, value)
		if err != nil {
			return err
		}
		if ok {
			setOp(f, key, OpNe, v)
		}
	case OpGt, OpGte, OpLt, OpLte:
		if value == "" {
			return nil
		}
		v, ok, err := schema.Cast(key, value)
		if err != nil {
			return err
		}
		if !ok {
			matchNothing(f, key)
			return nil
		}
		setOp(f, key, op, v)
	}
	return nil
}

func castAll(schema *Schema, key string, raws []any) ([]any, error) {
	values := make([]any, 0, len(raws))
	for _, raw := range raws {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		v, ok, err := schema.Cast(key, raw)
		if err != nil {
			return nil, err
		}
		if ok {
			values = append(values, v)
		}
	}
	return values, nil
}

func splitList(value string) []any {
	parts := strings.Split(value, ",")
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}

// blankList reports a list such as "," or " , " that names no value at all.
func blankList(raws []any) bool {
	for _, raw := range raws {
		if s, ok := raw.(string); !ok || strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

func isListSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// regexLiteral recognises /pattern/flags. Patterns that do not compile are
// matched literally.
func regexLiteral(value string) (pattern, options string, ok bool) {
	if len(value) < 3 || value[0] != '/' {
		return "", "", false
	}
	last := strings.LastIndex(value, "/")
	if last <= 1 {
		return "", "", false
	}
	flags := value[last+1:]
	if strings.Trim(flags, "imsx") != "" {
		return "", "", false
	}
	if strings.Contains(flags, "i") {
		options = "i"
	}
	return safePattern(value[1:last]), options, true
}

// safePattern returns pattern when both Go and PostgreSQL accept it, and its
// escaped literal otherwise.
func safePattern(pattern string) string {
	if _, err := regexp.Compile(pattern); err != nil || !portablePattern(pattern) {
		return regexp.QuoteMeta(pattern)
	}
	return pattern
}

// portablePattern rejects RE2 syntax that PostgreSQL regular expressions do
// not support: Unicode classes, \z, \Q..\E, \C, \x{..}, named groups and
// inline flags. (?: is the only group prefix both accept.
func portablePattern(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			if i+1 >= len(pattern) {
				return false
			}
			i++
			switch pattern[i] {
			case 'p', 'P', 'z', 'Q', 'E', 'C':
				return false
			case 'x':
				if i+1 < len(pattern) && pattern[i+1] == '{' {
					return false
				}
			}
		case '(':
			if strings.HasPrefix(pattern[i+1:], "?") && !strings.HasPrefix(pattern[i+1:], "?:") {
				return false
			}
		}
	}
	return true
}

// ParseSort parses "-createdAt,name". Unknown or non-sortable fields and
// repeats are dropped. A nil schema accepts every field.
func ParseSort(spec string, schema *Schema) []SortField {
	var out []SortField
	seen := map[string]bool{}
	for _, token := range strings.FieldsFunc(spec, isListSeparator) {
		desc := false
		switch token[0] {
		case '-':
			desc, token = true, token[1:]
		case '+':
			token = token[1:]
		}
		if token == "" || seen[token] {
			continue
		}
		if schema != nil && !schema.Selectable(token) {
			continue
		}
		seen[token] = true
		out = append(out, SortField{Field: token, Desc: desc})
	}
	return out
}

func parseProjection(spec string, schema *Schema) Projection {
	var p Projection
	for _, token := range strings.FieldsFunc(spec, isListSeparator) {
		exclude := strings.HasPrefix(token, "-")
		name := strings.TrimLeft(token, "-+")
		if !schema.Selectable(name) {
			continue
		}
		if exclude {
			p.Exclude = append(p.Exclude, name)
		} else {
			p.Include = append(p.Include, name)
		}
	}
	return p
}

// parsePopulation accepts "company,skills" or a JSON directive (or array of
// them) shaped like {"path":"job","select":"name location","populate":{...}}.
func parsePopulation(spec string, schema *Schema) []Directive {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "{") || strings.HasPrefix(spec, "[") {
		var raw any
		if err := json.Unmarshal([]byte(spec), &raw); err != nil {
			return nil
		}
		return directives(raw, schema, 1)
	}
	return directives(spec, schema, 1)
}

func directives(raw any, schema *Schema, depth int) []Directive {
	if depth > maxPopulateDepth || schema == nil {
		return nil
	}

	switch v := raw.(type) {
	case string:
		var out []Directive
		for _, path := range strings.FieldsFunc(v, isListSeparator) {
			if _, ok := schema.Relation(path); ok {
				out = append(out, Directive{Path: path})
			}
		}
		return out
	case []any:
		var out []Directive
		for _, item := range v {
			out = append(out, directives(item, schema, depth)...)
		}
		return out
	case map[string]any:
		path, _ := v["path"].(string)
		rel, ok := schema.Relation(path)
		if !ok {
			return nil
		}
		d := Directive{Path: path, Select: selection(v["select"], rel.Schema)}
		if nested, ok := v["populate"]; ok {
			d.Populate = directives(nested, rel.Schema, depth+1)
		}
		return []Directive{d}
	}
	return nil
}

func selection(raw any, schema *Schema) []string {
	var tokens []string
	switch v := raw.(type) {
	case string:
		tokens = strings.FieldsFunc(v, isListSeparator)
	case []any:
		tokens = cast.ToStringSlice(v)
	}

	var out []string
	for _, token := range tokens {
		if schema.Selectable(token) {
			out = append(out, token)
		}
	}
	return out
}

// parseDocument decodes a JSON filter document. Undecodable documents are
// ignored rather than rejected.
func parseDocument(value string, schema *Schema) (Filter, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return nil, nil
	}
	return normalizeDocument(doc, schema, 1)
}

func normalizeDocument(doc map[string]any, schema *Schema, depth int) (Filter, error) {
	out := Filter{}
	if depth > maxFilterDepth {
		return out, nil
	}

	for key, raw := range doc {
		switch key {
		case OpOr, OpAnd:
			items, ok := raw.([]any)
			if !ok || len(items) == 0 {
				continue
			}
			var subs []Filter
			for _, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				sub, err := normalizeDocument(m, schema, depth+1)
				if err != nil {
					return nil, err
				}
				subs = append(subs, sub)
			}
			var combined Filter
			if key == OpOr {
				combined = Or(subs...)
			} else {
				combined = And(subs...)
			}
			for k, v := range combined {
				if k == OpAnd || k == OpOr {
					if existing, ok := out[k].([]Filter); ok {
						v = append(existing, v.([]Filter)...)
					}
				}
				out[k] = v
			}
		default:
			if strings.HasPrefix(key, "$") {
				continue
			}
			if err := normalizeMatcher(out, schema, key, raw); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func normalizeMatcher(out Filter, schema *Schema, key string, raw any) error {
	ops, isOps := raw.(map[string]any)
	if !isOps {
		return normalizeOperand(out, schema, key, OpEq, raw)
	}
	for op, operand := range ops {
		if err := normalizeOperand(out, schema, key, op, operand); err != nil {
			return err
		}
	}
	return nil
}

func normalizeOperand(out Filter, schema *Schema, key, op string, operand any) error {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		if s, ok := operand.(string); ok && strings.TrimSpace(s) == "" {
			return nil
		}
		if list, ok := operand.([]any); ok && op == OpEq {
			return normalizeOperand(out, schema, key, OpIn, list)
		}
		v, ok, err := schema.Cast(key, operand)
		if err != nil {
			return err
		}
		switch {
		case ok && op == OpEq:
			setEq(out, key, v)
		case ok:
			setOp(out, key, op, v)
		case op != OpNe:
			matchNothing(out, key)
		}
	case OpIn, OpNin:
		list, _ := operand.([]any)
		values, err := castAll(schema, key, list)
		if err != nil {
			return err
		}
		setOp(out, key, op, values)
	case OpRegex:
		if pattern, ok := operand.(string); ok && pattern != "" {
			setOp(out, key, OpRegex, safePattern(pattern))
		}
	case OpOptions:
		if options, ok := operand.(string); ok && strings.Contains(options, "i") {
			setOp(out, key, OpOptions, "i")
		}
	case OpExists:
		if exists, err := cast.ToBoolE(operand); err == nil {
			setOp(out, key, OpExists, exists)
		}
	}
	return nil
}
