package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Kind is the native type a filter field is compared as.
type Kind int

const (
	KindString Kind = iota
	KindID
	KindNumber
	KindBool
	KindTime
)

// Field describes one filterable, sortable path of an entity.
type Field struct {
	// Name is the path callers use in queries, e.g. "company._id".
	Name string
	// Column is the storage column backing the path.
	Column string
	Kind   Kind
	// Through, when set, makes the field a many-to-many membership test:
	// the condition becomes "Column IN (Through <op> values)". Such fields
	// can be filtered by equality and membership but not sorted or projected.
	Through string
}

// Relation is a populatable reference from one entity to another.
type Relation struct {
	// Path is the name callers use in populate directives.
	Path string
	// Association is the store-level association name, e.g. the Go field.
	Association string
	// ForeignKey is the owner column holding the reference. Empty for
	// many-to-many relations.
	ForeignKey string
	Schema     *Schema
}

// Schema is the set of fields and relations a listing may touch. Anything
// outside it is either ignored (sort, projection, population) or treated as
// a field that never matches (filters).
type Schema struct {
	fields    map[string]Field
	relations map[string]Relation
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields:    make(map[string]Field, len(fields)),
		relations: map[string]Relation{},
	}
	for _, f := range fields {
		s.fields[f.Name] = f
	}
	return s
}

// Relate registers relations. It returns the schema so declarations chain.
func (s *Schema) Relate(relations ...Relation) *Schema {
	for _, r := range relations {
		s.relations[r.Path] = r
	}
	return s
}

func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	f, ok := s.fields[name]
	return f, ok
}

func (s *Schema) Relation(path string) (Relation, bool) {
	if s == nil {
		return Relation{}, false
	}
	r, ok := s.relations[path]
	return r, ok
}

// Selectable reports whether name is a plain column that can be sorted or
// projected.
func (s *Schema) Selectable(name string) bool {
	f, ok := s.Field(name)
	return ok && f.Through == ""
}

// Cast converts a raw query value into the native type of the named field.
// ok is false when the value cannot represent the field (e.g. "abc" for a
// number); err is only returned for malformed identifiers. Unknown fields
// pass through untouched.
func (s *Schema) Cast(name string, raw any) (value any, ok bool, err error) {
	f, known := s.Field(name)
	if !known || raw == nil {
		return raw, true, nil
	}
	return f.cast(raw)
}

func (f Field) cast(raw any) (any, bool, error) {
	if str, isString := raw.(string); isString {
		raw = strings.TrimSpace(str)
	}

	switch f.Kind {
	case KindID:
		return ParseID(f.Name, raw)
	case KindNumber:
		v, err := cast.ToFloat64E(raw)
		return v, err == nil, nil
	case KindBool:
		v, err := cast.ToBoolE(raw)
		return v, err == nil, nil
	case KindTime:
		v, err := cast.ToTimeE(raw)
		return v, err == nil && !v.Equal(time.Time{}), nil
	default:
		v, err := cast.ToStringE(raw)
		return v, err == nil, nil
	}
}

// ParseID converts raw into the store's identifier type.
func ParseID(field string, raw any) (uuid.UUID, bool, error) {
	if id, ok := raw.(uuid.UUID); ok {
		return id, true, nil
	}
	str, err := cast.ToStringE(raw)
	if err == nil {
		var id uuid.UUID
		if id, err = uuid.Parse(strings.TrimSpace(str)); err == nil {
			return id, true, nil
		}
	}
	return uuid.Nil, false, fmt.Errorf("%w: %s must be a valid id, got %v", ErrInvalidArgument, field, raw)
}
