package listing

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	DefaultCurrent  = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Current  int
	PageSize int
}

// NewPage normalises raw page inputs. Missing, non-numeric or non-positive
// values fall back to the defaults; pageSize is capped at MaxPageSize.
func NewPage(current, pageSize any) Page {
	p := Page{
		Current:  PositiveOr(current, DefaultCurrent),
		PageSize: PositiveOr(pageSize, DefaultPageSize),
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Current > math.MaxInt32 {
		p.Current = math.MaxInt32
	}
	return p
}

// PositiveOr coerces a string or number to a positive int, returning fallback
// for anything else.
func PositiveOr(raw any, fallback int) int {
	if s, ok := raw.(string); ok {
		// cast reads a leading zero as an octal prefix.
		s = strings.TrimLeft(strings.TrimSpace(s), "0")
		if s == "" {
			return fallback
		}
		raw = s
	}
	if raw == nil {
		return fallback
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Offset is the number of matching items before this page.
func (p Page) Offset() int {
	return (p.Current - 1) * p.PageSize
}

// Meta describes a page of results.
type Meta struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Pages    int   `json:"pages"`
	Total    int64 `json:"total"`
}

func NewMeta(p Page, total int64) Meta {
	pages := 0
	if total > 0 && p.PageSize > 0 {
		pages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return Meta{
		Current:  p.Current,
		PageSize: p.PageSize,
		Pages:    pages,
		Total:    total,
	}
}
