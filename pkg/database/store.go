package database

import (
	"context"
	"slices"

	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store serves listing plans for one model from PostgreSQL. Soft-deleted
// rows are excluded by gorm.
type Store[T any] struct {
	db     *gorm.DB
	schema *listing.Schema
}

func NewStore[T any](db *gorm.DB, schema *listing.Schema) *Store[T] {
	return &Store[T]{db: db, schema: schema}
}

func (s *Store[T]) Schema() *listing.Schema {
	return s.schema
}

// Count returns the number of rows matching filter.
func (s *Store[T]) Count(ctx context.Context, filter listing.Filter) (int64, error) {
	var total int64
	err := s.scoped(ctx, filter).Count(&total).Error
	return total, err
}

// Find returns one page of rows matching plan.Filter.
func (s *Store[T]) Find(ctx context.Context, plan listing.Plan) ([]T, error) {
	tx := s.scoped(ctx, plan.Filter)
	tx = s.project(tx, plan)
	tx = preload(tx, s.schema, plan.Population, "")
	tx = s.order(tx, plan.Sort)

	var items []T
	if err := tx.Offset(plan.Offset()).Limit(plan.Limit()).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll returns every row matching filter in sort order, up to limit rows
// when limit is positive.
func (s *Store[T]) FindAll(ctx context.Context, filter listing.Filter, sort []listing.SortField, limit int, population []listing.Directive) ([]T, error) {
	tx := s.scoped(ctx, filter)
	tx = preload(tx, s.schema, population, "")
	tx = s.order(tx, sort)
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var items []T
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne returns the first row matching filter, or gorm.ErrRecordNotFound.
func (s *Store[T]) FindOne(ctx context.Context, filter listing.Filter, population []listing.Directive) (*T, error) {
	tx := preload(s.scoped(ctx, filter), s.schema, population, "")

	var item T
	if err := tx.Take(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Exists reports whether any row matches filter.
func (s *Store[T]) Exists(ctx context.Context, filter listing.Filter) (bool, error) {
	total, err := s.Count(ctx, filter)
	return total > 0, err
}

func (s *Store[T]) scoped(ctx context.Context, filter listing.Filter) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(new(T))
	if cond := Compile(filter, s.schema); cond != nil {
		tx = tx.Where(cond)
	}
	return tx
}

func (s *Store[T]) project(tx *gorm.DB, plan listing.Plan) *gorm.DB {
	if len(plan.Projection.Include) > 0 {
		columns := []string{"id"}
		for _, name := range plan.Projection.Include {
			if f, ok := s.schema.Field(name); ok && f.Through == "" && !slices.Contains(plan.Omit, f.Column) {
				columns = appendUnique(columns, f.Column)
			}
		}
		for _, fk := range foreignKeys(s.schema, plan.Population) {
			columns = appendUnique(columns, fk)
		}
		return tx.Select(columns)
	}

	omit := slices.Clone(plan.Omit)
	for _, name := range plan.Projection.Exclude {
		if f, ok := s.schema.Field(name); ok && f.Through == "" && f.Column != "id" {
			omit = appendUnique(omit, f.Column)
		}
	}
	if len(omit) > 0 {
		return tx.Omit(omit...)
	}
	return tx
}

func (s *Store[T]) order(tx *gorm.DB, sort []listing.SortField) *gorm.DB {
	for _, sf := range sort {
		f, ok := s.schema.Field(sf.Field)
		if !ok || f.Through != "" {
			continue
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: f.Column},
			Desc:   sf.Desc,
		})
	}
	// Stable pages need a total order.
	return tx.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
}

// preload maps population directives onto gorm associations. Selected
// columns always keep the key and the foreign keys nested directives need.
func preload(tx *gorm.DB, schema *listing.Schema, directives []listing.Directive, prefix string) *gorm.DB {
	for _, d := range directives {
		rel, ok := schema.Relation(d.Path)
		if !ok {
			continue
		}

		name := rel.Association
		if prefix != "" {
			name = prefix + "." + name
		}

		if columns := relationColumns(rel.Schema, d); len(columns) > 0 {
			tx = tx.Preload(name, func(db *gorm.DB) *gorm.DB {
				return db.Select(columns)
			})
		} else {
			tx = tx.Preload(name)
		}

		tx = preload(tx, rel.Schema, d.Populate, name)
	}
	return tx
}

func relationColumns(schema *listing.Schema, d listing.Directive) []string {
	if len(d.Select) == 0 {
		return nil
	}
	columns := []string{"id"}
	for _, name := range d.Select {
		if f, ok := schema.Field(name); ok && f.Through == "" {
			columns = appendUnique(columns, f.Column)
		}
	}
	for _, fk := range foreignKeys(schema, d.Populate) {
		columns = appendUnique(columns, fk)
	}
	return columns
}

func foreignKeys(schema *listing.Schema, directives []listing.Directive) []string {
	var keys []string
	for _, d := range directives {
		if rel, ok := schema.Relation(d.Path); ok && rel.ForeignKey != "" {
			keys = append(keys, rel.ForeignKey)
		}
	}
	return keys
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
