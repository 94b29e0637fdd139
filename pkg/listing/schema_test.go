package listing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	testCompanySchema = NewSchema(
		Field{Name: "_id", Column: "id", Kind: KindID},
		Field{Name: "name", Column: "name"},
		Field{Name: "logo", Column: "logo"},
	)

	testJobSchema = NewSchema(
		Field{Name: "_id", Column: "id", Kind: KindID},
		Field{Name: "name", Column: "name"},
		Field{Name: "location", Column: "location"},
		Field{Name: "level", Column: "level"},
		Field{Name: "logo", Column: "logo"},
		Field{Name: "salary", Column: "salary", Kind: KindNumber},
		Field{Name: "isActive", Column: "is_active", Kind: KindBool},
		Field{Name: "createdAt", Column: "created_at", Kind: KindTime},
		Field{Name: "companyId", Column: "company_id", Kind: KindID},
		Field{Name: "createdBy._id", Column: "created_by_id", Kind: KindID},
		Field{Name: "skills", Column: "id", Kind: KindID, Through: "SELECT job_id FROM job_skills WHERE skill_id"},
	).Relate(
		Relation{Path: "company", Association: "Company", ForeignKey: "company_id", Schema: testCompanySchema},
	)
)

func TestSchemaCast(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		field   string
		raw     any
		want    any
		wantOK  bool
		wantErr bool
	}{
		{"string is trimmed", "location", " Hanoi ", "Hanoi", true, false},
		{"number", "salary", "1500", 1500.0, true, false},
		{"bad number", "salary", "lots", nil, false, false},
		{"bool", "isActive", "true", true, true, false},
		{"bad bool", "isActive", "maybe", nil, false, false},
		{"id", "companyId", id.String(), id, true, false},
		{"bad id", "companyId", "not-an-id", nil, false, true},
		{"unknown field passes through", "whatever", "x", "x", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := testJobSchema.Cast(tt.field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("Expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestSchemaCastTime(t *testing.T) {
	got, ok, err := testJobSchema.Cast("createdAt", "2024-03-01T00:00:00Z")
	if err != nil || !ok {
		t.Fatalf("Expected time to parse, got ok=%v err=%v", ok, err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if _, ok, _ := testJobSchema.Cast("createdAt", "yesterday-ish"); ok {
		t.Error("Expected unparseable time to be rejected")
	}
}

func TestSchemaSelectable(t *testing.T) {
	if !testJobSchema.Selectable("createdAt") {
		t.Error("Expected createdAt to be selectable")
	}
	if testJobSchema.Selectable("skills") {
		t.Error("Expected many-to-many field to be unselectable")
	}
	if testJobSchema.Selectable("password") {
		t.Error("Expected unknown field to be unselectable")
	}
	var nilSchema *Schema
	if nilSchema.Selectable("name") {
		t.Error("Expected nil schema to select nothing")
	}
}
