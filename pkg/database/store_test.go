package database

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type testJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Location  string
	Level     string
	Salary    float64
	IsActive  bool
	CompanyID *uuid.UUID
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (testJob) TableName() string { return "jobs" }

var (
	testCompanySchema = listing.NewSchema(
		listing.Field{Name: "_id", Column: "id", Kind: listing.KindID},
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "logo", Column: "logo"},
	)

	testJobSchema = listing.NewSchema(
		listing.Field{Name: "_id", Column: "id", Kind: listing.KindID},
		listing.Field{Name: "name", Column: "name"},
		listing.Field{Name: "location", Column: "location"},
		listing.Field{Name: "level", Column: "level"},
		listing.Field{Name: "salary", Column: "salary", Kind: listing.KindNumber},
		listing.Field{Name: "isActive", Column: "is_active", Kind: listing.KindBool},
		listing.Field{Name: "createdAt", Column: "created_at", Kind: listing.KindTime},
		listing.Field{Name: "skills", Column: "id", Kind: listing.KindID, Through: "SELECT job_id FROM job_skills WHERE skill_id"},
	).Relate(
		listing.Relation{Path: "company", Association: "Company", ForeignKey: "company_id", Schema: testCompanySchema},
	)
)

func newMockDB(t *testing.T, dryRun bool) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		DryRun: dryRun,
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func whereSQL(t *testing.T, filter listing.Filter) (string, []any) {
	t.Helper()

	db, _ := newMockDB(t, true)
	var rows []testJob
	tx := db.Model(&testJob{})
	if cond := Compile(filter, testJobSchema); cond != nil {
		tx = tx.Where(cond)
	}
	stmt := tx.Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestCompile(t *testing.T) {
	skillA, skillB := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		filter   listing.Filter
		contains []string
		vars     int
	}{
		{
			name:     "equality",
			filter:   listing.Filter{"location": "Hanoi"},
			contains: []string{`"jobs"."location" = $1`, `"jobs"."deleted_at" IS NULL`},
			vars:     1,
		},
		{
			name:     "case-insensitive regex",
			filter:   listing.Contains("name", "C++"),
			contains: []string{`"jobs"."name" ~* $1`},
			vars:     1,
		},
		{
			name:     "case-sensitive regex",
			filter:   listing.Filter{"name": listing.Op{listing.OpRegex: "^Go"}},
			contains: []string{`"jobs"."name" ~ $1`},
			vars:     1,
		},
		{
			name:     "regex on a non-text field matches nothing",
			filter:   listing.Filter{"salary": listing.Op{listing.OpRegex: "1"}},
			contains: []string{"FALSE"},
		},
		{
			name:     "membership",
			filter:   listing.Filter{"level": listing.Op{listing.OpIn: []any{"JUNIOR", "SENIOR"}}},
			contains: []string{`"jobs"."level" IN ($1,$2)`},
			vars:     2,
		},
		{
			name:     "exclusion list",
			filter:   listing.Filter{"level": listing.Op{listing.OpNin: []any{"INTERN", "FRESHER"}}},
			contains: []string{`"jobs"."level" NOT IN ($1,$2)`},
			vars:     2,
		},
		{
			name:     "empty membership matches nothing",
			filter:   listing.Filter{"level": listing.Op{listing.OpIn: []any{}}},
			contains: []string{"FALSE"},
		},
		{
			name:     "range",
			filter:   listing.Filter{"salary": listing.Op{listing.OpGte: 1000.0, listing.OpLt: 5000.0}},
			contains: []string{`"jobs"."salary" >= $1`, `"jobs"."salary" < $2`},
			vars:     2,
		},
		{
			name:     "not equal",
			filter:   listing.Ne("location", "Hanoi"),
			contains: []string{`"jobs"."location" <> $1`},
			vars:     1,
		},
		{
			name:     "exists",
			filter:   listing.Filter{"location": listing.Op{listing.OpExists: false}},
			contains: []string{`"jobs"."location" IS NULL`},
		},
		{
			name:     "many-to-many membership",
			filter:   listing.In("skills", []uuid.UUID{skillA, skillB}),
			contains: []string{`"jobs"."id" IN (SELECT job_id FROM job_skills WHERE skill_id IN ($1,$2))`},
			vars:     2,
		},
		{
			name: "disjunction",
			filter: listing.Or(
				listing.Eq("location", "Hanoi"),
				listing.Eq("location", "HCM"),
			),
			contains: []string{`("jobs"."location" = $1 OR "jobs"."location" = $2)`},
			vars:     2,
		},
		{
			name: "conjunction",
			filter: listing.And(
				listing.Eq("isActive", true),
				listing.Contains("name", "go"),
			),
			contains: []string{`"jobs"."is_active" = $1`, `"jobs"."name" ~* $2`},
			vars:     2,
		},
		{
			name:     "unknown field never matches",
			filter:   listing.Filter{"password": "secret"},
			contains: []string{"FALSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, vars := whereSQL(t, tt.filter)
			for _, want := range tt.contains {
				if !strings.Contains(sql, want) {
					t.Errorf("Expected SQL to contain %s, got %s", want, sql)
				}
			}
			if len(vars) != tt.vars {
				t.Errorf("Expected %d vars, got %d (%v)", tt.vars, len(vars), vars)
			}
			if strings.Contains(sql, "password") {
				t.Errorf("Unknown field leaked into SQL: %s", sql)
			}
		})
	}
}

func TestCompileNoRestriction(t *testing.T) {
	filters := []listing.Filter{
		{},
		{"secret": listing.Op{listing.OpNe: "x"}},
		{"level": listing.Op{listing.OpNin: []any{}}},
		listing.Or(listing.Eq("location", "Hanoi"), listing.Filter{}),
	}

	for _, f := range filters {
		if cond := Compile(f, testJobSchema); cond != nil {
			t.Errorf("Expected no condition for %v, got %#v", f, cond)
		}
	}
}

func TestStoreCountAndFind(t *testing.T) {
	db, mock := newMockDB(t, false)
	store := NewStore[testJob](db, testJobSchema)

	plan, err := listing.Resolve(listing.Request{
		RawQuery: "location=Hanoi&current=2&pageSize=5",
		Current:  "2",
		PageSize: "5",
	}, listing.Options{Schema: testJobSchema, DefaultSort: "-createdAt"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "jobs" WHERE "jobs"\."location" = \$1 AND "jobs"\."deleted_at" IS NULL`).
		WithArgs("Hanoi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows([]string{"id", "name", "location"})
	for i := 0; i < 5; i++ {
		rows.AddRow(uuid.NewString(), "Backend", "Hanoi")
	}
	mock.ExpectQuery(`SELECT \* FROM "jobs" WHERE "jobs"\."location" = \$1 AND "jobs"\."deleted_at" IS NULL ORDER BY "jobs"\."created_at" DESC,"jobs"\."id" LIMIT`).
		WillReturnRows(rows)

	res, err := listing.List[testJob](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := listing.Meta{Current: 2, PageSize: 5, Pages: 3, Total: 12}
	if res.Meta != want {
		t.Errorf("Expected meta %+v, got %+v", want, res.Meta)
	}
	if len(res.Result) != 5 {
		t.Errorf("Expected 5 jobs, got %d", len(res.Result))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreSkipsFindOnEmptyCount(t *testing.T) {
	db, mock := newMockDB(t, false)
	store := NewStore[testJob](db, testJobSchema)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	plan, _ := listing.Resolve(listing.Request{}, listing.Options{Schema: testJobSchema})
	res, err := listing.List[testJob](context.Background(), store, plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Meta.Pages != 0 || len(res.Result) != 0 {
		t.Errorf("Expected an empty page, got %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRelationColumns(t *testing.T) {
	d := listing.Populate("company", "name", "logo", "bogus")
	got := relationColumns(testCompanySchema, d)
	want := []string{"id", "name", "logo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if cols := relationColumns(testCompanySchema, listing.Populate("company")); cols != nil {
		t.Errorf("Expected all columns when nothing is selected, got %v", cols)
	}

	keys := foreignKeys(testJobSchema, []listing.Directive{listing.Populate("company"), listing.Populate("nope")})
	if !reflect.DeepEqual(keys, []string{"company_id"}) {
		t.Errorf("Expected company_id, got %v", keys)
	}
}
