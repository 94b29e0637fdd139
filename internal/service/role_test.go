package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/repository"
	"github.com/google/uuid"
)

func TestRoleName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		builtin  bool
	}{
		{" hr ", "HR", true},
		{"Admin", "ADMIN", true},
		{"user", "USER", true},
		{"auditor", "AUDITOR", false},
	}

	for _, tt := range tests {
		got := roleName(tt.raw)
		if got != tt.expected {
			t.Errorf("roleName(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
		if isBuiltinRole(got) != tt.builtin {
			t.Errorf("isBuiltinRole(%q) = %v, want %v", got, !tt.builtin, tt.builtin)
		}
	}
}

func roleRow(id uuid.UUID, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow(id.String(), name, true)
}

func TestRoleDeleteBuiltin(t *testing.T) {
	db, mock, statements := capturingDB(t)
	id := uuid.New()
	mock.ExpectQuery("find").WillReturnRows(roleRow(id, "ADMIN"))

	err := NewRoleService(repository.NewRoleRepository(db)).Delete(context.Background(), id.String(), adminActor())
	if !errors.Is(err, apperrors.ErrProtectedRole) {
		t.Fatalf("Expected built-in role to be protected, got %v", err)
	}
	if issued := statements(); len(issued) != 1 {
		t.Errorf("Expected no write after the lookup, got %v", issued)
	}
}

func TestRoleRenameBuiltin(t *testing.T) {
	db, mock, statements := capturingDB(t)
	id := uuid.New()
	mock.ExpectQuery("find").WillReturnRows(roleRow(id, "HR"))

	name := "recruiter"
	_, err := NewRoleService(repository.NewRoleRepository(db)).Update(context.Background(), id.String(), &dto.UpdateRoleRequest{Name: &name}, adminActor())
	if !errors.Is(err, apperrors.ErrProtectedRole) {
		t.Fatalf("Expected rename to be rejected, got %v", err)
	}
	if issued := statements(); len(issued) != 1 {
		t.Errorf("Expected no write after the lookup, got %v", issued)
	}
}

func TestRoleUpdateBuiltinDescription(t *testing.T) {
	db, mock, statements := capturingDB(t)
	id := uuid.New()
	mock.ExpectQuery("find").WillReturnRows(roleRow(id, "HR"))
	mock.ExpectBegin()
	mock.ExpectExec("update").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("reload").WillReturnRows(roleRow(id, "HR"))

	name, description := "hr", "Recruiters"
	role, err := NewRoleService(repository.NewRoleRepository(db)).Update(context.Background(), id.String(),
		&dto.UpdateRoleRequest{Name: &name, Description: &description}, adminActor())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if role.Name != "HR" {
		t.Errorf("Expected HR, got %s", role.Name)
	}

	var update string
	for _, sql := range statements() {
		if strings.HasPrefix(sql, "UPDATE") {
			update = sql
		}
	}
	if !strings.Contains(update, `"description"=`) {
		t.Errorf("Expected description to be written, got %s", update)
	}
	if strings.Contains(update, `"name"=`) {
		t.Errorf("Expected an unchanged name to be left out, got %s", update)
	}
}

func TestRoleCreateDuplicate(t *testing.T) {
	db, mock, statements := capturingDB(t)
	mock.ExpectQuery("count").
		WithArgs("AUDITOR").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	active := true
	_, err := NewRoleService(repository.NewRoleRepository(db)).Create(context.Background(),
		&dto.CreateRoleRequest{Name: " auditor ", Description: "Read only", IsActive: &active}, adminActor())
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("Expected conflict, got %v", err)
	}

	issued := statements()
	if len(issued) != 1 || !strings.Contains(issued[0], `"roles"."name" = $1`) {
		t.Errorf("Expected a single name lookup, got %v", issued)
	}
}
