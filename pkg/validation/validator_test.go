package validation

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type statusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

type skillsRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,uuid_list"`
}

type userRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0,lte=120"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatalf("register: %v", err)
	}
	return v
}

func TestApplicationStatus(t *testing.T) {
	v := newValidator(t)

	for _, status := range []string{"pending", "reviewed", "accepted", "rejected", "offered"} {
		if err := v.Struct(statusRequest{Status: status}); err != nil {
			t.Errorf("Expected %q to be valid, got %v", status, err)
		}
	}

	err := v.Struct(statusRequest{Status: "hired"})
	if err == nil {
		t.Fatal("Expected an unknown status to fail")
	}
	want := []string{"status must be one of pending, reviewed, accepted, rejected, offered"}
	if got := Translate(err); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestUUIDList(t *testing.T) {
	v := newValidator(t)

	if err := v.Struct(skillsRequest{Skills: []string{uuid.NewString(), uuid.NewString()}}); err != nil {
		t.Errorf("Expected valid ids to pass, got %v", err)
	}

	err := v.Struct(skillsRequest{Skills: []string{uuid.NewString(), "not-an-id"}})
	if err == nil {
		t.Fatal("Expected a malformed id to fail")
	}
	if got := Translate(err); len(got) != 1 || got[0] != "skills must be a list of valid ids" {
		t.Errorf("Unexpected messages: %v", got)
	}
}

func TestTranslateUsesJSONNames(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(userRequest{Email: "nope", Age: 200})
	got := Translate(err)
	want := []string{
		"name is required",
		"email is not a valid address",
		"age must be less than or equal to 120",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
