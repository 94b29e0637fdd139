package listing

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestCreatorScope(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name  string
		actor *ActorScope
		want  Filter
	}{
		{"anonymous", nil, nil},
		{"admin", &ActorScope{ActorID: id, Role: "ADMIN"}, nil},
		{"user", &ActorScope{ActorID: id, Role: "USER"}, nil},
		{"hr", &ActorScope{ActorID: id, Role: RoleHR}, Filter{"createdBy._id": id}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreatorScope(tt.actor)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOwnedByCustomField(t *testing.T) {
	id := uuid.New()
	got := OwnedBy("job.createdBy._id")(&ActorScope{ActorID: id, Role: RoleHR})
	if got["job.createdBy._id"] != id {
		t.Errorf("Expected scope on job.createdBy._id, got %v", got)
	}
}
