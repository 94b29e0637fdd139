package listing

import "github.com/google/uuid"

// RoleHR is the role whose listings are restricted to what the actor created.
const RoleHR = "HR"

// ActorScope identifies the authenticated caller of a listing.
type ActorScope struct {
	ActorID uuid.UUID
	Email   string
	Role    string
}

func (a *ActorScope) IsHR() bool {
	return a != nil && a.Role == RoleHR
}

// ScopePolicy derives the mandatory restriction for an actor. A nil result
// means the actor sees everything.
type ScopePolicy func(actor *ActorScope) Filter

// OwnedBy restricts HR actors to documents whose field equals their id.
func OwnedBy(field string) ScopePolicy {
	return func(actor *ActorScope) Filter {
		if !actor.IsHR() {
			return nil
		}
		return Eq(field, actor.ActorID)
	}
}

// CreatorScope restricts HR actors to documents they created.
var CreatorScope = OwnedBy("createdBy._id")
