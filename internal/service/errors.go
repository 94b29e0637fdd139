package service

import (
	"errors"
	"strings"

	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeError maps repository and listing errors onto domain errors. notFound
// is returned for a missing row; it may be nil when absence is not expected.
func storeError(err error, notFound *apperrors.DomainError) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsDomainError(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, listing.ErrInvalidArgument):
		message := strings.TrimPrefix(err.Error(), listing.ErrInvalidArgument.Error()+": ")
		return apperrors.WrapError(apperrors.InvalidArgument("%s", message), err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.WrapError(apperrors.Conflict("resource already exists"), err)
	default:
		return apperrors.WrapError(apperrors.ErrDependencyFailure, err)
	}
}

// parseID converts a path or body identifier, rejecting malformed ones.
func parseID(field, raw string) (uuid.UUID, error) {
	id, _, err := listing.ParseID(field, raw)
	if err != nil {
		return uuid.Nil, storeError(err, nil)
	}
	return id, nil
}

func parseIDs(field string, raws []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raws))
	seen := make(map[uuid.UUID]bool, len(raws))
	for _, raw := range raws {
		id, err := parseID(field, raw)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// stamp is the audit actor for changes made by actor.
func stamp(actor *listing.ActorScope) model.Actor {
	if actor == nil {
		return model.Actor{}
	}
	return model.NewActor(actor.ActorID, actor.Email)
}
