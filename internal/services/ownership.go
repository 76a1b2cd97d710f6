package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/uuid"
)

// owned is implemented by records that belong to a single user.
type owned interface {
	OwnerID() string
}

// loadOwned fetches the record with the given id into dest and checks that it
// belongs to userID. A missing record (or an id that cannot exist) yields
// notFound; a record owned by someone else yields ErrNotAuthorized.
func loadOwned[T owned](q *gorm.DB, dest T, id, userID string, notFound *apperrors.AppError) error {
	if !uuid.IsValid(id) {
		return notFound
	}
	if err := q.Where("id = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if dest.OwnerID() != userID {
		return apperrors.ErrNotAuthorized
	}
	return nil
}
