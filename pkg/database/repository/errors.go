package repository

import (
	"errors"

	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"gorm.io/gorm"
)

// wrap maps gorm errors onto the domain taxonomy. Callers that can name the
// conflicting field handle gorm.ErrDuplicatedKey themselves before calling
// this; anything unexpected becomes Internal rather than leaking driver
// details to the user.
func wrap(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tabletop.NotFound(what)
	default:
		return tabletop.Internal(err)
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
