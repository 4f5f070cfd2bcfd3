package db

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFound reports whether err means "no row matched".
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
