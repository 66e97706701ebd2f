package booking

import (
	"errors"

	"rentalbot/internal/repository"
)

var (
	ErrEmptyOrder   = errors.New("no items selected")
	ErrUnknownItem  = errors.New("item not in catalog")
	ErrNotFound     = errors.New("booking not found")
	ErrNotAvailable = errors.New("equipment not available on that date")
)

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
