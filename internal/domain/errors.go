package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidReservation = errors.New("invalid reservation")
	ErrInvalidProperty    = errors.New("invalid property")
)
