package earnings

import "errors"

var (
	ErrInvalidPartnerID = errors.New("invalid partner id")
	ErrInvalidWindow    = errors.New("invalid earnings window")
)
