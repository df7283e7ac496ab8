package scenario

import "errors"

var (
	ErrFailedToParseScript = errors.New("scenario: failed to parse script")
	ErrFailedToReadScript  = errors.New("scenario: failed to read script")
	ErrUnknownOp           = errors.New("scenario: unknown operation")
	ErrInvalidScript       = errors.New("scenario: invalid script")
	ErrReplayCancelled     = errors.New("scenario: replay cancelled")
)
