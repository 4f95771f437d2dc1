package content

import "errors"

var (
	ErrNotFound          = errors.New("content not found")
	ErrInvalidTransition = errors.New("invalid delivery status transition")
	ErrQualityAlreadySet = errors.New("quality score already set")
	ErrVariantAlreadySet = errors.New("variant already linked")
)
