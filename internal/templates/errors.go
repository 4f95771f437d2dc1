package templates

import "errors"

var (
	ErrNotFound  = errors.New("template not found")
	ErrNameTaken = errors.New("template name already in use")
)
