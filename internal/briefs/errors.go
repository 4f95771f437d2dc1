package briefs

import "errors"

var (
	ErrNotFound         = errors.New("brief not found")
	ErrStatusRegression = errors.New("brief status cannot move backwards")
)
