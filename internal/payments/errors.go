package payments

import "errors"

var (
	ErrNotFound      = errors.New("payment not found")
	ErrPaymentFailed = errors.New("payment was not successful")
)
