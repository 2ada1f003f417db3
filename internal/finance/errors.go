package finance

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCardNotFound        = errors.New("card not found")
	ErrDuplicateName       = errors.New("name already in use")
	ErrInvalidCard         = errors.New("invalid card")
	ErrInvalidAccount      = errors.New("invalid account")
)
