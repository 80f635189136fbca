package loyalty

import "errors"

var (
	ErrInsufficientFunds    = errors.New("loyalty: insufficient funds")
	ErrPriceIndexOutOfRange = errors.New("loyalty: price index out of range")
)
