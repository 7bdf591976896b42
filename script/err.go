package script

import (
	"errors"

	"github.com/ezrec/simmem/translate"
)

var f = translate.From

var (
	ErrAddress = errors.New(f("address out of range"))
	ErrValue   = errors.New(f("value out of range"))
)

// ErrExpression reports an expression that did not evaluate to an integer.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
