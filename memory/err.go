package memory

import (
	"errors"

	"github.com/ezrec/simmem/hex"
	"github.com/ezrec/simmem/translate"
)

var f = translate.From

var (
	// Load errors
	ErrProgramTooBig = errors.New(f("Program too big."))
	ErrIntelHex      = errors.New(f("intel hex"))
)

// ErrOpen reports a program image path that could not be opened.
type ErrOpen string

func (err ErrOpen) Error() string {
	return f("Can't open file '%v' for reading.", string(err))
}

// ErrRange reports an access outside of memory.
type ErrRange uint32

func (err ErrRange) Error() string {
	return f("WARNING: Address out of range: %v", hex.Word0x(uint32(err)))
}
