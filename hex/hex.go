// Package hex formats unsigned values as fixed-width lowercase hexadecimal.
package hex

import (
	"fmt"
)

// Byte returns the value as 2 hex digits.
func Byte(value uint8) string {
	return fmt.Sprintf("%02x", value)
}

// Word returns the value as 8 hex digits.
func Word(value uint32) string {
	return fmt.Sprintf("%08x", value)
}

// Word0x returns the value as 8 hex digits, prefixed with "0x".
func Word0x(value uint32) string {
	return "0x" + Word(value)
}
