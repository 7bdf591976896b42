package hex

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByte(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("00", Byte(0))
	assert.Equal("0a", Byte(0x0a))
	assert.Equal("a5", Byte(0xa5))
	assert.Equal("ff", Byte(0xff))

	for n := range 256 {
		text := Byte(uint8(n))
		assert.Len(text, 2)
		value, err := strconv.ParseUint(text, 16, 8)
		assert.NoError(err)
		assert.Equal(uint64(n), value)
	}
}

func TestWord(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value uint32
		word  string
	}){
		{0, "00000000"},
		{0x1, "00000001"},
		{0xabcd, "0000abcd"},
		{0x12345678, "12345678"},
		{0xffffffff, "ffffffff"},
	}

	for _, entry := range table {
		assert.Equal(entry.word, Word(entry.value))
		assert.Equal("0x"+entry.word, Word0x(entry.value))
	}
}

func FuzzWord(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0xdeadbeef))
	f.Fuzz(func(t *testing.T, value uint32) {
		assert := assert.New(t)

		text := Word(value)
		assert.Len(text, 8)
		parsed, err := strconv.ParseUint(text, 16, 32)
		assert.NoError(err)
		assert.Equal(uint64(value), parsed)
		assert.Equal("0x"+text, Word0x(value))
	})
}
