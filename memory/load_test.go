package memory

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func writeImage(t *testing.T, name string, data []byte) (path string) {
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("%v: %v", path, err)
	}
	return
}

func counting(size int) (data []byte) {
	data = make([]byte, size)
	for n := range data {
		data[n] = byte(n + 1)
	}
	return
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(32)

	err := mem.Load(bytes.NewReader([]byte{1, 2, 3}))
	assert.NoError(err)
	assert.Equal(uint32(0x00030201)|uint32(SENTINEL)<<24, mem.Get32(0))
	assert.Empty(warnings.String())

	// Read errors are returned.
	err = mem.Load(iotest.ErrReader(iotest.ErrTimeout))
	assert.True(errors.Is(err, iotest.ErrTimeout))
}

func TestMemory_Load_TooBig(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(16)

	err := mem.Load(bytes.NewReader(counting(17)))
	assert.Equal(ErrProgramTooBig, err)
	assert.Equal("WARNING: Address out of range: 0x00000010\n", warnings.String())

	// Everything that fit was written.
	for addr := range mem.Size() {
		assert.Equal(uint8(addr+1), mem.Get8(addr))
	}
}

func TestMemory_LoadFile(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(32)
	data := counting(32)
	path := writeImage(t, "exact.bin", data)

	assert.True(mem.LoadFile(path))
	for addr := range mem.Size() {
		assert.Equal(data[addr], mem.Get8(addr))
	}
	assert.Empty(warnings.String())
}

func TestMemory_LoadFile_TooBig(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(32)
	path := writeImage(t, "big.bin", counting(33))

	assert.False(mem.LoadFile(path))
	assert.Equal("WARNING: Address out of range: 0x00000020\n"+
		"Program too big.\n", warnings.String())
	assert.Equal(uint8(32), mem.Get8(31))
}

func TestMemory_LoadFile_Missing(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(16)
	path := filepath.Join(t.TempDir(), "missing.bin")

	assert.False(mem.LoadFile(path))
	assert.Equal("Can't open file '"+path+"' for reading.\n", warnings.String())

	warnings.Reset()
	for addr := range mem.Size() {
		assert.Equal(SENTINEL, mem.Get8(addr))
	}
	assert.Empty(warnings.String())
}

func intelHex(records ...string) string {
	return strings.Join(append(records, ":00000001FF"), "\n") + "\n"
}

func TestMemory_LoadIntelHex(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(16)

	err := mem.LoadIntelHex(strings.NewReader(intelHex(":0400080001020304EA")))
	assert.NoError(err)
	assert.Equal(uint32(0x04030201), mem.Get32(8))
	assert.Equal(SENTINEL, mem.Get8(7))
	assert.Equal(SENTINEL, mem.Get8(12))
	assert.Empty(warnings.String())
}

func TestMemory_LoadIntelHex_TooBig(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(16)

	err := mem.LoadIntelHex(strings.NewReader(intelHex(":04000E0001020304E4")))
	assert.Equal(ErrProgramTooBig, err)
	assert.Equal(uint16(0x0201), mem.Get16(14))
	assert.Equal("WARNING: Address out of range: 0x00000010\n", warnings.String())
}

func TestMemory_LoadIntelHex_Invalid(t *testing.T) {
	assert := assert.New(t)

	mem, _ := newTestMemory(16)

	err := mem.LoadIntelHex(strings.NewReader("this is not intel hex\n"))
	assert.True(errors.Is(err, ErrIntelHex))
	for addr := range mem.Size() {
		assert.Equal(SENTINEL, mem.Get8(addr))
	}
}

func TestMemory_LoadIntelHexFile(t *testing.T) {
	assert := assert.New(t)

	mem, warnings := newTestMemory(16)
	path := writeImage(t, "prog.hex", []byte(intelHex(":0400000001020304F2")))

	assert.True(mem.LoadIntelHexFile(path))
	assert.Equal(uint32(0x04030201), mem.Get32(0))
	assert.Empty(warnings.String())

	missing := filepath.Join(t.TempDir(), "missing.hex")
	assert.False(mem.LoadIntelHexFile(missing))
	assert.Equal("Can't open file '"+missing+"' for reading.\n", warnings.String())
}
