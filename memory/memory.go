// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/ezrec/simmem/internal"
)

const (
	SENTINEL   = uint8(0xa5)         // Fill value of unwritten memory.
	ALIGN      = 16                  // Memory size granularity, in bytes.
	SIZE_LIMIT = uint32(0xffff_fff0) // Largest memory size.
)

var _memory_defines = map[string]string{
	"MEMORY_SENTINEL": fmt.Sprintf("0x%02x", SENTINEL),
	"MEMORY_ALIGN":    fmt.Sprintf("%v", ALIGN),
}

var _default_logger = log.New(os.Stderr, "", 0)

// Memory is a bounds checked, little-endian, byte addressable memory.
type Memory struct {
	Logger *log.Logger // Destination of warnings. Standard error if nil.

	data []uint8
}

// NewMemory creates a memory of at least size bytes, rounded up to a
// multiple of ALIGN. Sizes above SIZE_LIMIT are clamped to SIZE_LIMIT.
func NewMemory(size uint32) (mem *Memory) {
	rounded := (uint64(size) + (ALIGN - 1)) &^ (ALIGN - 1)
	if rounded > uint64(SIZE_LIMIT) {
		rounded = uint64(SIZE_LIMIT)
	}

	mem = &Memory{
		data: make([]uint8, rounded),
	}

	for n := range mem.data {
		mem.data[n] = SENTINEL
	}

	return
}

// Defines returns an iterator over the memory's named constants.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_memory_defines),
		maps.All(map[string]string{
			"MEMORY_SIZE": fmt.Sprintf("%v", mem.Size()),
		}),
	)
}

func (mem *Memory) logger() *log.Logger {
	if mem.Logger == nil {
		return _default_logger
	}
	return mem.Logger
}

// Size returns the number of addressable bytes.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.data))
}

// IsIllegal returns true, and logs a warning, if addr is outside of memory.
func (mem *Memory) IsIllegal(addr uint32) bool {
	if addr >= mem.Size() {
		mem.logger().Print(ErrRange(addr).Error())
		return true
	}

	return false
}

// Get8 returns the byte at addr, or 0 if addr is illegal.
func (mem *Memory) Get8(addr uint32) uint8 {
	if mem.IsIllegal(addr) {
		return 0
	}

	return mem.data[addr]
}

// Get16 returns the little-endian 16-bit value at addr.
func (mem *Memory) Get16(addr uint32) uint16 {
	lo := mem.Get8(addr)
	hi := mem.Get8(addr + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

// Get32 returns the little-endian 32-bit value at addr.
func (mem *Memory) Get32(addr uint32) uint32 {
	lo := mem.Get16(addr)
	hi := mem.Get16(addr + 2)
	return (uint32(hi) << 16) | uint32(lo)
}

// Get8Sx returns the byte at addr, sign extended.
func (mem *Memory) Get8Sx(addr uint32) int32 {
	return int32(int8(mem.Get8(addr)))
}

// Get16Sx returns the 16-bit value at addr, sign extended.
func (mem *Memory) Get16Sx(addr uint32) int32 {
	return int32(int16(mem.Get16(addr)))
}

// Get32Sx returns the 32-bit value at addr as a signed integer.
func (mem *Memory) Get32Sx(addr uint32) int32 {
	return int32(mem.Get32(addr))
}

// Set8 stores val at addr. Writes to illegal addresses are discarded.
func (mem *Memory) Set8(addr uint32, val uint8) {
	if mem.IsIllegal(addr) {
		return
	}

	mem.data[addr] = val
}

// Set16 stores val at addr, little-endian.
func (mem *Memory) Set16(addr uint32, val uint16) {
	mem.Set8(addr, uint8(val&0xff))
	mem.Set8(addr+1, uint8(val>>8))
}

// Set32 stores val at addr, little-endian.
func (mem *Memory) Set32(addr uint32, val uint32) {
	mem.Set16(addr, uint16(val&0xffff))
	mem.Set16(addr+2, uint16(val>>16))
}

// Rows returns an iterator over a copy of each ALIGN sized row of memory,
// and its address.
func (mem *Memory) Rows() iter.Seq2[uint32, []uint8] {
	return func(yield func(addr uint32, row []uint8) bool) {
		for addr := 0; addr < len(mem.data); addr += ALIGN {
			if !yield(uint32(addr), slices.Clone(mem.data[addr:addr+ALIGN])) {
				return
			}
		}
	}
}

func isPrint(ch uint8) bool {
	return ch >= 0x20 && ch < 0x7f
}

// String returns the hex dump of the memory.
func (mem *Memory) String() string {
	var text strings.Builder
	mem.Dump(&text)
	return text.String()
}
