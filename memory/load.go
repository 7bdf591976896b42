package memory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
)

// Load copies a raw binary program image into memory, starting at
// address 0. If the image does not fit, ErrProgramTooBig is returned and
// the bytes that did fit remain written.
func (mem *Memory) Load(r io.Reader) (err error) {
	input := bufio.NewReader(r)

	for addr := uint32(0); ; addr++ {
		var value byte
		value, err = input.ReadByte()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		if mem.IsIllegal(addr) {
			err = ErrProgramTooBig
			return
		}

		mem.Set8(addr, value)
	}
}

// LoadIntelHex copies every data record of an Intel HEX image into memory
// at its record address.
func (mem *Memory) LoadIntelHex(r io.Reader) (err error) {
	image := gohex.NewMemory()
	err = image.ParseIntelHex(r)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrIntelHex, err)
		return
	}

	for _, segment := range image.GetDataSegments() {
		for n, value := range segment.Data {
			addr := uint64(segment.Address) + uint64(n)
			if addr > uint64(^uint32(0)) || mem.IsIllegal(uint32(addr)) {
				err = ErrProgramTooBig
				return
			}
			mem.Set8(uint32(addr), value)
		}
	}

	return
}

// loadFile opens path and hands it to loader. Failures are logged, and
// reported as false.
func (mem *Memory) loadFile(path string, loader func(r io.Reader) error) (ok bool) {
	inf, err := os.Open(path)
	if err != nil {
		mem.logger().Print(ErrOpen(path).Error())
		return
	}
	defer inf.Close()

	err = loader(inf)
	if err != nil {
		mem.logger().Print(err.Error())
		return
	}

	ok = true
	return
}

// LoadFile loads the raw binary program image at path. See Load.
func (mem *Memory) LoadFile(path string) bool {
	return mem.loadFile(path, mem.Load)
}

// LoadIntelHexFile loads the Intel HEX program image at path. See LoadIntelHex.
func (mem *Memory) LoadIntelHexFile(path string) bool {
	return mem.loadFile(path, mem.LoadIntelHex)
}
