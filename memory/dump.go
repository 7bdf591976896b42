package memory

import (
	"io"
	"strings"

	"github.com/ezrec/simmem/hex"
)

// Dump writes every row of memory to w as hex bytes followed by their
// printable ASCII, one row per line:
//
//	00000000: 48 65 6c 6c 6f 2c 20 57  6f 72 6c 64 21 21 21 21 *Hello, World!!!!*
//
// Pass os.Stdout to print the dump to standard output.
func (mem *Memory) Dump(w io.Writer) (err error) {
	var line strings.Builder
	for addr, row := range mem.Rows() {
		line.Reset()
		line.WriteString(hex.Word(addr))
		line.WriteString(": ")

		ascii := make([]byte, len(row))
		for n, value := range row {
			line.WriteString(hex.Byte(value))
			line.WriteString(" ")
			if n == 7 {
				line.WriteString(" ")
			}

			ascii[n] = '.'
			if isPrint(value) {
				ascii[n] = value
			}
		}

		line.WriteString("*")
		line.Write(ascii)
		line.WriteString("*\n")

		_, err = io.WriteString(w, line.String())
		if err != nil {
			return
		}
	}

	return
}
