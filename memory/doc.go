// Package memory implements the simulated main memory of an instruction-set
// simulator.
//
// Memory is a flat array of bytes, sized to a multiple of 16, and filled
// with SENTINEL until written. Multi-byte values are stored little-endian.
// Accesses outside of memory never fail: reads return zero, writes are
// discarded, and a warning naming the address is logged either way.
//
// Program images are loaded starting at address 0, either as raw binary
// or as Intel HEX records.
package memory
