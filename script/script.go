// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script provides a Starlark console for inspecting and patching
// a simulated memory.
//
// Programs see the memory through predeclared builtins:
//
//	get8(addr)  get16(addr)  get32(addr)
//	get8_sx(addr)  get16_sx(addr)  get32_sx(addr)
//	set8(addr, value)  set16(addr, value)  set32(addr, value)
//	size()  dump()  load_bin(path)  load_hex(path)
//	hex8(value)  hex32(value)  hex0x32(value)
//
// and every memory define (MEMORY_SIZE, MEMORY_SENTINEL, ...) as an integer.
package script

import (
	"fmt"
	"io"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/simmem/hex"
	"github.com/ezrec/simmem/memory"
)

// Console runs Starlark programs against a memory.
type Console struct {
	Memory *memory.Memory // Memory under inspection.
	Output io.Writer      // Destination of print() and dump().
}

// NewConsole creates a console for mem, printing to out.
func NewConsole(mem *memory.Memory, out io.Writer) (con *Console) {
	con = &Console{
		Memory: mem,
		Output: out,
	}

	return
}

func toUint32(value starlark.Int, limit error) (result uint32, err error) {
	if u64, ok := value.Uint64(); ok {
		if u64 > uint64(^uint32(0)) {
			err = limit
			return
		}
		result = uint32(u64)
		return
	}

	err = limit
	return
}

// toValue truncates value to 32 bits, so both signed and unsigned forms are accepted.
func toValue(value starlark.Int) (result uint32, err error) {
	if i64, ok := value.Int64(); ok {
		if i64 < -(1<<31) || i64 > int64(^uint32(0)) {
			err = ErrValue
			return
		}
		result = uint32(i64)
		return
	}

	err = ErrValue
	return
}

type getter func(mem *memory.Memory, addr uint32) starlark.Value

type setter func(mem *memory.Memory, addr uint32, value uint32)

func (con *Console) get(name string, get getter) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var st_addr starlark.Int
		err = starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &st_addr)
		if err != nil {
			return
		}
		addr, err := toUint32(st_addr, ErrAddress)
		if err != nil {
			err = fmt.Errorf("%v: %w", b.Name(), err)
			return
		}
		value = get(con.Memory, addr)
		return
	})
}

func (con *Console) set(name string, set setter) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var st_addr, st_value starlark.Int
		err = starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &st_addr, "value", &st_value)
		if err != nil {
			return
		}
		addr, err := toUint32(st_addr, ErrAddress)
		if err != nil {
			err = fmt.Errorf("%v: %w", b.Name(), err)
			return
		}
		val, err := toValue(st_value)
		if err != nil {
			err = fmt.Errorf("%v: %w", b.Name(), err)
			return
		}
		set(con.Memory, addr, val)
		value = starlark.None
		return
	})
}

func formatter(name string, limit uint32, fn func(value uint32) string) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var st_value starlark.Int
		err = starlark.UnpackArgs(b.Name(), args, kwargs, "value", &st_value)
		if err != nil {
			return
		}
		val, err := toUint32(st_value, ErrValue)
		if err == nil && val > limit {
			err = ErrValue
		}
		if err != nil {
			err = fmt.Errorf("%v: %w", b.Name(), err)
			return
		}
		value = starlark.String(fn(val))
		return
	})
}

func (con *Console) load(name string, load func(mem *memory.Memory, path string) bool) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var path string
		err = starlark.UnpackArgs(b.Name(), args, kwargs, "path", &path)
		if err != nil {
			return
		}
		value = starlark.Bool(load(con.Memory, path))
		return
	})
}

// Predeclared returns the builtins and defines visible to console programs.
func (con *Console) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, str := range con.Memory.Defines() {
		value, err := strconv.ParseUint(str, 0, 64)
		if err != nil {
			// Only integer defines are exported.
			continue
		}
		pred[key] = starlark.MakeUint64(value)
	}

	builtins := []*starlark.Builtin{
		con.get("get8", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeUint(uint(mem.Get8(addr)))
		}),
		con.get("get16", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeUint(uint(mem.Get16(addr)))
		}),
		con.get("get32", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeUint64(uint64(mem.Get32(addr)))
		}),
		con.get("get8_sx", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeInt(int(mem.Get8Sx(addr)))
		}),
		con.get("get16_sx", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeInt(int(mem.Get16Sx(addr)))
		}),
		con.get("get32_sx", func(mem *memory.Memory, addr uint32) starlark.Value {
			return starlark.MakeInt64(int64(mem.Get32Sx(addr)))
		}),
		con.set("set8", func(mem *memory.Memory, addr uint32, value uint32) {
			mem.Set8(addr, uint8(value))
		}),
		con.set("set16", func(mem *memory.Memory, addr uint32, value uint32) {
			mem.Set16(addr, uint16(value))
		}),
		con.set("set32", func(mem *memory.Memory, addr uint32, value uint32) {
			mem.Set32(addr, value)
		}),
		con.load("load_bin", (*memory.Memory).LoadFile),
		con.load("load_hex", (*memory.Memory).LoadIntelHexFile),
		formatter("hex8", 0xff, func(value uint32) string {
			return hex.Byte(uint8(value))
		}),
		formatter("hex32", ^uint32(0), hex.Word),
		formatter("hex0x32", ^uint32(0), hex.Word0x),
		starlark.NewBuiltin("size", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
			err = starlark.UnpackArgs(b.Name(), args, kwargs)
			if err != nil {
				return
			}
			value = starlark.MakeUint64(uint64(con.Memory.Size()))
			return
		}),
		starlark.NewBuiltin("dump", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
			err = starlark.UnpackArgs(b.Name(), args, kwargs)
			if err != nil {
				return
			}
			err = con.Memory.Dump(con.Output)
			if err != nil {
				return
			}
			value = starlark.None
			return
		}),
	}

	for _, builtin := range builtins {
		pred[builtin.Name()] = builtin
	}

	return
}

func (con *Console) thread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(con.Output, msg)
		},
	}
}

// Exec runs a Starlark program. src may be a string, []byte, io.Reader,
// or nil to read filename. The program's globals are returned.
func (con *Console) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	opts := syntax.FileOptions{}
	globals, err = starlark.ExecFileOptions(&opts, con.thread(filename), filename, src, con.Predeclared())
	return
}

// Eval evaluates a single integer expression, such as "get32(0x10) & 0xff".
func (con *Console) Eval(expr string) (value uint32, err error) {
	prog := "rc=" + expr + "\n"
	dict, err := con.Exec("expr", prog)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	value, err = toValue(st_int)
	if err != nil {
		err = ErrExpression(expr)
		return
	}
	return
}
