// Package core knows the built-in hash and commitment functions that map
// directly to circuit instructions, such as BHP256::hash(x).
package core

import (
	"fmt"

	"github.com/dhamidi/zkc/leo/ast"
)

type Instruction int

const (
	BHP256Commit Instruction = iota + 1
	BHP256Hash
	BHP512Commit
	BHP512Hash
	BHP768Commit
	BHP768Hash
	BHP1024Commit
	BHP1024Hash

	Pedersen64Commit
	Pedersen64Hash
	Pedersen128Commit
	Pedersen128Hash

	Poseidon2Hash
	Poseidon4Hash
	Poseidon8Hash
)

type symbols struct {
	module, function string
}

var instructions = map[symbols]Instruction{
	{"BHP256", "commit"}:      BHP256Commit,
	{"BHP256", "hash"}:        BHP256Hash,
	{"BHP512", "commit"}:      BHP512Commit,
	{"BHP512", "hash"}:        BHP512Hash,
	{"BHP768", "commit"}:      BHP768Commit,
	{"BHP768", "hash"}:        BHP768Hash,
	{"BHP1024", "commit"}:     BHP1024Commit,
	{"BHP1024", "hash"}:       BHP1024Hash,
	{"Pedersen64", "commit"}:  Pedersen64Commit,
	{"Pedersen64", "hash"}:    Pedersen64Hash,
	{"Pedersen128", "commit"}: Pedersen128Commit,
	{"Pedersen128", "hash"}:   Pedersen128Hash,
	{"Poseidon2", "hash"}:     Poseidon2Hash,
	{"Poseidon4", "hash"}:     Poseidon4Hash,
	{"Poseidon8", "hash"}:     Poseidon8Hash,
}

var names = func() map[Instruction]symbols {
	m := make(map[Instruction]symbols, len(instructions))
	for sym, inst := range instructions {
		m[inst] = sym
	}
	return m
}()

// FromSymbols looks up module::function.
func FromSymbols(module, function string) (Instruction, bool) {
	inst, ok := instructions[symbols{module, function}]
	return inst, ok
}

// IsModule reports whether name is a core module such as BHP256.
func IsModule(name string) bool {
	for sym := range instructions {
		if sym.module == name {
			return true
		}
	}
	return false
}

func (i Instruction) Module() string   { return names[i].module }
func (i Instruction) Function() string { return names[i].function }

func (i Instruction) String() string {
	sym, ok := names[i]
	if !ok {
		return fmt.Sprintf("Instruction(%d)", int(i))
	}
	return sym.module + "::" + sym.function
}

// NumArgs is the number of inputs: commit takes the value and the
// randomizer, hash takes the value.
func (i Instruction) NumArgs() int {
	if names[i].function == "commit" {
		return 2
	}
	return 1
}

// A Call is a resolved core instruction invocation.
type Call struct {
	Instruction Instruction
	Expr        *ast.Call
}

// ArityOK reports whether the call passes the expected number of arguments.
func (c Call) ArityOK() bool {
	return len(c.Expr.Arguments) == c.Instruction.NumArgs()
}

// Resolve recognizes Module::function(args) where the pair names a core
// instruction.
func Resolve(call *ast.Call) (Call, bool) {
	static, ok := call.Function.(*ast.StaticAccess)
	if !ok {
		return Call{}, false
	}
	module, ok := static.Inner.(*ast.Identifier)
	if !ok {
		return Call{}, false
	}
	inst, ok := FromSymbols(module.Name, static.Name.Name)
	if !ok {
		return Call{}, false
	}
	return Call{Instruction: inst, Expr: call}, true
}

// Calls lists the core instruction calls in expr in source order.
func Calls(expr ast.Expression) []Call {
	var calls []Call
	ast.Inspect(expr, func(e ast.Expression) bool {
		if call, ok := e.(*ast.Call); ok {
			if c, ok := Resolve(call); ok {
				calls = append(calls, c)
			}
		}
		return true
	})
	return calls
}
