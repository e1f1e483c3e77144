// codegen.go - lowers the AST into IR and emits a relocatable object file
package main

import (
	"fmt"
	"os"
)

// VerboseMode enables diagnostic output on stderr (WOLF_VERBOSE).
var VerboseMode bool

// codeBackend turns a finished IR function into native machine code.
type codeBackend interface {
	EmitFunction(fn *Function) ([]byte, error)
}

func backendFor(arch Arch) (codeBackend, error) {
	switch arch {
	case ArchX86_64:
		return amd64Backend{}, nil
	case ArchARM64:
		return arm64Backend{}, nil
	default:
		return nil, codegenErrorf("host architecture not supported: %s", arch)
	}
}

// lowerContext carries the per-compilation state: the function under
// construction and the flat name-to-slot namespace.
type lowerContext struct {
	fn        *Function
	variables map[string]Slot
}

// CompileProgramToObject lowers a program into a single function named
// "main" (no parameters, one 64-bit integer return) and packages the
// machine code as a relocatable object file for the given platform.
func CompileProgramToObject(program *Program, platform Platform) ([]byte, error) {
	backend, err := backendFor(platform.Arch)
	if err != nil {
		return nil, err
	}

	fn := NewFunction("main")
	ctx := &lowerContext{fn: fn, variables: make(map[string]Slot)}

	var last Value
	lowered := false
	for _, stmt := range program.Statements {
		last, err = ctx.lowerStatement(stmt)
		if err != nil {
			return nil, err
		}
		lowered = true
	}
	if !lowered {
		return nil, codegenErrorf("program has no statements")
	}

	// The function returns the value of the last statement.
	fn.Return(last)

	code, err := backend.EmitFunction(fn)
	if err != nil {
		return nil, err
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "codegen: %s, %d IR instructions, %d bytes of machine code\n",
			platform.FullString(), len(fn.Instrs), len(code))
	}

	var object []byte
	switch {
	case platform.IsELF():
		object = WriteELFObject(GetELFMachineType(platform.Arch), code)
	case platform.IsMachO():
		object, err = WriteMachOObject(platform.Arch, code)
		if err != nil {
			return nil, err
		}
	default:
		return nil, codegenErrorf("no object format for OS: %s", platform.OS)
	}

	return object, nil
}

func (ctx *lowerContext) lowerStatement(stmt Statement) (Value, error) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return ctx.lowerExpression(s.Expr)

	case *LetStmt:
		value, err := ctx.lowerExpression(s.Value)
		if err != nil {
			return 0, err
		}

		// Redeclaration rebinds the same slot (overwrite, not shadow).
		slot, ok := ctx.variables[s.Name]
		if !ok {
			slot = ctx.fn.NewStackSlot()
			ctx.variables[s.Name] = slot
		}
		ctx.fn.SlotStore(slot, value)

		// The statement's own value is the initializer, not a reload.
		return value, nil

	default:
		return 0, codegenErrorf("unsupported statement: %s", stmt.String())
	}
}

func (ctx *lowerContext) lowerExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return ctx.fn.Iconst(e.Value), nil

	case *IdentExpr:
		slot, ok := ctx.variables[e.Name]
		if !ok {
			return 0, codegenErrorf("undefined variable: %s", e.Name)
		}
		return ctx.fn.SlotLoad(slot), nil

	case *BinaryExpr:
		// Left is fully lowered before right; evaluation order is part of
		// the language contract.
		left, err := ctx.lowerExpression(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := ctx.lowerExpression(e.Right)
		if err != nil {
			return 0, err
		}
		return ctx.fn.Binary(e.Op, left, right), nil

	default:
		return 0, codegenErrorf("unsupported expression: %s", expr.String())
	}
}
