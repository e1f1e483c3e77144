// ast.go - syntax tree for the wolf language
package main

import (
	"fmt"
	"strings"
)

// AST Nodes
type Node interface {
	String() string
}

// Program is the implicit top-level function body: an ordered statement
// list. The value of the last statement becomes the program result.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var out strings.Builder
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// LetStmt binds the value of an expression to a name. Redeclaring a name
// overwrites the existing binding.
type LetStmt struct {
	Name  string
	Value Expression
}

func (l *LetStmt) String() string { return "let " + l.Name + " = " + l.Value.String() + ";" }
func (l *LetStmt) statementNode() {}

type ExpressionStmt struct {
	Expr Expression
}

func (e *ExpressionStmt) String() string { return e.Expr.String() + ";" }
func (e *ExpressionStmt) statementNode() {}

type NumberExpr struct {
	Value int64
}

func (n *NumberExpr) String() string  { return fmt.Sprintf("%d", n.Value) }
func (n *NumberExpr) expressionNode() {}

type IdentExpr struct {
	Name string
}

func (i *IdentExpr) String() string  { return i.Name }
func (i *IdentExpr) expressionNode() {}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}
func (b *BinaryExpr) expressionNode() {}
