package lang

import (
	"context"
	"io"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Position() Position
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Program is the root of a parsed source text. Nodes are never mutated
// after parsing, so one Program may be executed any number of times.
type Program struct {
	Statements []Stmt
}

type (
	// LetStmt binds Name in the current scope: let Name = Value.
	LetStmt struct {
		Name  string
		Value Expr
		Pos   Position
	}

	// AssignStmt updates the nearest existing binding of Name.
	AssignStmt struct {
		Name  string
		Value Expr
		Pos   Position
	}

	// IfStmt executes Then when Cond is truthy, otherwise Else.
	// Else is nil, a *Block or an *IfStmt.
	IfStmt struct {
		Cond Expr
		Then *Block
		Else Stmt
		Pos  Position
	}

	// WhileStmt executes Body while Cond is truthy.
	WhileStmt struct {
		Cond Expr
		Body *Block
		Pos  Position
	}

	// FunctionStmt declares a named function in the current scope.
	FunctionStmt struct {
		Name   string
		Params []string
		Body   *Block
		Pos    Position
	}

	// PrintStmt writes the canonical text of Value.
	PrintStmt struct {
		Value Expr
		Pos   Position
	}

	// ExprStmt evaluates an expression for its value or side effects.
	ExprStmt struct {
		Expr Expr
	}

	// Block is a brace-delimited statement list with its own scope.
	Block struct {
		Statements []Stmt
		Pos        Position
	}
)

type (
	// BinaryExpr is an arithmetic or comparison operation.
	BinaryExpr struct {
		Op    Kind
		Left  Expr
		Right Expr
		Pos   Position
	}

	// LogicalExpr is a short-circuiting && or ||.
	LogicalExpr struct {
		Op    Kind
		Left  Expr
		Right Expr
		Pos   Position
	}

	// UnaryExpr is a prefix negation or logical not.
	UnaryExpr struct {
		Op      Kind
		Operand Expr
		Pos     Position
	}

	// Literal is a constant value.
	Literal struct {
		Value Value
		Pos   Position
	}

	// Identifier references a binding by name.
	Identifier struct {
		Name string
		Pos  Position
	}

	// CallExpr invokes the function bound to Callee.
	CallExpr struct {
		Callee *Identifier
		Args   []Expr
		Pos    Position
	}
)

func (s *LetStmt) Position() Position      { return s.Pos }
func (s *AssignStmt) Position() Position   { return s.Pos }
func (s *IfStmt) Position() Position       { return s.Pos }
func (s *WhileStmt) Position() Position    { return s.Pos }
func (s *FunctionStmt) Position() Position { return s.Pos }
func (s *PrintStmt) Position() Position    { return s.Pos }
func (s *ExprStmt) Position() Position     { return s.Expr.Position() }
func (s *Block) Position() Position        { return s.Pos }

func (e *BinaryExpr) Position() Position  { return e.Pos }
func (e *LogicalExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) Position() Position   { return e.Pos }
func (e *Literal) Position() Position     { return e.Pos }
func (e *Identifier) Position() Position  { return e.Pos }
func (e *CallExpr) Position() Position    { return e.Pos }

func (*LetStmt) stmt()      {}
func (*AssignStmt) stmt()   {}
func (*IfStmt) stmt()       {}
func (*WhileStmt) stmt()    {}
func (*FunctionStmt) stmt() {}
func (*PrintStmt) stmt()    {}
func (*ExprStmt) stmt()     {}
func (*Block) stmt()        {}

func (*BinaryExpr) expr()  {}
func (*LogicalExpr) expr() {}
func (*UnaryExpr) expr()   {}
func (*Literal) expr()     {}
func (*Identifier) expr()  {}
func (*CallExpr) expr()    {}

// Functions returns the top-level function declarations in source order.
func (p *Program) Functions() []*FunctionStmt {
	var fns []*FunctionStmt

	for _, s := range p.Statements {
		if fn, ok := s.(*FunctionStmt); ok {
			fns = append(fns, fn)
		}
	}

	return fns
}

// Print writes an indented tree representation of the program to w.
func (p *Program) Print(ctx context.Context, w io.Writer) error {
	t := &treeWriter{w: w}

	t.put(0, "Program")

	for _, s := range p.Statements {
		t.stmt(1, s)
	}

	return t.err
}

// treeWriter renders nodes one per line, remembering the first write error.
type treeWriter struct {
	w   io.Writer
	err error
}

func (t *treeWriter) put(indent int, item ...string) {
	if t.err != nil {
		return
	}

	_, t.err = io.WriteString(t.w,
		strings.Repeat("  ", indent)+strings.Join(item, ": ")+"\n")
}

func (t *treeWriter) block(indent int, label string, b *Block) {
	t.put(indent, label)

	if len(b.Statements) == 0 {
		t.put(indent+1, "(empty)")
	}

	for _, s := range b.Statements {
		t.stmt(indent+1, s)
	}
}

func (t *treeWriter) stmt(indent int, s Stmt) {
	switch s := s.(type) {
	case *LetStmt:
		t.put(indent, "Let", s.Name)
		t.expr(indent+1, s.Value)

	case *AssignStmt:
		t.put(indent, "Assign", s.Name)
		t.expr(indent+1, s.Value)

	case *IfStmt:
		t.put(indent, "If")
		t.expr(indent+1, s.Cond)
		t.block(indent+1, "Then", s.Then)

		if s.Else != nil {
			t.put(indent+1, "Else")
			t.stmt(indent+2, s.Else)
		}

	case *WhileStmt:
		t.put(indent, "While")
		t.expr(indent+1, s.Cond)
		t.block(indent+1, "Body", s.Body)

	case *FunctionStmt:
		t.put(indent, "Function", s.Name+"("+strings.Join(s.Params, ", ")+")")
		t.block(indent+1, "Body", s.Body)

	case *PrintStmt:
		t.put(indent, "Print")
		t.expr(indent+1, s.Value)

	case *ExprStmt:
		t.expr(indent, s.Expr)

	case *Block:
		t.block(indent, "Block", s)
	}
}

func (t *treeWriter) expr(indent int, e Expr) {
	switch e := e.(type) {
	case *BinaryExpr:
		t.put(indent, "Binary", e.Op.String())
		t.expr(indent+1, e.Left)
		t.expr(indent+1, e.Right)

	case *LogicalExpr:
		t.put(indent, "Logical", e.Op.String())
		t.expr(indent+1, e.Left)
		t.expr(indent+1, e.Right)

	case *UnaryExpr:
		t.put(indent, "Unary", e.Op.String())
		t.expr(indent+1, e.Operand)

	case *Literal:
		t.put(indent, "Literal", e.Value.Type(), Repr(e.Value))

	case *Identifier:
		t.put(indent, "Identifier", e.Name)

	case *CallExpr:
		t.put(indent, "Call", e.Callee.Name)

		for _, a := range e.Args {
			t.expr(indent+1, a)
		}
	}
}
