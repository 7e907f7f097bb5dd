package lang

import "math"

// Builder provides a programmatic API for constructing syntax tree nodes
// without parsing source text. This is useful for generating formatted
// helix source programmatically or for testing. Built nodes carry no
// source positions.
//
// Example:
//
//	b := lang.NewBuilder()
//	prog := b.Program(
//	    b.Let("port", b.Int(8080)),
//	    b.Print(b.Binary(KindPlus, b.String("port="), b.Ident("port"))),
//	)
type Builder struct{}

// NewBuilder creates a new syntax tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Program creates a [Program] from stmts.
func (b *Builder) Program(stmts ...Stmt) *Program {
	return &Program{Statements: stmts}
}

// Let creates a let statement.
func (b *Builder) Let(name string, value Expr) *LetStmt {
	return &LetStmt{Name: name, Value: value}
}

// Assign creates an assignment statement.
func (b *Builder) Assign(name string, value Expr) *AssignStmt {
	return &AssignStmt{Name: name, Value: value}
}

// If creates an if statement. els may be nil, a *Block or an *IfStmt.
func (b *Builder) If(cond Expr, then *Block, els Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

// While creates a while loop.
func (b *Builder) While(cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body}
}

// Function creates a function declaration.
func (b *Builder) Function(name string, params []string, body *Block) *FunctionStmt {
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

// Print creates a print statement.
func (b *Builder) Print(value Expr) *PrintStmt {
	return &PrintStmt{Value: value}
}

// Expr creates an expression statement.
func (b *Builder) Expr(e Expr) *ExprStmt {
	return &ExprStmt{Expr: e}
}

// Block creates a block.
func (b *Builder) Block(stmts ...Stmt) *Block {
	return &Block{Statements: stmts}
}

// Binary creates an arithmetic or comparison expression. The logical
// operators [KindAnd] and [KindOr] yield a short-circuiting [LogicalExpr].
func (b *Builder) Binary(op Kind, left, right Expr) Expr {
	if op == KindAnd || op == KindOr {
		return &LogicalExpr{Op: op, Left: left, Right: right}
	}

	return &BinaryExpr{Op: op, Left: left, Right: right}
}

// Unary creates a prefix expression.
func (b *Builder) Unary(op Kind, operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand}
}

// Call creates a call of the function bound to name.
func (b *Builder) Call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Callee: b.Ident(name), Args: args}
}

// Ident creates an identifier reference.
func (b *Builder) Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Value creates a literal holding v.
func (b *Builder) Value(v Value) *Literal {
	return &Literal{Value: v}
}

// Int creates an integer literal.
func (b *Builder) Int(n int64) *Literal { return b.Value(Integer(n)) }

// Float creates a float literal.
func (b *Builder) Float(f float64) *Literal { return b.Value(Float(f)) }

// String creates a string literal.
func (b *Builder) String(s string) *Literal { return b.Value(String(s)) }

// Bool creates a boolean literal.
func (b *Builder) Bool(v bool) *Literal { return b.Value(Boolean(v)) }

// Nil creates a nil literal.
func (b *Builder) Nil() *Literal { return b.Value(Nil{}) }

// Native creates a literal from a native Go value as produced by
// [ToNative]. Unsupported types yield nil.
func (b *Builder) Native(v any) *Literal {
	switch v := v.(type) {
	case nil:
		return b.Nil()
	case bool:
		return b.Bool(v)
	case int:
		return b.Int(int64(v))
	case int64:
		return b.Int(v)
	case uint64:
		if v > math.MaxInt64 {
			return b.Float(float64(v))
		}

		return b.Int(int64(v))
	case float64:
		return b.Float(v)
	case string:
		return b.String(v)
	}

	return nil
}
