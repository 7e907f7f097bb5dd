package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program as canonical source text. With indent > 0 each
// statement is on its own line and blocks are indented by indent spaces;
// otherwise the program is written on one line. Parsing the output yields a
// program that formats identically.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	f := &formatter{indent: indent}

	f.stmts(p.Statements, 0)

	if indent > 0 || len(p.Statements) > 0 {
		f.sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, f.sb.String())

	return err
}

// FormatJSON writes the program's syntax tree as JSON.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's syntax tree as YAML.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatExpr returns the canonical source text of e.
func FormatExpr(e Expr) string {
	f := &formatter{}
	f.expr(e)

	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

func (f *formatter) newline(depth int) {
	if f.indent <= 0 {
		f.sb.WriteByte(' ')

		return
	}

	f.sb.WriteByte('\n')
	f.sb.WriteString(strings.Repeat(" ", f.indent*depth))
}

func (f *formatter) stmts(list []Stmt, depth int) {
	for i, s := range list {
		if i > 0 {
			if f.indent <= 0 {
				f.sb.WriteByte(';')
			}

			f.newline(depth)

			// A leading '(' or '-' would continue the previous expression.
			if e, ok := s.(*ExprStmt); ok && f.indent > 0 {
				if t := FormatExpr(e.Expr); strings.HasPrefix(t, "(") ||
					strings.HasPrefix(t, "-") {
					f.sb.WriteByte(';')
				}
			}
		}

		f.stmt(s, depth)
	}
}

func (f *formatter) block(b *Block, depth int) {
	if len(b.Statements) == 0 {
		f.sb.WriteString("{}")

		return
	}

	f.sb.WriteByte('{')
	f.newline(depth + 1)
	f.stmts(b.Statements, depth+1)
	f.newline(depth)
	f.sb.WriteByte('}')
}

func (f *formatter) stmt(s Stmt, depth int) {
	switch s := s.(type) {
	case *LetStmt:
		f.sb.WriteString("let " + s.Name + " = ")
		f.expr(s.Value)

	case *AssignStmt:
		f.sb.WriteString(s.Name + " = ")
		f.expr(s.Value)

	case *IfStmt:
		f.sb.WriteString("if ")
		f.expr(s.Cond)
		f.sb.WriteByte(' ')
		f.block(s.Then, depth)

		if s.Else != nil {
			f.sb.WriteString(" else ")
			f.stmt(s.Else, depth)
		}

	case *WhileStmt:
		f.sb.WriteString("while ")
		f.expr(s.Cond)
		f.sb.WriteByte(' ')
		f.block(s.Body, depth)

	case *FunctionStmt:
		f.sb.WriteString("function " + s.Name + "(" + strings.Join(s.Params, ", ") + ") ")
		f.block(s.Body, depth)

	case *PrintStmt:
		f.sb.WriteString("print ")
		f.expr(s.Value)

	case *ExprStmt:
		f.expr(s.Expr)

	case *Block:
		f.block(s, depth)
	}
}

// Binding power of each expression form, lowest first.
const (
	precLogical = iota + 1
	precComparison
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precAtom
)

func precedence(e Expr) int {
	switch e := e.(type) {
	case *LogicalExpr:
		return precLogical

	case *BinaryExpr:
		switch e.Op {
		case KindEq, KindNe, KindLt, KindLe, KindGt, KindGe:
			return precComparison
		case KindPlus, KindMinus:
			return precAdditive
		case KindStar, KindSlash, KindPercent:
			return precMultiplicative
		default:
			return precExponent
		}

	case *UnaryExpr:
		return precUnary

	case *Literal:
		// Negative numbers print with a leading minus.
		if strings.HasPrefix(Repr(e.Value), "-") {
			return precUnary
		}
	}

	return precAtom
}

// operand writes e, parenthesized when it binds looser than required.
func (f *formatter) operand(e Expr, needParens bool) {
	if needParens {
		f.sb.WriteByte('(')
		f.expr(e)
		f.sb.WriteByte(')')

		return
	}

	f.expr(e)
}

func (f *formatter) infix(op Kind, self, l, r Expr) {
	p := precedence(self)
	rightAssoc := op == KindCaret

	lp, rp := precedence(l), precedence(r)

	f.operand(l, lp < p || (rightAssoc && lp == p))
	f.sb.WriteString(" " + op.String() + " ")
	f.operand(r, rp < p || (!rightAssoc && rp == p))
}

func (f *formatter) expr(e Expr) {
	switch e := e.(type) {
	case *LogicalExpr:
		f.infix(e.Op, e, e.Left, e.Right)

	case *BinaryExpr:
		f.infix(e.Op, e, e.Left, e.Right)

	case *UnaryExpr:
		f.sb.WriteString(e.Op.String())
		f.operand(e.Operand, precedence(e.Operand) < precUnary)

	case *Literal:
		f.sb.WriteString(Repr(e.Value))

	case *Identifier:
		f.sb.WriteString(e.Name)

	case *CallExpr:
		f.sb.WriteString(e.Callee.Name + "(")

		for i, a := range e.Args {
			if i > 0 {
				f.sb.WriteString(", ")
			}

			f.expr(a)
		}

		f.sb.WriteByte(')')
	}
}
