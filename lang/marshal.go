package lang

import (
	"encoding/json"
	"math"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program to native Go maps and slices. Every node
// becomes a map with a "node" key naming its type.
func (p *Program) ToMap() map[string]any {
	return map[string]any{
		"node":       "Program",
		"statements": stmtsToNative(p.Statements),
	}
}

func stmtsToNative(list []Stmt) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = StmtToNative(s)
	}

	return out
}

func position(n Node) map[string]any {
	pos := n.Position()

	return map[string]any{"line": pos.Line, "column": pos.Column}
}

// StmtToNative converts a statement node to a native map.
func StmtToNative(s Stmt) map[string]any {
	m := map[string]any{"pos": position(s)}

	switch s := s.(type) {
	case *LetStmt:
		m["node"] = "Let"
		m["name"] = s.Name
		m["value"] = ExprToNative(s.Value)

	case *AssignStmt:
		m["node"] = "Assign"
		m["name"] = s.Name
		m["value"] = ExprToNative(s.Value)

	case *IfStmt:
		m["node"] = "If"
		m["cond"] = ExprToNative(s.Cond)
		m["then"] = StmtToNative(s.Then)

		if s.Else != nil {
			m["else"] = StmtToNative(s.Else)
		}

	case *WhileStmt:
		m["node"] = "While"
		m["cond"] = ExprToNative(s.Cond)
		m["body"] = StmtToNative(s.Body)

	case *FunctionStmt:
		params := make([]any, len(s.Params))
		for i, name := range s.Params {
			params[i] = name
		}

		m["node"] = "Function"
		m["name"] = s.Name
		m["params"] = params
		m["body"] = StmtToNative(s.Body)

	case *PrintStmt:
		m["node"] = "Print"
		m["value"] = ExprToNative(s.Value)

	case *ExprStmt:
		m["node"] = "Expr"
		m["expr"] = ExprToNative(s.Expr)

	case *Block:
		m["node"] = "Block"
		m["statements"] = stmtsToNative(s.Statements)
	}

	return m
}

// ExprToNative converts an expression node to a native map.
func ExprToNative(e Expr) map[string]any {
	m := map[string]any{"pos": position(e)}

	switch e := e.(type) {
	case *BinaryExpr:
		m["node"] = "Binary"
		m["op"] = e.Op.String()
		m["left"] = ExprToNative(e.Left)
		m["right"] = ExprToNative(e.Right)

	case *LogicalExpr:
		m["node"] = "Logical"
		m["op"] = e.Op.String()
		m["left"] = ExprToNative(e.Left)
		m["right"] = ExprToNative(e.Right)

	case *UnaryExpr:
		m["node"] = "Unary"
		m["op"] = e.Op.String()
		m["operand"] = ExprToNative(e.Operand)

	case *Literal:
		m["node"] = "Literal"
		m["type"] = e.Value.Type()
		m["value"] = ToNative(e.Value)

	case *Identifier:
		m["node"] = "Identifier"
		m["name"] = e.Name

	case *CallExpr:
		args := make([]any, len(e.Args))
		for i, a := range e.Args {
			args[i] = ExprToNative(a)
		}

		m["node"] = "Call"
		m["callee"] = e.Callee.Name
		m["args"] = args
	}

	return m
}

// ToNative converts a Value to its native Go type. Functions convert to
// their signature; non-finite floats convert to their canonical text since
// neither JSON nor YAML encoders accept them uniformly.
func ToNative(v Value) any {
	switch v := v.(type) {
	case Integer:
		return int64(v)

	case Float:
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			return v.String()
		}

		return float64(v)

	case String:
		return string(v)

	case Boolean:
		return bool(v)

	case Nil:
		return nil

	case *Function:
		return v.Signature()
	}

	return nil
}
