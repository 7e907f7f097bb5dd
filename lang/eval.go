package lang

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/helix/log"
)

// Evaluator executes programs. It carries configuration and the call stack
// but no bindings: every [Evaluator.Exec] runs against an environment owned
// by the caller, which may be reused across programs.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	opts  options
	stack *callStack
}

// NewEvaluator returns an Evaluator configured by opts.
func NewEvaluator(opts ...Option) *Evaluator {
	o := makeOptions(opts...)

	return &Evaluator{opts: o, stack: newCallStack(o.maxCallDepth)}
}

// Exec executes prog in env and returns the value of the last statement
// executed, or [Nil]. The first error aborts execution; bindings made before
// it remain in env.
func (ev *Evaluator) Exec(
	ctx context.Context,
	prog *Program,
	env *Environment,
) (Value, error) {
	var last Value = Nil{}

	for _, s := range prog.Statements {
		v, err := ev.exec(ctx, s, env)
		if err != nil {
			return nil, err
		}

		last = v
	}

	ev.opts.logger.TraceContext(ctx, "exec complete",
		slog.Int("statements", len(prog.Statements)),
		valueAttr("result", last))

	return last, nil
}

// Run lexes, parses and executes src in env.
func (ev *Evaluator) Run(
	ctx context.Context,
	src string,
	env *Environment,
) (Value, error) {
	prog, err := ParseString(ctx, src,
		WithLogger(ev.opts.logger),
		WithMaxDepth(ev.opts.maxDepth),
		WithCache(ev.opts.cache),
	)
	if err != nil {
		return nil, err
	}

	return ev.Exec(ctx, prog, env)
}

// exec executes one statement and returns its value: an expression
// statement yields its value, a block or if yields the value of the last
// statement it executed, anything else yields Nil.
func (ev *Evaluator) exec(ctx context.Context, s Stmt, env *Environment) (Value, error) {
	switch s := s.(type) {
	case *ExprStmt:
		return ev.eval(ctx, s.Expr, env)

	case *LetStmt:
		v, err := ev.eval(ctx, s.Value, env)
		if err != nil {
			return nil, err
		}

		env.Define(s.Name, v)

		return Nil{}, nil

	case *AssignStmt:
		v, err := ev.eval(ctx, s.Value, env)
		if err != nil {
			return nil, err
		}

		if err := env.Assign(s.Name, v); err != nil {
			return nil, locate(err, s.Pos)
		}

		return Nil{}, nil

	case *IfStmt:
		return ev.execIf(ctx, s, env)

	case *WhileStmt:
		for {
			cond, err := ev.eval(ctx, s.Cond, env)
			if err != nil {
				return nil, err
			}

			if !Truthy(cond) {
				return Nil{}, nil
			}

			if _, err := ev.execBlock(ctx, s.Body, env.Child()); err != nil {
				return nil, err
			}
		}

	case *FunctionStmt:
		env.Define(s.Name, &Function{
			Name:   s.Name,
			Params: s.Params,
			Body:   s.Body,
			Env:    env,
		})

		return Nil{}, nil

	case *PrintStmt:
		v, err := ev.eval(ctx, s.Value, env)
		if err != nil {
			return nil, err
		}

		if _, err := fmt.Fprintln(ev.opts.output, v.String()); err != nil {
			return nil, WrapError(err).With(slog.String("statement", "print"))
		}

		return Nil{}, nil

	case *Block:
		return ev.execBlock(ctx, s, env.Child())
	}

	return nil, ErrParse.WithPosition(s.Position()).
		Wrapf("unsupported statement %T", s)
}

func (ev *Evaluator) execIf(ctx context.Context, s *IfStmt, env *Environment) (Value, error) {
	cond, err := ev.eval(ctx, s.Cond, env)
	if err != nil {
		return nil, err
	}

	if Truthy(cond) {
		return ev.execBlock(ctx, s.Then, env.Child())
	}

	switch e := s.Else.(type) {
	case *Block:
		return ev.execBlock(ctx, e, env.Child())
	case *IfStmt:
		return ev.execIf(ctx, e, env)
	}

	return Nil{}, nil
}

// execBlock executes the statements of b in scope, which the caller creates.
func (ev *Evaluator) execBlock(ctx context.Context, b *Block, scope *Environment) (Value, error) {
	var last Value = Nil{}

	for _, s := range b.Statements {
		v, err := ev.exec(ctx, s, scope)
		if err != nil {
			return nil, err
		}

		last = v
	}

	return last, nil
}

func (ev *Evaluator) eval(ctx context.Context, e Expr, env *Environment) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil

	case *Identifier:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, locate(err, e.Pos)
		}

		return v, nil

	case *UnaryExpr:
		v, err := ev.eval(ctx, e.Operand, env)
		if err != nil {
			return nil, err
		}

		r, err := unary(e.Op, v)
		if err != nil {
			return nil, locate(err, e.Pos)
		}

		return r, nil

	case *LogicalExpr:
		l, err := ev.eval(ctx, e.Left, env)
		if err != nil {
			return nil, err
		}

		if Truthy(l) == (e.Op == KindOr) {
			return l, nil
		}

		return ev.eval(ctx, e.Right, env)

	case *BinaryExpr:
		l, err := ev.eval(ctx, e.Left, env)
		if err != nil {
			return nil, err
		}

		r, err := ev.eval(ctx, e.Right, env)
		if err != nil {
			return nil, err
		}

		v, err := binary(e.Op, l, r)
		if err != nil {
			return nil, locate(err, e.Pos)
		}

		return v, nil

	case *CallExpr:
		return ev.call(ctx, e, env)
	}

	return nil, ErrParse.WithPosition(e.Position()).
		Wrapf("unsupported expression %T", e)
}

// call invokes a function in a new scope whose parent is the scope the
// function captured, not the caller's.
func (ev *Evaluator) call(ctx context.Context, c *CallExpr, env *Environment) (Value, error) {
	callee, err := ev.eval(ctx, c.Callee, env)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(*Function)
	if !ok {
		return nil, ErrTypeMismatch.WithPosition(c.Pos).
			Wrapf("%s is not callable (%s)", c.Callee.Name, callee.Type()).
			With(slog.String("name", c.Callee.Name))
	}

	if len(c.Args) != len(fn.Params) {
		return nil, ErrArity.WithPosition(c.Pos).
			Wrapf("%s expects %d argument(s), got %d",
				fn.Signature(), len(fn.Params), len(c.Args)).
			With(
				slog.String("function", fn.Name),
				slog.Int("expected", len(fn.Params)),
				slog.Int("actual", len(c.Args)),
			)
	}

	args := make([]Value, len(c.Args))

	for i, a := range c.Args {
		if args[i], err = ev.eval(ctx, a, env); err != nil {
			return nil, err
		}
	}

	if err := ev.stack.push(fn.Name, c.Pos); err != nil {
		return nil, err
	}
	defer ev.stack.pop()

	if ev.opts.logger.Enabled(ctx, log.LevelTrace) {
		ev.opts.logger.TraceContext(ctx, "call",
			slog.String("function", fn.Name),
			slog.Int("depth", ev.stack.depth()),
			argsAttr(fn.Params, args))
	}

	scope := fn.Env.Child()
	for i, name := range fn.Params {
		scope.Define(name, args[i])
	}

	return ev.execBlock(ctx, fn.Body, scope)
}
