// Package lang implements helix, a small dynamically-typed scripting
// language: lexer, parser, syntax tree, lexical environments and a
// tree-walking evaluator.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	Program     → Statement* EOF
//	Statement   → Let | Assign | If | While | Function | Print | Block | Expr
//	Let         → 'let' Ident '=' Expr
//	Assign      → Ident '=' Expr
//	If          → 'if' Expr Block ('else' (If | Block))?
//	While       → 'while' Expr Block
//	Function    → ('function' | 'fn') Ident '(' Params? ')' Block
//	Print       → 'print' Expr
//	Block       → '{' Statement* '}'
//	Expr        → Comparison (('&&' | '||') Comparison)*
//	Comparison  → Additive (('==' | '!=' | '<' | '<=' | '>' | '>=') Additive)*
//	Additive    → Term (('+' | '-') Term)*
//	Term        → Exponent (('*' | '/' | '%') Exponent)*
//	Exponent    → Unary ('^' Exponent)?
//	Unary       → ('-' | '!') Unary | Atom
//	Atom        → Literal | Ident | Ident '(' Args? ')' | '(' Expr ')'
//
// Statements may be separated by ';'. Comments run from '#' or '//' to the
// end of the line. The words and, or and not are aliases of &&, || and !.
//
// # Example
//
//	function counter() {
//	  let n = 0
//	  function next() {
//	    n = n + 1
//	    n
//	  }
//	  next
//	}
//
//	let c = counter()
//	print c()   # 1
//	print c()   # 2
//
// # Scoping
//
// Blocks, loop iterations and calls each run in a child of the enclosing
// environment. let always binds in the current scope, shadowing outer
// bindings; assignment updates the nearest existing binding and fails if
// there is none. A function captures the environment it was declared in by
// reference, so closures observe later updates to captured variables.
//
// # Values
//
// Integers are 64-bit and wrap on overflow. Mixing an integer with a float
// promotes to float. Integer division truncates toward zero. Division or
// remainder by zero fails with [ErrDivisionByZero] for both kinds.
//
// A block, call or program evaluates to the value of its last statement:
// an expression statement yields its value, an if yields the value of the
// branch taken, every other statement yields nil.
package lang
