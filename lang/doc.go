// Package lang implements a tree-walking interpreter for a small
// JavaScript-like scripting language: a hand-written lexer and recursive
// descent parser producing an immutable syntax tree, and an evaluator that
// walks the tree against a chain of lexical scope frames.
//
// # Pipeline
//
// Source text flows through three phases. Scan tokenizes the entire input
// eagerly, so any lexical error is reported before parsing begins. The
// parser climbs operator precedence to build the Program. The evaluator
// executes statements in order; the program's result is the value of the
// last top-level expression statement.
//
// Execute runs a source string against a fresh global environment each
// call, so it is deterministic and safe for concurrent use. Interp keeps
// its environment across calls, which is what the interactive shell needs.
// Parse results are memoized process-wide; see ParseString and ClearCache.
//
// # Grammar
//
// Informal EBNF:
//
//	Program   → Stmt* EOF
//	Stmt      → Let | FuncDecl | Return | If | Block | ExprStmt
//	Let       → 'let' Identifier ('=' Expr)? Term
//	FuncDecl  → 'function' Identifier '(' Params? ')' '{' Stmt* '}'
//	Return    → 'return' Expr? Term
//	If        → 'if' '(' Expr ')' '{' Stmt* '}' ('else' (If | '{' Stmt* '}'))?
//	Block     → '{' Stmt* '}'
//	ExprStmt  → Expr Term
//	Term      → ';' | (before '}' or EOF)
//	Expr      → Assign
//	Assign    → Identifier '=' Assign | Or
//	Or        → And ('||' And)*
//	And       → Equality ('&&' Equality)*
//	Equality  → Cmp (('==' | '===' | '!=' | '!==') Cmp)*
//	Cmp       → Add (('<' | '<=' | '>' | '>=') Add)*
//	Add       → Mul (('+' | '-') Mul)*
//	Mul       → Unary (('*' | '/') Unary)*
//	Unary     → '-' Unary | Call
//	Call      → Primary ('(' Args? ')')*
//	Primary   → Number | String | 'true' | 'false' | Identifier | '(' Expr ')'
//
// # Semantics
//
// Values are numbers (64-bit IEEE 754 floats), strings, booleans,
// functions, and undefined. There is no implicit coercion: '+' requires
// two numbers or two strings, the ordering operators require two numbers,
// and mixing kinds is a TypeError. Equality compares kind and contents;
// '==' and '===' behave identically. Division follows IEEE 754, so
// dividing by zero yields Infinity or NaN rather than an error.
//
// 'let' declares in the innermost scope and may shadow outer bindings.
// Assignment rebinds an existing name wherever it was declared and never
// creates one; assigning or reading an undeclared name is a
// ReferenceError. Functions are closures over their defining environment,
// and 'return' outside any function is a SyntaxError.
//
// # Example
//
//	let greeting = "Hello";
//
//	function greet(name) {
//	  return greeting + ", " + name + "!";
//	}
//
//	greet("World");  // program result: "Hello, World!"
package lang
