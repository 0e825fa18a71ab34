// Package resolver performs a static pass over the AST before
// interpretation: for every variable-use site it computes how many
// enclosing scopes must be traversed to find the binding, and it rejects
// a handful of statically-detectable errors before the interpreter ever
// runs. It walks a stack of scopes innermost-out on lookup; since the
// language is dynamically typed, scope analysis is the only static pass
// it needs. The scope map is a plain `map[string]bool`, not
// case-insensitive, matching internal/runtime's case-sensitive
// Environment.
package resolver

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks the AST once, before interpretation, building the
// depth side-table consumed by the interpreter.
type Resolver struct {
	scopes          []map[string]bool
	locals          map[token.Token]int
	currentFunction functionType
	currentClass    classType
	errors          []*errors.SourceError
}

// New creates a Resolver ready to resolve a single program.
func New() *Resolver {
	return &Resolver{locals: make(map[token.Token]int)}
}

// Resolve runs the pass over program's statements. It returns the
// depth side-table and any static errors; a non-empty error slice means
// execution must not proceed.
func (r *Resolver) Resolve(program *ast.Program) (map[token.Token]int, []*errors.SourceError) {
	r.resolveStmts(program.Statements)
	return r.locals, r.errors
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ast.ReturnStmt:
		r.resolveReturn(s)
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveReturn(s *ast.ReturnStmt) {
	if r.currentFunction == funcNone {
		r.errAt(s.Keyword, "Cannot return from top-level code.")
		return
	}
	if s.Value != nil {
		if r.currentFunction == funcInitializer {
			r.errAt(s.Keyword, "Cannot return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errAt(s.Superclass.Name, "A class cannot inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpr(s.Superclass)
		}
	}

	if s.Superclass != nil {
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declType := funcMethod
		if method.Name.Lexeme == "init" {
			declType = funcInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// no sub-expressions, no name to resolve
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errAt(e.Name, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.Name)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.Name)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errAt(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.Keyword)
	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errAt(e.Keyword, "Cannot use 'super' outside of a class.")
		case classClass:
			r.errAt(e.Keyword, "Cannot use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(e.Keyword)
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errAt(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records useTok's depth in the side-table if its name is
// found in any enclosing (non-global) scope; absence leaves no entry,
// meaning "resolve through globals".
func (r *Resolver) resolveLocal(useTok token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][useTok.Lexeme]; ok {
			r.locals[useTok] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) errAt(tok token.Token, message string) {
	r.errors = append(r.errors, errors.NewAt(tok.Pos(), tok.Lexeme, message))
}
