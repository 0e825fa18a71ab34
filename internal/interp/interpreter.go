// Package interp walks the resolved AST, evaluating expressions and
// executing statements against a lexically scoped environment chain. An
// Interpreter holds an output writer and the current environment, and
// dispatches over AST node kinds with a type switch; every evaluation
// returns a (Value, error) pair, with non-local `return` transported
// through the same error channel as genuine runtime errors
// (internal/runtime.ReturnValue).
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/runtime"
	"github.com/cwbudde/golox/internal/token"
)

// Interpreter executes a resolved program. It implements
// runtime.Interpreter so that runtime.Function can call back into it to
// run a function body.
type Interpreter struct {
	globals     *runtime.Environment
	environment *runtime.Environment
	locals      map[token.Token]int
	output      io.Writer
}

// New creates an Interpreter whose `print` statements write to output,
// with a fresh global environment populated with the clock() native.
func New(output io.Writer) *Interpreter {
	globals := runtime.NewEnvironment()
	globals.Define("clock", &runtime.Native{
		Name: "clock",
		Arty: 0,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Float(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	return &Interpreter{globals: globals, environment: globals, output: output, locals: make(map[token.Token]int)}
}

// Interpret runs every top-level statement in program, merging locals into
// the interpreter's depth side-table. Merging rather than replacing lets a
// REPL call Interpret once per input line while keeping earlier lines'
// function closures resolvable: each line produces distinct Token values
// (different Line/Column), so the merge never collides. It stops at the
// first runtime error.
func (i *Interpreter) Interpret(program *ast.Program, locals map[token.Token]int) error {
	for tok, depth := range locals {
		i.locals[tok] = depth
	}
	for _, stmt := range program.Statements {
		if _, err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBlock runs stmts with env as the current environment, restoring
// the previous environment on every exit path — success, runtime error,
// or a *runtime.ReturnValue unwinding through. This is the single
// scoping primitive blocks, function bodies, and method bodies all
// share, and is also runtime.Interpreter's one required method.
func (i *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *runtime.Environment) (runtime.Value, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if _, err := i.execute(stmt); err != nil {
			return nil, err
		}
	}
	return runtime.Nil{}, nil
}

func (i *Interpreter) execute(stmt ast.Stmt) (runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return i.evaluate(s.Expression)
	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.output, runtime.DisplayString(v))
		return nil, nil
	case *ast.VarStmt:
		return i.executeVar(s)
	case *ast.BlockStmt:
		return i.ExecuteBlock(s.Statements, runtime.NewEnclosedEnvironment(i.environment))
	case *ast.IfStmt:
		return i.executeIf(s)
	case *ast.WhileStmt:
		return i.executeWhile(s)
	case *ast.ReturnStmt:
		return i.executeReturn(s)
	case *ast.FunStmt:
		fn := runtime.NewFunction(s, i.environment, false)
		i.environment.Define(s.Name.Lexeme, fn)
		return nil, nil
	case *ast.ClassStmt:
		return i.executeClass(s)
	}
	return nil, fmt.Errorf("interp: unhandled statement %T", stmt)
}

func (i *Interpreter) executeVar(s *ast.VarStmt) (runtime.Value, error) {
	var value runtime.Value = runtime.Nil{}
	if s.Initializer != nil {
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return nil, err
		}
		value = v
	}
	i.environment.Define(s.Name.Lexeme, value)
	return nil, nil
}

func (i *Interpreter) executeIf(s *ast.IfStmt) (runtime.Value, error) {
	cond, err := i.evaluate(s.Condition)
	if err != nil {
		return nil, err
	}
	if runtime.IsTruthy(cond) {
		return i.execute(s.Then)
	}
	if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil, nil
}

func (i *Interpreter) executeWhile(s *ast.WhileStmt) (runtime.Value, error) {
	for {
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return nil, err
		}
		if !runtime.IsTruthy(cond) {
			return nil, nil
		}
		if _, err := i.execute(s.Body); err != nil {
			return nil, err
		}
	}
}

func (i *Interpreter) executeReturn(s *ast.ReturnStmt) (runtime.Value, error) {
	var value runtime.Value = runtime.Nil{}
	if s.Value != nil {
		v, err := i.evaluate(s.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return nil, &runtime.ReturnValue{Value: value}
}

// executeClass builds the class's method table, wiring a `super`-carrying
// closure environment when there's a superclass.
func (i *Interpreter) executeClass(s *ast.ClassStmt) (runtime.Value, error) {
	var superclass *runtime.Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return nil, err
		}
		sc, ok := v.(*runtime.Class)
		if !ok {
			return nil, newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, runtime.Nil{})

	methodEnv := i.environment
	if superclass != nil {
		methodEnv = runtime.NewEnclosedEnvironment(i.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = runtime.NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := runtime.NewClass(s.Name.Lexeme, superclass, methods)
	if err := i.environment.Assign(s.Name.Lexeme, class); err != nil {
		return nil, newRuntimeError(s.Name, err.Error())
	}
	return nil, nil
}

func newRuntimeError(tok token.Token, message string) *errors.SourceError {
	return errors.NewAt(tok.Pos(), tok.Lexeme, message)
}
