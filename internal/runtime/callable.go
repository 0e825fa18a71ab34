package runtime

import (
	"github.com/cwbudde/golox/internal/ast"
)

// Interpreter is the narrow slice of the tree-walking interpreter that
// Callable implementations need: running a function body in a fresh
// scope. Declared here (rather than imported from internal/interp) so
// this package doesn't depend on its own caller — internal/interp
// implements this interface on its *Interpreter.
type Interpreter interface {
	ExecuteBlock(stmts []ast.Stmt, env *Environment) (Value, error)
}

// ReturnValue is the non-local transfer that carries a `return`'s value
// up through the error channel. It implements error so it can travel
// through the same (Value, error) return shape as a genuine runtime
// error; Function.Call is the one frame that recognizes and unwraps it.
type ReturnValue struct {
	Value Value
}

func (r *ReturnValue) Error() string { return "return" }

// Callable is implemented by every value that can appear as the callee
// of a Call expression: native functions, user-defined functions, and
// classes (constructing an Instance).
type Callable interface {
	Value
	Arity() int
	Call(interp Interpreter, args []Value) (Value, error)
}

// Native wraps a host Go function as a callable language value. The only
// native in the global environment is clock().
type Native struct {
	Name string
	Arty int
	Fn   func(args []Value) (Value, error)
}

func (n *Native) Type() string   { return "native function" }
func (n *Native) String() string { return "<native fn " + n.Name + ">" }
func (n *Native) Arity() int     { return n.Arty }

func (n *Native) Call(_ Interpreter, args []Value) (Value, error) {
	return n.Fn(args)
}

// Function is a user-defined function or method: it closes over the
// environment active at its declaration site and, if it is a class
// initializer, always yields `this` regardless of what the body returned.
type Function struct {
	Decl          *ast.FunStmt
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.FunStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{Decl: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *Function) Type() string   { return "function" }
func (f *Function) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }
func (f *Function) Arity() int     { return len(f.Decl.Params) }

// Bind returns a new Function whose closure additionally defines `this`
// as instance, making `this` an ordinary lexically-resolved variable
// inside the method body.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return NewFunction(f.Decl, env, f.IsInitializer)
}

// Call creates the call frame's environment, binds parameters, and runs
// the body. A `return` inside the body surfaces here as a *ReturnValue
// error; Call is the frame that absorbs it and turns it back into an
// ordinary value.
func (f *Function) Call(interp Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := interp.ExecuteBlock(f.Decl.Body, env)
	if ret, ok := err.(*ReturnValue); ok {
		if f.IsInitializer {
			this, _ := f.Closure.GetAt(0, "this")
			return this, nil
		}
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		this, _ := f.Closure.GetAt(0, "this")
		return this, nil
	}
	return result, nil
}
