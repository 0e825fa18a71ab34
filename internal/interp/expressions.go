package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/runtime"
	"github.com/cwbudde/golox/internal/token"
)

func (i *Interpreter) evaluate(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return toRuntimeValue(e.Value), nil
	case *ast.GroupingExpr:
		return i.evaluate(e.Expression)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.VariableExpr:
		return i.lookupVariable(e.Name)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.LogicalExpr:
		return i.evalLogical(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	case *ast.GetExpr:
		return i.evalGet(e)
	case *ast.SetExpr:
		return i.evalSet(e)
	case *ast.ThisExpr:
		return i.lookupVariable(e.Keyword)
	case *ast.SuperExpr:
		return i.evalSuper(e)
	}
	return nil, fmt.Errorf("interp: unhandled expression %T", expr)
}

func toRuntimeValue(v any) runtime.Value {
	switch vv := v.(type) {
	case nil:
		return runtime.Nil{}
	case bool:
		return runtime.Boolean(vv)
	case int64:
		return runtime.Int(vv)
	case float64:
		return runtime.Float(vv)
	case string:
		return runtime.String(vv)
	default:
		return runtime.Nil{}
	}
}

// lookupVariable resolves name using the depth side-table when available,
// otherwise falls through to globals.
func (i *Interpreter) lookupVariable(name token.Token) (runtime.Value, error) {
	if distance, ok := i.locals[name]; ok {
		if v, ok := i.environment.GetAt(distance, name.Lexeme); ok {
			return v, nil
		}
		return nil, newRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
	}
	if v, ok := i.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, newRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) (runtime.Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e.Name]; ok {
		i.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(e.Name.Lexeme, value); err != nil {
		return nil, newRuntimeError(e.Name, err.Error())
	}
	return value, nil
}

func (i *Interpreter) evalLogical(e *ast.LogicalExpr) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.OR {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (runtime.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.MINUS:
		switch v := right.(type) {
		case runtime.Int:
			return -v, nil
		case runtime.Float:
			return -v, nil
		}
		return nil, newRuntimeError(e.Operator, "Operand of - must be a number.")
	case token.BANG:
		return runtime.Boolean(!runtime.IsTruthy(right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator.")
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (runtime.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BANG_EQUAL:
		return runtime.Boolean(!runtime.Equal(left, right)), nil
	case token.EQUAL_EQUAL:
		return runtime.Boolean(runtime.Equal(left, right)), nil
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		return arithmetic(e.Operator, left, right)
	case token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		return compare(e.Operator, left, right)
	}
	return nil, newRuntimeError(e.Operator, "Unknown binary operator.")
}

// arithmetic implements binary arithmetic: Int+Int stays
// Int, any Float operand promotes the result to Float, `+` also
// concatenates two Strings, and integer division by zero is a runtime
// error while float division by zero follows IEEE-754 (producing Inf/NaN,
// not an error).
func arithmetic(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	if op.Type == token.PLUS {
		if ls, ok := left.(runtime.String); ok {
			if rs, ok := right.(runtime.String); ok {
				return ls + rs, nil
			}
		}
	}

	if !runtime.IsNumber(left) || !runtime.IsNumber(right) {
		if op.Type == token.PLUS {
			return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
		}
		return nil, newRuntimeError(op, "Operands must be numbers.")
	}

	li, leftIsInt := left.(runtime.Int)
	ri, rightIsInt := right.(runtime.Int)
	if leftIsInt && rightIsInt {
		switch op.Type {
		case token.PLUS:
			return li + ri, nil
		case token.MINUS:
			return li - ri, nil
		case token.STAR:
			return li * ri, nil
		case token.SLASH:
			if ri == 0 {
				return nil, newRuntimeError(op, "Division by zero.")
			}
			return li / ri, nil
		}
	}

	lf, rf := runtime.AsFloat(left), runtime.AsFloat(right)
	switch op.Type {
	case token.PLUS:
		return runtime.Float(lf + rf), nil
	case token.MINUS:
		return runtime.Float(lf - rf), nil
	case token.STAR:
		return runtime.Float(lf * rf), nil
	case token.SLASH:
		return runtime.Float(lf / rf), nil
	}
	return nil, newRuntimeError(op, "Unsupported operator.")
}

// compare implements the ordering operators: Number-vs-Number
// numerically, String-vs-String lexicographically, anything else a
// runtime error.
func compare(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	if runtime.IsNumber(left) && runtime.IsNumber(right) {
		lf, rf := runtime.AsFloat(left), runtime.AsFloat(right)
		switch op.Type {
		case token.LESS:
			return runtime.Boolean(lf < rf), nil
		case token.LESS_EQUAL:
			return runtime.Boolean(lf <= rf), nil
		case token.GREATER:
			return runtime.Boolean(lf > rf), nil
		case token.GREATER_EQUAL:
			return runtime.Boolean(lf >= rf), nil
		}
	}

	if ls, ok := left.(runtime.String); ok {
		if rs, ok := right.(runtime.String); ok {
			switch op.Type {
			case token.LESS:
				return runtime.Boolean(ls < rs), nil
			case token.LESS_EQUAL:
				return runtime.Boolean(ls <= rs), nil
			case token.GREATER:
				return runtime.Boolean(ls > rs), nil
			case token.GREATER_EQUAL:
				return runtime.Boolean(ls >= rs), nil
			}
		}
	}

	return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (i *Interpreter) evalCall(e *ast.CallExpr) (runtime.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, newRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(e.ClosingParen,
			fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalGet(e *ast.GetExpr) (runtime.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	v, err := inst.Get(e.Name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(e.Name, err.Error())
	}
	return v, nil
}

func (i *Interpreter) evalSet(e *ast.SetExpr) (runtime.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper resolves a super.method expression using the resolver's
// depths: `super` lives at distance d, `this` at d-1.
func (i *Interpreter) evalSuper(e *ast.SuperExpr) (runtime.Value, error) {
	distance := i.locals[e.Keyword]

	superVal, _ := i.environment.GetAt(distance, "super")
	superclass, _ := superVal.(*runtime.Class)

	thisVal, _ := i.environment.GetAt(distance-1, "this")
	instance, _ := thisVal.(*runtime.Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(instance), nil
}
