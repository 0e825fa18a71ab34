package ast

import "github.com/cwbudde/golox/internal/token"

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) stmtNode()            {}
func (s *ExprStmt) TokenLiteral() string { return s.Expression.TokenLiteral() }
func (s *ExprStmt) Pos() token.Position  { return s.Expression.Pos() }
func (s *ExprStmt) String() string       { return s.Expression.String() + ";" }

// PrintStmt evaluates an expression and writes its display form followed
// by a newline to the interpreter's output.
type PrintStmt struct {
	Keyword    token.Token
	Expression Expr
}

func (s *PrintStmt) stmtNode()            {}
func (s *PrintStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *PrintStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *PrintStmt) String() string       { return "print " + s.Expression.String() + ";" }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if omitted
}

func (s *VarStmt) stmtNode()            {}
func (s *VarStmt) TokenLiteral() string { return s.Name.Lexeme }
func (s *VarStmt) Pos() token.Position  { return s.Name.Pos() }
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return "var " + s.Name.Lexeme + ";"
	}
	return "var " + s.Name.Lexeme + " = " + s.Initializer.String() + ";"
}

// BlockStmt is a brace-delimited list of statements executed in a new
// lexical scope.
type BlockStmt struct {
	LBrace     token.Token
	Statements []Stmt
}

func (s *BlockStmt) stmtNode()            {}
func (s *BlockStmt) TokenLiteral() string { return s.LBrace.Lexeme }
func (s *BlockStmt) Pos() token.Position  { return s.LBrace.Pos() }
func (s *BlockStmt) String() string {
	out := "{\n"
	for _, stmt := range s.Statements {
		out += "  " + stmt.String() + "\n"
	}
	return out + "}"
}

// IfStmt executes Then or Else depending on Condition's truthiness. Else
// is nil when there is no else-branch.
type IfStmt struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *IfStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *IfStmt) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt loops over Body while Condition is truthy. `for` is desugared
// into this form by the parser.
type WhileStmt struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *WhileStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// FunStmt declares a named function (or, as a ClassDecl member, a method).
type FunStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunStmt) stmtNode()            {}
func (s *FunStmt) TokenLiteral() string { return s.Name.Lexeme }
func (s *FunStmt) Pos() token.Position  { return s.Name.Pos() }
func (s *FunStmt) String() string {
	out := "fun " + s.Name.Lexeme + "("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += p.Lexeme
	}
	return out + ") { ... }"
}

// ReturnStmt exits the enclosing function. Value is nil when the return
// has no expression (implicit nil).
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (s *ReturnStmt) stmtNode()            {}
func (s *ReturnStmt) TokenLiteral() string { return s.Keyword.Lexeme }
func (s *ReturnStmt) Pos() token.Position  { return s.Keyword.Pos() }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// ClassStmt declares a class, its optional superclass, and its methods.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if there is none
	Methods    []*FunStmt
}

func (s *ClassStmt) stmtNode()            {}
func (s *ClassStmt) TokenLiteral() string { return s.Name.Lexeme }
func (s *ClassStmt) Pos() token.Position  { return s.Name.Pos() }
func (s *ClassStmt) String() string {
	out := "class " + s.Name.Lexeme
	if s.Superclass != nil {
		out += " < " + s.Superclass.String()
	}
	out += " {\n"
	for _, m := range s.Methods {
		out += "  " + m.String() + "\n"
	}
	return out + "}"
}
