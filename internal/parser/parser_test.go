package parser

import (
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

func parse(t *testing.T, source string) (*ast.Program, []string) {
	t.Helper()

	tokens, scanErrs := lexer.New(source).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}

	program, errs := New(tokens).Parse()
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}
	return program, messages
}

func TestParseExpressionStatement(t *testing.T) {
	program, errs := parse(t, `1 + 2 * 3;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", program.Statements[0])
	}
	got := stmt.Expression.String()
	want := "(1 + (2 * 3))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program, errs := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	block, ok := program.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for to wrap in *ast.BlockStmt, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected var-decl + while in the wrapping block, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected first statement to be the initializer VarStmt, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be a WhileStmt, got %T", block.Statements[1])
	}
	whileBody, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected while body to be a block wrapping body+increment, got %T", whileStmt.Body)
	}
	if len(whileBody.Statements) != 2 {
		t.Fatalf("expected body + increment in the while's block, got %d statements", len(whileBody.Statements))
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	program, errs := parse(t, `class B < A { greet() { print "hi"; } }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	class, ok := program.Statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", program.Statements[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("expected superclass A, got %v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "greet" {
		t.Fatalf("expected one method named greet, got %v", class.Methods)
	}
}

func TestInvalidAssignmentTargetReported(t *testing.T) {
	_, errs := parse(t, `1 + 2 = 3;`)
	if len(errs) == 0 {
		t.Fatalf("expected an 'Invalid assignment target.' error")
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	// The first statement is missing its semicolon; synchronize should
	// stop at the 'var' that begins the second statement and still parse
	// it instead of stopping at the first error.
	program, errs := parse(t, `var a = 1 var b = 2;`)
	if len(errs) == 0 {
		t.Fatalf("expected at least one error")
	}
	found := false
	for _, s := range program.Statements {
		if v, ok := s.(*ast.VarStmt); ok && v.Name.Lexeme == "b" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse 'var b = 2;', statements: %v", program.Statements)
	}
}

func TestTooManyArgumentsReportsError(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ", "
		}
		args += "1"
	}
	_, errs := parse(t, "f("+args+");")
	if len(errs) == 0 {
		t.Fatalf("expected a 'Can't have more than 255 arguments.' error")
	}
}
