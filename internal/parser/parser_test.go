package parser

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asparse/internal/ast"
	"asparse/internal/errors"
	"asparse/token"
)

// checkTree verifies span containment, sibling ordering and the sibling
// links of every node below root. Empty nodes carry no span and are only
// checked for linkage.
func checkTree(t *testing.T, root *ast.Node) {
	t.Helper()
	ast.Walk(root, func(n *ast.Node) bool {
		seen := map[*ast.Node]bool{}
		var prev *ast.Node
		lastEnd := n.Pos
		for c := n.FirstChild; c != nil; c = c.Next {
			assert.True(t, c.Parent == n, "Child %s should point back to %s", c, n)
			assert.True(t, c.Prev == prev, "Prev link of %s should be the previous sibling", c)
			assert.False(t, seen[c], "Child %s should appear once", c)
			seen[c] = true

			if c.Length > 0 {
				assert.LessOrEqual(t, n.Pos, c.Pos, "%s should contain %s", n, c)
				assert.GreaterOrEqual(t, n.End(), c.End(), "%s should contain %s", n, c)
				assert.GreaterOrEqual(t, c.Pos, lastEnd, "%s should not overlap its previous sibling", c)
				lastEnd = c.End()
			}
			prev = c
		}
		assert.True(t, n.LastChild == prev, "LastChild of %s should be the final sibling", n)
		return true
	})
}

func collect(root *ast.Node, typ ast.NodeType) []*ast.Node {
	return ast.Collect(root, func(n *ast.Node) bool { return n.Type == typ })
}

func childTypes(n *ast.Node) []ast.NodeType {
	var out []ast.NodeType
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c.Type)
	}
	return out
}

func parse(t *testing.T, source string) *ParseResult {
	t.Helper()
	r := ParseSource("test.as", source, DefaultOptions())
	checkTree(t, r.Root)
	return r
}

func TestParseEmptyScript(t *testing.T) {
	r := parse(t, "")
	assert.Empty(t, r.Errors, "Should have no parse errors")
	require.NotNil(t, r.Root)
	assert.Equal(t, ast.SCRIPT, r.Root.Type)
	assert.Nil(t, r.Root.FirstChild, "Empty script should have no children")

	r = parse(t, "  // only a comment\n;;")
	assert.Empty(t, r.Errors)
	assert.Nil(t, r.Root.FirstChild)
}

func TestParseForLoopFunction(t *testing.T) {
	src := `int foo() { for (int i = 0; i < 10; i++) { foo(x != false); } }`
	r := parse(t, src)
	require.Empty(t, r.Errors, "Should have no parse errors")

	require.Equal(t, 1, r.Root.ChildCount())
	fn := r.Root.FirstChild
	assert.Equal(t, ast.FUNCTION, fn.Type)
	assert.Equal(t, "foo", fn.Name(src))
	assert.Equal(t, src, r.Text(fn), "Function should span the whole source")

	body := fn.FirstChildOfType(ast.STATEMENT_BLOCK)
	require.NotNil(t, body)
	require.Equal(t, 1, body.ChildCount())

	loop := body.FirstChild
	require.Equal(t, ast.FOR, loop.Type)
	require.Equal(t, []ast.NodeType{
		ast.DECLARATION, ast.EXPRESSION_STATEMENT, ast.EXPRESSION_STATEMENT, ast.STATEMENT_BLOCK,
	}, childTypes(loop))

	assert.True(t, strings.HasPrefix(r.Text(loop.Child(0)), "int i = 0"))
	assert.True(t, strings.HasPrefix(r.Text(loop.Child(1)), "i < 10"))
	assert.Equal(t, "i++", r.Text(loop.Child(2)))

	inner := loop.Child(3)
	require.Equal(t, 1, inner.ChildCount())
	stmt := inner.FirstChild
	assert.Equal(t, ast.EXPRESSION_STATEMENT, stmt.Type)

	calls := collect(stmt, ast.FUNCTION_CALL)
	require.Len(t, calls, 1)
	assert.Equal(t, "foo", calls[0].Name(src))

	args := calls[0].FirstChildOfType(ast.ARG_LIST)
	require.NotNil(t, args)
	require.Equal(t, 1, args.ChildCount(), "Call should have one argument")

	ops := collect(args, ast.EXPR_OPERATOR)
	require.Len(t, ops, 1)
	assert.Equal(t, token.NOT_EQUAL, ops[0].TokenKind)
	assert.Equal(t, "x != false", r.Text(args.FirstChild))
}

func TestErrorRecoveryInClassBody(t *testing.T) {
	src := `class C { @#$ }`
	r := parse(t, src)

	require.NotEmpty(t, r.Errors, "Should record an error")
	assert.Equal(t, errors.ErrorExpectedMethodOrProperty, r.Errors[0].Code)
	assert.Equal(t, "expected method or property, instead found '@'", r.Errors[0].Message)

	classes := collect(r.Root, ast.CLASS)
	require.Len(t, classes, 1)
	assert.Equal(t, "C", classes[0].Name(src))
}

func TestRecoveryResumesAfterStatement(t *testing.T) {
	src := `
void f() {
    int a = ;
    a = 2;
}
int g;`
	r := parse(t, src)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, errors.ErrorExpectedExpression, r.Errors[0].Code)
	assert.Equal(t, "expected expression value, instead found ';'", r.Errors[0].Message)

	assert.Len(t, collect(r.Root, ast.FUNCTION), 1)
	stmts := collect(r.Root, ast.EXPRESSION_STATEMENT)
	require.Len(t, stmts, 1, "Statement after the error should still be parsed")
	assert.Equal(t, "a = 2;", r.Text(stmts[0]))

	decls := r.Root.Children()
	require.Len(t, decls, 2)
	assert.Equal(t, ast.DECLARATION, decls[1].Type)
}

func TestNestedTemplateSplitsShiftToken(t *testing.T) {
	src := `array<array<int>> a;`
	r := parse(t, src)
	require.Empty(t, r.Errors, "Should have no parse errors")

	decl := r.Root.FirstChild
	require.NotNil(t, decl)
	assert.Equal(t, ast.DECLARATION, decl.Type)
	assert.Equal(t, "a", decl.Name(src))

	typ := decl.FirstChildOfType(ast.DATA_TYPE)
	require.NotNil(t, typ)
	assert.Equal(t, "array<array<int>>", r.Text(typ))
	require.Equal(t, 2, typ.ChildCount(), "Outer type should hold its name and one argument")

	inner := typ.Child(1)
	assert.Equal(t, "array<int>", r.Text(inner))
	require.Equal(t, 2, inner.ChildCount())
	assert.Equal(t, "int", r.Text(inner.Child(1)))
}

func TestTripleNestedTemplate(t *testing.T) {
	src := `void f() { array<array<array<int>>> a = array<array<array<int>>>(); }`
	r := parse(t, src)
	assert.Empty(t, r.Errors, "Should have no parse errors")
	assert.Len(t, collect(r.Root, ast.CONSTRUCT_CALL), 1)
}

func TestTemplateTypesOption(t *testing.T) {
	src := `grid<int> g;`

	r := ParseSource("test.as", src, DefaultOptions())
	assert.NotEmpty(t, r.Errors, "Unknown template should not parse as a type")

	opts := DefaultOptions()
	opts.TemplateTypes = append(opts.TemplateTypes, "grid")
	r = ParseSource("test.as", src, opts)
	assert.Empty(t, r.Errors, "Configured template should parse")
	checkTree(t, r.Root)
}

func TestLessThanIsNotTemplate(t *testing.T) {
	src := `void f() { bool b = a < c && d > e; }`
	r := parse(t, src)
	assert.Empty(t, r.Errors)
	assert.Len(t, collect(r.Root, ast.EXPR_OPERATOR), 3)
	assert.Empty(t, collect(r.Root, ast.CONSTRUCT_CALL))
}

func TestParseDeclarations(t *testing.T) {
	src := `
namespace Game::Util {
  shared class Player : Entity, ns::IDamageable {
    private int health = 100;
    array<string@>@ names;
    Player() { }
    ~Player() { }
    int get_hp() const final { return health; }
    int hp { get const { return health; } set { health = value; } }
    funcdef void Cb(int);
  }
}
enum Color { Red, Green = 2, Blue }
typedef double real;
funcdef bool Pred(const string &in);
import void log(const string &in msg) from "core";
interface IShape : IBase { float area() const; int sides { get; } }
mixin class Named { string name; }
external shared class Ext;
external void hostFn(int x = 3);
int counter = 0, other(5);
const int[] table = {1, 2, {3, 4}, , 5};
`
	r := parse(t, src)
	require.Empty(t, r.Errors, "Should have no parse errors: %v", r.Errors)

	assert.Equal(t, []ast.NodeType{
		ast.NAMESPACE, ast.ENUM, ast.TYPEDEF, ast.FUNC_DEF, ast.IMPORT, ast.INTERFACE,
		ast.MIXIN, ast.CLASS, ast.FUNCTION, ast.DECLARATION, ast.DECLARATION,
	}, childTypes(r.Root))

	ns := r.Root.FirstChild
	assert.Len(t, ns.Children(), 3, "Namespace should hold both names and a script")

	classes := collect(r.Root, ast.CLASS)
	require.Len(t, classes, 3)
	player := classes[0]
	assert.Equal(t, "shared", r.Text(player.FirstChild), "Modifiers come first")

	inherits := 0
	for _, c := range player.Children() {
		if c.Type == ast.IDENTIFIER && c.FirstChild != nil {
			inherits++
		}
	}
	assert.Equal(t, 2, inherits, "Should have two base types")

	methods := collect(player, ast.FUNCTION)
	require.Len(t, methods, 3)
	assert.Equal(t, "Player", methods[0].Name(src))
	assert.Equal(t, "get_hp", methods[2].Name(src))

	props := collect(player, ast.VIRTUAL_PROPERTY)
	require.Len(t, props, 3, "Property plus two accessors")
	assert.Equal(t, "hp", props[0].Name(src))
	assert.Equal(t, "get", props[1].Name(src))
	assert.Equal(t, "set", props[2].Name(src))

	enum := r.Root.Child(1)
	assert.Equal(t, "Color", enum.Name(src))
	assert.Len(t, collect(enum, ast.EXPRESSION), 1, "One enum value has an initializer")

	imp := r.Root.Child(4)
	module := imp.FirstChildOfType(ast.CONSTANT)
	require.NotNil(t, module)
	assert.Equal(t, `"core"`, r.Text(module))

	hostFn := r.Root.Child(8)
	assert.Nil(t, hostFn.FirstChildOfType(ast.STATEMENT_BLOCK), "External function has no body")

	table := r.Root.Child(10)
	lists := collect(table, ast.INIT_LIST)
	require.Len(t, lists, 2)
	assert.Len(t, lists[0].Children(), 5, "Empty slot should keep a placeholder")
	assert.Equal(t, ast.UNDEFINED, lists[0].Child(3).Type)
}

func TestParameterModifiers(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		types  []string
		params []string
	}{
		{
			name:   "reference directions and handles",
			src:    `void f(int &in a, int &out b = 3, int &inout q, ?&in c, Obj@+ d, Obj@ if_handle_then_const e) {}`,
			types:  []string{"int", "&in", "int", "&out", "int", "&inout", "?", "&in", "Obj@", "+", "Obj@", "if_handle_then_const"},
			params: []string{"a", "b", "q", "c", "d", "e"},
		},
		{
			name:  "unnamed funcdef parameters",
			src:   `funcdef bool CB(int &in, const string &out);`,
			types: []string{"int", "&in", "const string", "&out"},
		},
		{
			name: "void parameter list",
			src:  `void g(void) {}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parse(t, tt.src)
			require.Empty(t, r.Errors, "Should have no parse errors: %v", r.Errors)

			lists := collect(r.Root, ast.PARAMETER_LIST)
			require.Len(t, lists, 1)

			var types, params []string
			for _, c := range lists[0].Children() {
				switch c.Type {
				case ast.DATA_TYPE:
					if c.FirstChild != nil {
						types = append(types, r.Text(c))
					}
				case ast.IDENTIFIER:
					params = append(params, r.Text(c))
				}
			}
			assert.Equal(t, tt.types, types)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestTemplateTypeAsScope(t *testing.T) {
	tests := []struct {
		src   string
		scope string
		name  string
	}{
		{`array<int>::Foo x;`, "array<int>::", "Foo"},
		{`ns::array<string@>::Iter it;`, "ns::array<string@>::", "Iter"},
		{`::array<array<int>>::Foo y;`, "::array<array<int>>::", "Foo"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			r := parse(t, tt.src)
			require.Empty(t, r.Errors, "Should have no parse errors: %v", r.Errors)

			decl := r.Root.FirstChild
			require.NotNil(t, decl)
			assert.Equal(t, ast.DECLARATION, decl.Type)

			typ := decl.FirstChildOfType(ast.DATA_TYPE)
			require.NotNil(t, typ)
			scope := typ.FirstChildOfType(ast.SCOPE)
			require.NotNil(t, scope, "Template prefix should become a scope")
			assert.Equal(t, tt.scope, r.Text(scope))
			assert.Equal(t, tt.name, r.Text(scope.Next))
		})
	}
}

func TestReferenceReturnType(t *testing.T) {
	src := `int &counter() { return c; }
class A { const string &get() const { return s; } }`
	r := parse(t, src)
	require.Empty(t, r.Errors, "Should have no parse errors: %v", r.Errors)

	fns := collect(r.Root, ast.FUNCTION)
	require.Len(t, fns, 2)
	assert.Equal(t, "counter", fns[0].Name(src))
	assert.Equal(t, "get", fns[1].Name(src))

	for _, fn := range fns {
		mod := fn.FirstChildOfType(ast.DATA_TYPE).Next
		require.NotNil(t, mod)
		assert.Equal(t, "&", r.Text(mod), "Reference should follow the return type")
	}
}

func TestDeeplyNestedTemplateIsFast(t *testing.T) {
	const depth = 25
	src := strings.Repeat("array<", depth) + "int" + strings.Repeat(">", depth) + " a;"

	start := time.Now()
	r := parse(t, src)
	elapsed := time.Since(start)

	assert.Empty(t, r.Errors, "Should have no parse errors")
	assert.Less(t, elapsed, 2*time.Second, "Nested template parsing should not grow exponentially")
	assert.Len(t, collect(r.Root, ast.DATA_TYPE), 2*depth+2)
}

func TestParseStatements(t *testing.T) {
	src := `
void main() {
  int a = 1;
  auto b = cast<Base>(obj);
  float c = a > 0 ? 1.5f : .5f;
  switch (a) { case 1: a++; break; case 2: default: a--; }
  do { a += 2; } while (a < 10);
  while (true) { if (a == 3) break; else continue; }
  try { throw_it(); } catch { }
  array<int> arr = {1, 2, 3};
  Cb @f = function(x, int y) { return x + y; };
  string s = "a" "b" """c""";
  Game::Util::Player p();
  obj.method(1).field[0] = ::globalFn(a, b: 2);
  return;
}`
	r := parse(t, src)
	require.Empty(t, r.Errors, "Should have no parse errors: %v", r.Errors)

	for _, typ := range []ast.NodeType{
		ast.CAST, ast.SWITCH, ast.DO_WHILE, ast.WHILE, ast.IF, ast.BREAK, ast.CONTINUE,
		ast.TRY_CATCH, ast.INIT_LIST, ast.NAMED_ARGUMENT, ast.RETURN,
	} {
		assert.NotEmpty(t, collect(r.Root, typ), "Should contain a %s node", typ)
	}

	cases := collect(r.Root, ast.CASE)
	require.Len(t, cases, 3)
	assert.Equal(t, ast.BREAK, cases[0].LastChild.Type, "Trailing break belongs to the case")
	assert.Equal(t, 1, cases[1].ChildCount(), "Empty case holds only its value")

	conds := collect(r.Root, ast.CONDITION)
	ternary := 0
	for _, c := range conds {
		if c.ChildCount() == 3 {
			ternary++
		}
	}
	assert.Equal(t, 1, ternary)

	lambdas := ast.Collect(r.Root, func(n *ast.Node) bool {
		return n.Type == ast.FUNCTION && n.Parent != nil && n.Parent.Type == ast.EXPR_VALUE
	})
	require.Len(t, lambdas, 1)
	assert.True(t, strings.HasPrefix(r.Text(lambdas[0]), "function(x, int y)"))

	consts := ast.Collect(r.Root, func(n *ast.Node) bool {
		return n.Type == ast.CONSTANT && n.ChildCount() == 3
	})
	require.Len(t, consts, 1, "Adjacent strings should be grouped")

	calls := collect(r.Root, ast.FUNCTION_CALL)
	names := make([]string, 0, len(calls))
	for _, c := range calls {
		names = append(names, c.Name(src))
	}
	assert.Contains(t, names, "method")
	assert.Contains(t, names, "globalFn")
	assert.Contains(t, names, "throw_it")
}

func TestNamedArgumentModes(t *testing.T) {
	src := `void f() { g(a: 1, b = 2); }`

	tests := []struct {
		mode     NamedArgMode
		named    int
		warnings int
	}{
		{NamedArgsAccept, 2, 0},
		{NamedArgsWarn, 2, 1},
		{NamedArgsReject, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.NamedArgs = tt.mode
			r := ParseSource("test.as", src, opts)
			checkTree(t, r.Root)

			assert.Empty(t, r.Errors)
			assert.Len(t, collect(r.Root, ast.NAMED_ARGUMENT), tt.named)
			require.Len(t, r.Warnings, tt.warnings)
			if tt.warnings > 0 {
				assert.Equal(t, errors.WarningDeprecatedNamedArg, r.Warnings[0].Code)
			}
		})
	}
}

func TestParseNamedArgMode(t *testing.T) {
	for _, s := range []string{"accept", "warn", "reject"} {
		m, err := ParseNamedArgMode(s)
		assert.NoError(t, err)
		assert.Equal(t, s, m.String())
	}

	_, err := ParseNamedArgMode("loud")
	assert.Error(t, err)
}

func TestUnexpectedVariableDeclaration(t *testing.T) {
	src := `void f() { if (a) int x; b = 1; }`
	r := parse(t, src)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, errors.ErrorUnexpectedVarDecl, r.Errors[0].Code)
	assert.Equal(t, "int", r.Errors[0].Token.Text(src))
	assert.Len(t, collect(r.Root, ast.EXPRESSION_STATEMENT), 1)
}

func TestUnexpectedEndOfFile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		info string
	}{
		{"namespace", "namespace A { int x;", "while parsing namespace"},
		{"statement block", "void f() { int x;", "while parsing statement block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parse(t, tt.src)
			require.Len(t, r.Errors, 1)
			assert.Equal(t, errors.ErrorUnexpectedEOF, r.Errors[0].Code)
			require.Len(t, r.Infos, 1)
			assert.Equal(t, tt.info, r.Infos[0].Message)
			assert.Equal(t, errors.InfoWhileParsing, r.Infos[0].Code)
		})
	}
}

func TestNonTerminatedString(t *testing.T) {
	r := parse(t, `void f() { string s = "abc; }`)
	require.NotEmpty(t, r.Errors)
	assert.Equal(t, errors.ErrorNonTerminatedString, r.Errors[0].Code)
}

func TestErrorsTerminate(t *testing.T) {
	sources := []string{
		"class",
		"class C : {",
		"void f( { }",
		"int x = (1 + ;",
		"namespace { }",
		"enum E { 1 }",
		"interface I { get }",
		"}}}}",
		"void f() { switch (x) { foo } }",
		"void f() { for (;;) }",
		"array<int",
		"cast<",
		"import void f() from 3;",
		"typedef void v;",
		"int p { get; set x }",
	}

	for _, src := range sources {
		r := parse(t, src)
		assert.NotEmpty(t, r.Errors, "Should report an error for %q", src)
	}
}

func TestPredicatesDoNotMoveCursor(t *testing.T) {
	src := `array<array<int>> a; void f() {} int p { get { return 1; } }`
	p := NewParser("test.as", src, DefaultOptions())

	before := p.ts.Position()
	first := p.peek()

	_, isType := p.IsType()
	assert.True(t, isType)
	assert.True(t, p.IsVarDecl())
	assert.False(t, p.IsFuncDecl(false))
	assert.False(t, p.IsVirtualPropertyDecl())
	assert.False(t, p.IsFunctionCall())
	assert.False(t, p.IsLambda())

	assert.Equal(t, before, p.ts.Position(), "Predicates should restore the cursor")
	assert.Equal(t, first, p.peek())
}

func TestNodeAt(t *testing.T) {
	src := `void f() { g(value); }`
	r := parse(t, src)
	require.Empty(t, r.Errors)

	n := r.NodeAt(strings.Index(src, "value") + 2)
	require.NotNil(t, n)
	assert.Equal(t, ast.IDENTIFIER, n.Type)
	assert.Equal(t, "value", r.Text(n))

	assert.Nil(t, r.NodeAt(len(src)+5))
}

func TestParseHelper(t *testing.T) {
	root, errs, warnings, infos := Parse("int x = 1;")
	assert.NotNil(t, root)
	assert.Empty(t, errs)
	assert.Empty(t, warnings)
	assert.Empty(t, infos)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.as"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
