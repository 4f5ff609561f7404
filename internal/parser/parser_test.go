package parser_test

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/parser"
	"rill/internal/source"
	"rill/internal/token"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("parse.rl", []byte(src))
	tree := parser.ParseFile(fileSet.Get(id))
	if tree == nil {
		t.Fatalf("ParseFile returned nil")
	}
	return tree
}

// mainBody parses src and returns the body of the last function item.
func mainBody(t *testing.T, src string) *ast.BlockExpr {
	t.Helper()
	tree := parse(t, src)
	for i := len(tree.Items) - 1; i >= 0; i-- {
		if fn, ok := tree.Items[i].(*ast.FnItem); ok {
			return fn.Body
		}
	}
	t.Fatalf("no function item in %q", src)
	return nil
}

func TestParseTopLevelItems(t *testing.T) {
	tree := parse(t, `
pub struct Point {
    pub x: i32,
    y: i32,
}

struct Pair(i32, bool);

struct Unit;

enum Shape {
    Circle,
    Rect(i32, i32),
}

trait Render {
    type Output;

    fn draw(&self) -> Self::Output;
}

impl Point {
    fn x(&self) -> i32 {
        self.x
    }
}

fn main() {}
`)
	if len(tree.Items) != 7 {
		t.Fatalf("got %d items, want 7", len(tree.Items))
	}

	point := tree.Items[0].(*ast.StructItem)
	if point.Name != "Point" || !point.Public || point.Shape != ast.StructRecord {
		t.Fatalf("point parsed as %+v", point)
	}
	if len(point.Fields) != 2 || !point.Fields[0].Public || point.Fields[1].Public {
		t.Fatalf("point fields parsed as %+v", point.Fields)
	}

	pair := tree.Items[1].(*ast.StructItem)
	if pair.Shape != ast.StructTuple || len(pair.TupleFields) != 2 {
		t.Fatalf("pair parsed as %+v", pair)
	}

	unit := tree.Items[2].(*ast.StructItem)
	if unit.Shape != ast.StructUnit {
		t.Fatalf("unit parsed as %+v", unit)
	}

	shape := tree.Items[3].(*ast.EnumItem)
	if len(shape.Variants) != 2 || shape.Variants[0].Name != "Circle" ||
		len(shape.Variants[1].TupleFields) != 2 {
		t.Fatalf("shape variants parsed as %+v", shape.Variants)
	}

	render := tree.Items[4].(*ast.TraitItem)
	if len(render.AssocTypes) != 1 || render.AssocTypes[0] != "Output" {
		t.Fatalf("assoc types parsed as %v", render.AssocTypes)
	}
	if len(render.Methods) != 1 || render.Methods[0].Body != nil {
		t.Fatalf("trait method parsed as %+v", render.Methods)
	}

	impl := tree.Items[5].(*ast.ImplItem)
	if impl.TraitPath != nil || len(impl.Methods) != 1 {
		t.Fatalf("impl parsed as %+v", impl)
	}
}

func TestParseTraitImpl(t *testing.T) {
	tree := parse(t, `
impl Render for Point {
    type Output = i32;

    fn draw(&self) -> i32 {
        0
    }
}
`)
	impl := tree.Items[0].(*ast.ImplItem)
	if impl.TraitPath == nil || impl.TraitPath.Last() != "Render" {
		t.Fatalf("trait path parsed as %v", impl.TraitPath)
	}
	if len(impl.AssocDefs) != 1 || impl.AssocDefs[0].Name != "Output" {
		t.Fatalf("assoc defs parsed as %+v", impl.AssocDefs)
	}
}

func TestMethodChainNesting(t *testing.T) {
	body := mainBody(t, `
fn main() {
    value.first().second(1);
}
`)
	stmt := body.Stmts[0].(*ast.ExprStmt)
	outer := stmt.X.(*ast.MethodCallExpr)
	if outer.Name != "second" || len(outer.Args) != 1 {
		t.Fatalf("outer call parsed as %+v", outer)
	}
	inner := outer.Recv.(*ast.MethodCallExpr)
	if inner.Name != "first" || len(inner.Args) != 0 {
		t.Fatalf("inner call parsed as %+v", inner)
	}
	if _, ok := inner.Recv.(*ast.PathExpr); !ok {
		t.Fatalf("chain base parsed as %T", inner.Recv)
	}
}

func TestTupleIndexAccess(t *testing.T) {
	body := mainBody(t, `
fn main() {
    let x = pair.0;
}
`)
	let := body.Stmts[0].(*ast.LetStmt)
	field := let.Value.(*ast.FieldExpr)
	if field.Name != "0" {
		t.Fatalf("tuple index parsed as %q", field.Name)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	body := mainBody(t, `
fn main() {
    let x = 1 + 2 * 3;
    let y = a == b && c;
}
`)
	sum := body.Stmts[0].(*ast.LetStmt).Value.(*ast.BinaryExpr)
	if sum.Op != token.Plus {
		t.Fatalf("top operator is %s", sum.Op)
	}
	prod, ok := sum.Rhs.(*ast.BinaryExpr)
	if !ok || prod.Op != token.Star {
		t.Fatalf("rhs parsed as %T", sum.Rhs)
	}

	and := body.Stmts[1].(*ast.LetStmt).Value.(*ast.BinaryExpr)
	if and.Op != token.AndAnd {
		t.Fatalf("top operator is %s", and.Op)
	}
	if eq, ok := and.Lhs.(*ast.BinaryExpr); !ok || eq.Op != token.EqEq {
		t.Fatalf("lhs parsed as %T", and.Lhs)
	}
}

func TestIfLetAndElseChain(t *testing.T) {
	body := mainBody(t, `
fn main() {
    if let Idle = state {
        1
    } else if ready {
        2
    } else {
        3
    };
}
`)
	stmt := body.Stmts[0].(*ast.ExprStmt)
	ifExpr := stmt.X.(*ast.IfExpr)
	if ifExpr.Pat == nil {
		t.Fatalf("if-let lost its pattern")
	}
	if _, ok := ifExpr.Pat.(*ast.IdentPat); !ok {
		t.Fatalf("pattern parsed as %T", ifExpr.Pat)
	}
	elseIf, ok := ifExpr.Else.(*ast.IfExpr)
	if !ok {
		t.Fatalf("else branch parsed as %T", ifExpr.Else)
	}
	if elseIf.Pat != nil {
		t.Fatalf("plain else-if grew a pattern")
	}
	if _, ok := elseIf.Else.(*ast.BlockExpr); !ok {
		t.Fatalf("final else parsed as %T", elseIf.Else)
	}
}

func TestConditionDoesNotParseStructLiteral(t *testing.T) {
	body := mainBody(t, `
fn main() {
    if ready {
    }
}
`)
	ifExpr := body.Tail.(*ast.IfExpr)
	if _, ok := ifExpr.Cond.(*ast.PathExpr); !ok {
		t.Fatalf("condition parsed as %T, want bare path", ifExpr.Cond)
	}
}

func TestStructLiteralInLetInit(t *testing.T) {
	body := mainBody(t, `
fn main() {
    let p = Point { x: 1, y };
}
`)
	let := body.Stmts[0].(*ast.LetStmt)
	lit := let.Value.(*ast.StructLitExpr)
	if lit.Path.Last() != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("literal parsed as %+v", lit)
	}
	if lit.Fields[1].Name != "y" || lit.Fields[1].Value != nil {
		t.Fatalf("shorthand field parsed as %+v", lit.Fields[1])
	}
}

func TestForLoopAcceptsMissingParts(t *testing.T) {
	complete := mainBody(t, `
fn main() {
    for item in items {
    }
}
`)
	loop := complete.Tail.(*ast.ForExpr)
	if !loop.HasIn || loop.Iter == nil || loop.Body == nil {
		t.Fatalf("complete loop parsed as %+v", loop)
	}

	partial := mainBody(t, `
fn main() {
    for item
}
`)
	loop = partial.Tail.(*ast.ForExpr)
	if loop.HasIn || loop.Iter != nil {
		t.Fatalf("partial loop parsed as %+v", loop)
	}
	if _, ok := loop.Pat.(*ast.IdentPat); !ok {
		t.Fatalf("partial loop pattern parsed as %T", loop.Pat)
	}
}

func TestMatchArmPatterns(t *testing.T) {
	body := mainBody(t, `
fn main() {
    match shape {
        Shape::Rect(w, h) => w,
        Test { a, b: named, .. } => a,
        (left, right) => left,
        &inner => inner,
        _ => fallback,
    };
}
`)
	arms := body.Stmts[0].(*ast.ExprStmt).X.(*ast.MatchExpr).Arms
	if len(arms) != 5 {
		t.Fatalf("got %d arms, want 5", len(arms))
	}

	ctor := arms[0].Pat.(*ast.TupleCtorPat)
	if ctor.Path.String() != "Shape::Rect" || len(ctor.Elems) != 2 {
		t.Fatalf("ctor pattern parsed as %+v", ctor)
	}

	record := arms[1].Pat.(*ast.StructPat)
	if len(record.Fields) != 2 || !record.HasRest {
		t.Fatalf("record pattern parsed as %+v", record)
	}
	// shorthand fields still carry a binding node
	if _, ok := record.Fields[0].Pat.(*ast.IdentPat); !ok {
		t.Fatalf("shorthand field pattern parsed as %T", record.Fields[0].Pat)
	}

	if tup := arms[2].Pat.(*ast.TuplePat); len(tup.Elems) != 2 {
		t.Fatalf("tuple pattern parsed as %+v", tup)
	}
	if ref := arms[3].Pat.(*ast.RefPat); ref.Mut {
		t.Fatalf("ref pattern parsed as %+v", ref)
	}
	if _, ok := arms[4].Pat.(*ast.WildPat); !ok {
		t.Fatalf("wildcard parsed as %T", arms[4].Pat)
	}
}

func TestClosureForms(t *testing.T) {
	body := mainBody(t, `
fn main() {
    let typed = |x: i32| x;
    let bare = || 0;
}
`)
	typed := body.Stmts[0].(*ast.LetStmt).Value.(*ast.ClosureExpr)
	if len(typed.Params) != 1 || typed.Params[0].Type == nil {
		t.Fatalf("typed closure parsed as %+v", typed.Params)
	}
	bare := body.Stmts[1].(*ast.LetStmt).Value.(*ast.ClosureExpr)
	if len(bare.Params) != 0 {
		t.Fatalf("bare closure parsed as %+v", bare.Params)
	}
}

func TestReceiverForms(t *testing.T) {
	tree := parse(t, `
impl Point {
    fn a(self) {}
    fn b(&self) {}
    fn c(&mut self) {}
    fn d(x: i32) {}
}
`)
	methods := tree.Items[0].(*ast.ImplItem).Methods
	checks := []struct {
		isSelf  bool
		selfRef bool
		selfMut bool
	}{
		{true, false, false},
		{true, true, false},
		{true, true, true},
		{false, false, false},
	}
	for i, want := range checks {
		p := methods[i].Params[0]
		if p.IsSelf != want.isSelf || p.SelfRef != want.selfRef || p.SelfMut != want.selfMut {
			t.Fatalf("method %s receiver parsed as %+v", methods[i].Name, p)
		}
	}
}

func TestBlockTailVersusStatement(t *testing.T) {
	body := mainBody(t, `
fn main() -> i32 {
    helper();
    42
}
`)
	if len(body.Stmts) != 1 || body.Tail == nil {
		t.Fatalf("block parsed as %d stmts, tail %v", len(body.Stmts), body.Tail)
	}
	if lit, ok := body.Tail.(*ast.LitExpr); !ok || lit.Text != "42" {
		t.Fatalf("tail parsed as %T", body.Tail)
	}
}

func TestParentLinksAndTokens(t *testing.T) {
	tree := parse(t, `
fn main() {
    let x = 1;
}
`)
	fn := tree.Items[0].(*ast.FnItem)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	if let.Parent() != fn.Body {
		t.Fatalf("let parent is %T", let.Parent())
	}
	if let.Value.Parent() != let {
		t.Fatalf("value parent is %T", let.Value.Parent())
	}

	if len(tree.Tokens) == 0 || tree.Tokens[len(tree.Tokens)-1].Kind != token.EOF {
		t.Fatalf("token stream not kept on the file node")
	}
	after := tree.TokensAfter(let.Value.Span().End)
	if len(after) == 0 || after[0].Kind != token.Semicolon {
		t.Fatalf("TokensAfter returned %v", after)
	}
}
