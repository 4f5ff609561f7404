package hints_test

import (
	"reflect"
	"testing"

	"rill/internal/hints"
	"rill/internal/parser"
	"rill/internal/sema"
	"rill/internal/source"
)

// analyze runs the full pipeline over in-memory source.
func analyze(t *testing.T, src string, cfg hints.Config) (*source.File, []hints.Hint) {
	t.Helper()
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("main.rl", []byte(src))
	file := fileSet.Get(id)
	tree := parser.ParseFile(file)
	return file, hints.Compute(file, tree, sema.Check(tree), cfg)
}

type wantHint struct {
	text  string // source text the hint range covers
	kind  hints.Kind
	label string
}

func expectHints(t *testing.T, file *source.File, got []hints.Hint, want []wantHint) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d hints, want %d: %v", len(got), len(want), describe(file, got))
	}
	for i, w := range want {
		text := file.Text(got[i].Range)
		if text != w.text || got[i].Kind != w.kind || got[i].Label != w.label {
			t.Fatalf("hint %d: got (%q, %s, %q), want (%q, %s, %q)",
				i, text, got[i].Kind, got[i].Label, w.text, w.kind, w.label)
		}
	}
}

func describe(file *source.File, got []hints.Hint) []string {
	out := make([]string, 0, len(got))
	for _, h := range got {
		out = append(out, file.Text(h.Range)+"/"+h.Kind.String()+"/"+h.Label)
	}
	return out
}

func typesOnly() hints.Config {
	return hints.Config{TypeHints: true, ObviousParams: hints.DefaultObviousParams()}
}

func paramsOnly() hints.Config {
	return hints.Config{ParameterHints: true, ObviousParams: hints.DefaultObviousParams()}
}

func chainingOnly() hints.Config {
	return hints.Config{ChainingHints: true, ObviousParams: hints.DefaultObviousParams()}
}

func TestLetBindingTypeHints(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    let test = 33;
    let duration = 9.2;
    let flag = true;
    let letter = 'x';
    let greeting = "hi";
}
`, typesOnly())
	expectHints(t, file, got, []wantHint{
		{"test", hints.TypeHint, "i32"},
		{"duration", hints.TypeHint, "f64"},
		{"flag", hints.TypeHint, "bool"},
		{"letter", hints.TypeHint, "char"},
		{"greeting", hints.TypeHint, "&str"},
	})
}

func TestDeclaredTypeSuppressesBindingHint(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    let test: i32 = 33;
}
`, typesOnly())
	expectHints(t, file, got, nil)
}

func TestTupleDestructuringHints(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    let (first, second) = (92, false);
}
`, typesOnly())
	expectHints(t, file, got, []wantHint{
		{"first", hints.TypeHint, "i32"},
		{"second", hints.TypeHint, "bool"},
	})
}

func TestUnitSingletonBoundByOwnName(t *testing.T) {
	file, got := analyze(t, `
struct Marker;

fn main() {
    let Marker = Marker;
    let m = Marker;
}
`, typesOnly())
	// only the differently named binding gets a hint
	expectHints(t, file, got, []wantHint{
		{"m", hints.TypeHint, "Marker"},
	})
}

func TestFunctionParamsWithTypesGetNoHints(t *testing.T) {
	file, got := analyze(t, `
fn add(lhs: i32, second: i32) -> i32 {
    lhs
}
`, typesOnly())
	expectHints(t, file, got, nil)
}

func TestClosureParamAnnotationSuppressesHint(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    let double = |amount: i32| amount;
}
`, typesOnly())
	expectHints(t, file, got, []wantHint{
		{"double", hints.TypeHint, "|…| -> i32"},
	})
}

func TestParamNameMatchingCalleeSuppressed(t *testing.T) {
	file, got := analyze(t, `
fn foo(foo: i32) -> i32 {
    foo
}

fn main() {
    foo(4);
}
`, paramsOnly())
	expectHints(t, file, got, nil)
}

func TestParamHintsShownWhenNotObvious(t *testing.T) {
	file, got := analyze(t, `
fn max(x: i32, y: i32) -> i32 {
    x
}

fn main() {
    let _ = max(4, 4);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"4", hints.ParameterHint, "x"},
		{"4", hints.ParameterHint, "y"},
	})
}

func TestUnderscorePrefixedParamMatchesArgument(t *testing.T) {
	file, got := analyze(t, `
fn has_underscore(_param: bool) {}

fn main() {
    let param = true;
    has_underscore(param);
}
`, paramsOnly())
	expectHints(t, file, got, nil)
}

func TestArgumentPrefixedByParamNameSuppressed(t *testing.T) {
	file, got := analyze(t, `
fn check(expected: i32, boundary: i32) {}

fn main() {
    let expected_score = 1;
    check(expected_score, 7);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"7", hints.ParameterHint, "boundary"},
	})
}

func TestEnumTypeNameMatchingParamSuppressed(t *testing.T) {
	file, got := analyze(t, `
enum CompletionKind {
    Keyword,
}

fn accepts(completion_kind: CompletionKind) {}

fn names(kind: CompletionKind) {}

fn main() {
    accepts(CompletionKind::Keyword);
    names(CompletionKind::Keyword);
}
`, paramsOnly())
	// the snake-cased type name only suppresses the exact match
	expectHints(t, file, got, []wantHint{
		{"CompletionKind::Keyword", hints.ParameterHint, "kind"},
	})
}

func TestCalleeSuffixSuppressesFirstPosition(t *testing.T) {
	file, got := analyze(t, `
fn set_param(param: i32, flag: bool) {}

fn main() {
    set_param(1, true);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"true", hints.ParameterHint, "flag"},
	})
}

func TestFixtureMarkerParamSuppressed(t *testing.T) {
	file, got := analyze(t, `
fn render(rill_fixture_src: i32, indent: i32) {}

fn main() {
    render(1, 2);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"2", hints.ParameterHint, "indent"},
	})
}

func TestObviousSingleParamSuppressed(t *testing.T) {
	file, got := analyze(t, `
fn push(value: i32) {}

fn id(x: i32) -> i32 {
    x
}

fn main() {
    push(92);
    id(5);
}
`, paramsOnly())
	expectHints(t, file, got, nil)
}

func TestReceiverHintOnQualifiedCall(t *testing.T) {
	file, got := analyze(t, `
struct Point {
    x: i32,
    y: i32,
}

impl Point {
    fn scale(&self, factor: i32) -> i32 {
        factor
    }
}

fn main() {
    let p = Point { x: 1, y: 2 };
    Point::scale(&p, 10);
    p.scale(10);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"&p", hints.ParameterHint, "self"},
		{"10", hints.ParameterHint, "factor"},
		{"10", hints.ParameterHint, "factor"},
	})
}

func TestClosureCallArgumentHints(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    let add = |augend: i32, addend: i32| augend + addend;
    add(1, 2);
}
`, paramsOnly())
	expectHints(t, file, got, []wantHint{
		{"1", hints.ParameterHint, "augend"},
		{"2", hints.ParameterHint, "addend"},
	})
}

const chainFixture = `
struct A(B);
struct B(C);
struct C;

impl A {
    fn into_b(self) -> B {
        self.0
    }
}

impl B {
    fn into_c(self) -> C {
        self.0
    }
}
`

func TestChainingOuterBeforeInner(t *testing.T) {
	file, got := analyze(t, chainFixture+`
fn main() {
    let c = A(B(C))
        .into_b()
        .into_c();
}
`, chainingOnly())
	expectHints(t, file, got, []wantHint{
		{"A(B(C))\n        .into_b()", hints.ChainingHint, "B"},
		{"A(B(C))", hints.ChainingHint, "A"},
	})
}

func TestChainingNeedsLineBreak(t *testing.T) {
	file, got := analyze(t, chainFixture+`
fn main() {
    let c = A(B(C)).into_b().into_c();
}
`, chainingOnly())
	expectHints(t, file, got, nil)
}

func TestChainingSurvivesTrailingComment(t *testing.T) {
	file, got := analyze(t, chainFixture+`
fn main() {
    let c = A(B(C)) // build it
        .into_b();
}
`, chainingOnly())
	expectHints(t, file, got, []wantHint{
		{"A(B(C))", hints.ChainingHint, "A"},
	})
}

func TestChainingBrokenByStandaloneComment(t *testing.T) {
	file, got := analyze(t, chainFixture+`
fn main() {
    let c = A(B(C))
        // convert
        .into_b();
}
`, chainingOnly())
	expectHints(t, file, got, nil)
}

func TestChainingStructLiteralSuppressed(t *testing.T) {
	file, got := analyze(t, `
struct Foo {
    x: i32,
}

impl Foo {
    fn bar(self) -> i32 {
        self.x
    }
}

fn main() {
    let _ = Foo { x: 1 }
        .bar();
}
`, chainingOnly())
	expectHints(t, file, got, nil)
}

func TestChainingUnitValueSuppressed(t *testing.T) {
	file, got := analyze(t, `
struct Quiet;

impl Quiet {
    fn id(self) -> Quiet {
        self
    }
}

fn main() {
    let _ = Quiet
        .id();
}
`, chainingOnly())
	expectHints(t, file, got, nil)
}

func TestIteratorChainShortened(t *testing.T) {
	cfg := hints.Config{
		TypeHints:     true,
		ChainingHints: true,
		MaxLength:     25,
		ObviousParams: hints.DefaultObviousParams(),
	}
	file, got := analyze(t, `
fn main() {
    let it = repeat(92)
        .take(3);
}
`, cfg)
	expectHints(t, file, got, []wantHint{
		{"it", hints.TypeHint, "impl Iterator<Item = i32>"},
		{"repeat(92)", hints.ChainingHint, "impl Iterator<Item = i32>"},
	})
}

func TestIteratorShorteningNeedsRoomForWrapper(t *testing.T) {
	cfg := typesOnly()
	cfg.MaxLength = 10
	file, got := analyze(t, `
fn main() {
    let it = repeat(92).take(3);
}
`, cfg)
	expectHints(t, file, got, []wantHint{
		{"it", hints.TypeHint, "Take<…>"},
	})
}

func TestForLoopElementHint(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    for word in repeat("hello") {
    }
}
`, typesOnly())
	expectHints(t, file, got, []wantHint{
		{"word", hints.TypeHint, "&str"},
	})
}

func TestForLoopUnknownIterable(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    for i in data {
    }
}
`, typesOnly())
	expectHints(t, file, got, nil)
}

func TestIncompleteForLoop(t *testing.T) {
	file, got := analyze(t, `
fn main() {
    for i
}
`, typesOnly())
	expectHints(t, file, got, nil)
}

func TestMatchArmVariantCollisionShown(t *testing.T) {
	file, got := analyze(t, `
enum Shape {
    Circle,
    Square,
}

fn main() {
    let shape = Shape::Circle;
    match shape {
        Square => 1,
        other => 2,
    };
}
`, typesOnly())
	// "Square" binds a variable while spelling a variant name; only
	// that ambiguous binding is flagged
	expectHints(t, file, got, []wantHint{
		{"shape", hints.TypeHint, "Shape"},
		{"Square", hints.TypeHint, "Shape"},
	})
}

func TestIfLetCollisionShown(t *testing.T) {
	file, got := analyze(t, `
enum State {
    Idle,
    Busy,
}

fn main() {
    let st = State::Idle;
    if let Idle = st {
    }
    if let current = st {
    }
}
`, typesOnly())
	expectHints(t, file, got, []wantHint{
		{"st", hints.TypeHint, "State"},
		{"Idle", hints.TypeHint, "State"},
	})
}

func TestTruncationBound(t *testing.T) {
	cfg := typesOnly()
	cfg.MaxLength = 8
	file, got := analyze(t, `
struct Smol<T>(T);
struct VeryLongOuterName<T>(T);

fn main() {
    let a = Smol(0u32);
    let b = VeryLongOuterName(Smol(0u32));
}
`, cfg)
	expectHints(t, file, got, []wantHint{
		{"a", hints.TypeHint, "Smol<…>"},
		{"b", hints.TypeHint, "VeryLon…"},
	})
	for _, h := range got {
		if n := len([]rune(h.Label)); n > cfg.MaxLength {
			t.Fatalf("label %q has %d runes, budget is %d", h.Label, n, cfg.MaxLength)
		}
	}
}

const mixedFixture = `
fn mul(lhs: i32, rhs_val: i32) -> i32 {
    lhs
}

fn main() {
    let v = repeat(1)
        .take(2);
    let w = mul(3, 4);
}
`

func allKinds() hints.Config {
	return hints.Config{
		TypeHints:      true,
		ParameterHints: true,
		ChainingHints:  true,
		ObviousParams:  hints.DefaultObviousParams(),
	}
}

func TestIdempotence(t *testing.T) {
	_, first := analyze(t, mixedFixture, allKinds())
	_, second := analyze(t, mixedFixture, allKinds())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different hints:\n%v\n%v", first, second)
	}
}

func TestConfigTogglesAreIndependent(t *testing.T) {
	_, all := analyze(t, mixedFixture, allKinds())

	toggles := []struct {
		name string
		off  hints.Kind
		cfg  hints.Config
	}{
		{"types", hints.TypeHint, hints.Config{ParameterHints: true, ChainingHints: true, ObviousParams: hints.DefaultObviousParams()}},
		{"params", hints.ParameterHint, hints.Config{TypeHints: true, ChainingHints: true, ObviousParams: hints.DefaultObviousParams()}},
		{"chaining", hints.ChainingHint, hints.Config{TypeHints: true, ParameterHints: true, ObviousParams: hints.DefaultObviousParams()}},
	}
	for _, tc := range toggles {
		_, got := analyze(t, mixedFixture, tc.cfg)
		var want []hints.Hint
		for _, h := range all {
			if h.Kind != tc.off {
				want = append(want, h)
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("toggle %s: got %v, want %v", tc.name, got, want)
		}
	}
}

func TestDisabledConfigProducesNothing(t *testing.T) {
	_, got := analyze(t, mixedFixture, hints.Config{})
	if len(got) != 0 {
		t.Fatalf("zero config produced %d hints", len(got))
	}
}
