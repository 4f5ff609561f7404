package ui_test

import (
	"testing"

	"rill/internal/hints"
	"rill/internal/source"
	"rill/internal/ui"
)

func TestAnnotatePlain(t *testing.T) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("demo.rl", []byte("let test = scale(33);\n"))
	file := fileSet.Get(id)

	hintList := []hints.Hint{
		{Range: source.Span{File: id, Start: 4, End: 8}, Kind: hints.TypeHint, Label: "i32"},
		{Range: source.Span{File: id, Start: 17, End: 19}, Kind: hints.ParameterHint, Label: "factor"},
	}

	got := ui.Annotate(file, hintList, false)
	want := "1 │ let test: i32 = scale(factor: 33);\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnnotateChainingMarker(t *testing.T) {
	fileSet := source.NewFileSet()
	src := "repeat(1)\n    .take(2);\n"
	id := fileSet.AddVirtual("chain.rl", []byte(src))
	file := fileSet.Get(id)

	hintList := []hints.Hint{
		{Range: source.Span{File: id, Start: 0, End: 9}, Kind: hints.ChainingHint, Label: "Repeat<i32>"},
	}
	got := ui.Annotate(file, hintList, false)
	want := "1 │ repeat(1) ‹Repeat<i32>›\n2 │     .take(2);\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHintLine(t *testing.T) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("pos.rl", []byte("let a = 1;\nlet b = 2;\n"))
	file := fileSet.Get(id)

	h := hints.Hint{
		Range: source.Span{File: id, Start: 15, End: 16},
		Kind:  hints.TypeHint,
		Label: "i32",
	}
	if got := ui.HintLine(file, h); got != "pos.rl:2:5\ttype\ti32" {
		t.Fatalf("got %q", got)
	}
}
