package syntax

import (
	"errors"
	"testing"
)

func TestDescriptorAccessorsFollowKind(t *testing.T) {
	pair := Pair{Start: "/*", End: "*/"}

	if d := NoComments(); d.Kind() != None || d.Markers() != nil || d.Pairs() != nil {
		t.Fatalf("unexpected none descriptor: %+v", d)
	}
	if d := Line("#"); d.Kind() != LineOnly || len(d.Markers()) != 1 || d.Pairs() != nil {
		t.Fatalf("unexpected line descriptor: %+v", d)
	}
	if d := Block(pair); d.Kind() != BlockOnly || d.Markers() != nil || len(d.Pairs()) != 1 {
		t.Fatalf("unexpected block descriptor: %+v", d)
	}
	d := LineAndBlockOf([]string{"//"}, []Pair{pair})
	if d.Kind() != LineAndBlock || len(d.Markers()) != 1 || len(d.Pairs()) != 1 {
		t.Fatalf("unexpected line+block descriptor: %+v", d)
	}
	if d.String() != "//  /* */" {
		t.Fatalf("unexpected string form %q", d.String())
	}

	var zero Descriptor
	if zero.Kind() != None {
		t.Fatalf("zero descriptor should be None")
	}
}

func TestDescriptorValidate(t *testing.T) {
	valid := []Descriptor{
		NoComments(),
		Line("#", "//"),
		Block(Pair{Start: "<!--", End: "-->"}),
		LineAndBlockOf([]string{"--"}, []Pair{{Start: "{-", End: "-}"}}),
	}
	for _, d := range valid {
		if err := d.Validate(); err != nil {
			t.Fatalf("expected %s to be valid: %v", d, err)
		}
	}

	invalid := []Descriptor{
		Line(),
		Line(""),
		Block(),
		Block(Pair{Start: "/*"}),
		LineAndBlockOf([]string{"#"}, nil),
	}
	for _, d := range invalid {
		if err := d.Validate(); !errors.Is(err, ErrEmptyRule) {
			t.Fatalf("expected ErrEmptyRule for %+v, got %v", d, err)
		}
	}
}
