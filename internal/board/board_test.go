package board

import (
	"errors"
	"slices"
	"testing"

	"blockfall/pkg/core"
)

func TestCompactColumnScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"gap between blocks", ".R.B", "..RB"},
		{"already settled", "..GR", "..GR"},
		{"all empty", "....", "...."},
		{"all full", "RGBR", "RGBR"},
		{"floating stack", "RG..", "..RG"},
		{"alternating", "B.G.R.", "...BGR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			col, err := ParseColumn(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			b, err := FromColumns([][]Cell{col})
			if err != nil {
				t.Fatal(err)
			}
			b.Compact()
			if got := FormatColumn(b.Column(0)); got != tc.want {
				t.Fatalf("compact %s = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestCompactProperties(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := core.NewRNG(seed)
		chance := float64(seed%11) / 10
		before := Random(DefaultWidth, DefaultHeight, chance, rng)
		after := before.Clone()
		after.Compact()

		if err := Verify(before, after); err != nil {
			t.Fatalf("seed %d: %v\nbefore:\n%s\nafter:\n%s", seed, err, before, after)
		}
		for x := 0; x < before.Width(); x++ {
			if len(after.Column(x)) != len(before.Column(x)) {
				t.Fatalf("seed %d column %d changed length", seed, x)
			}
			if !sameMultiset(before.Colors(x), after.Colors(x)) {
				t.Fatalf("seed %d column %d changed colour multiset", seed, x)
			}
			assertBottomAligned(t, after, x)
		}

		again := after.Clone()
		again.Compact()
		if !again.Equal(after) {
			t.Fatalf("seed %d: compact is not idempotent\nonce:\n%s\ntwice:\n%s", seed, after, again)
		}
	}
}

func TestCompactColumnsIndependent(t *testing.T) {
	b := Random(6, 7, 0.4, core.NewRNG(99))
	whole := b.Clone()
	whole.Compact()

	cols := make([][]Cell, b.Width())
	for x := range cols {
		single, err := FromColumns([][]Cell{b.Column(x)})
		if err != nil {
			t.Fatal(err)
		}
		single.Compact()
		cols[x] = single.Column(0)
	}
	rebuilt, err := FromColumns(cols)
	if err != nil {
		t.Fatal(err)
	}
	if !rebuilt.Equal(whole) {
		t.Fatalf("per-column compaction differs:\n%s\nvs\n%s", rebuilt, whole)
	}

	partial := b.Clone()
	partial.CompactColumn(2)
	for x := 0; x < b.Width(); x++ {
		if x == 2 {
			continue
		}
		if !slices.Equal(partial.Column(x), b.Column(x)) {
			t.Fatalf("compacting column 2 touched column %d", x)
		}
	}
}

func TestRandomDimensionsAndDeterminism(t *testing.T) {
	a := Random(DefaultWidth, DefaultHeight, 0.5, core.NewRNG(42))
	b := Random(DefaultWidth, DefaultHeight, 0.5, core.NewRNG(42))
	if a.Width() != DefaultWidth || a.Height() != DefaultHeight {
		t.Fatalf("got %dx%d, want %dx%d", a.Width(), a.Height(), DefaultWidth, DefaultHeight)
	}
	if !a.Equal(b) {
		t.Fatal("same seed produced different boards")
	}
	c := Random(DefaultWidth, DefaultHeight, 0.5, core.NewRNG(43))
	if a.Equal(c) {
		t.Fatal("different seeds produced identical boards")
	}
}

func TestRandomEmptyChanceBounds(t *testing.T) {
	full := Random(4, 5, 0, core.NewRNG(3))
	empty := Random(4, 5, 1, core.NewRNG(3))
	for x := 0; x < 4; x++ {
		if n := full.Occupied(x); n != 5 {
			t.Fatalf("empty chance 0: column %d has %d blocks, want 5", x, n)
		}
		if n := empty.Occupied(x); n != 0 {
			t.Fatalf("empty chance 1: column %d has %d blocks, want 0", x, n)
		}
	}

	clamped := Random(4, 5, -3, core.NewRNG(3))
	if !clamped.Equal(full) {
		t.Fatal("negative empty chance should behave like 0")
	}
}

func TestRandomUsesEveryColor(t *testing.T) {
	b := Random(16, 16, 0, core.NewRNG(5))
	seen := map[Color]bool{}
	for x := 0; x < b.Width(); x++ {
		for _, c := range b.Colors(x) {
			seen[c] = true
		}
	}
	for _, c := range AllColors {
		if !seen[c] {
			t.Fatalf("colour %s never drawn", c)
		}
	}
}

func TestNewClampsDimensions(t *testing.T) {
	b := New(0, -2)
	if b.Width() != 1 || b.Height() != 1 {
		t.Fatalf("got %dx%d, want 1x1", b.Width(), b.Height())
	}
}

func TestParseAndString(t *testing.T) {
	b, err := Parse(
		"R.",
		"..",
		"GB",
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatColumn(b.Column(0)); got != "R.G" {
		t.Fatalf("column 0 = %s, want R.G", got)
	}
	b.Compact()
	want := "..\nR.\nGB\n"
	if got := b.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	if _, err := Parse("R.", "G"); err == nil {
		t.Fatal("expected ragged rows to fail")
	}
	if _, err := ParseColumn("RX"); err == nil {
		t.Fatal("expected unknown glyph to fail")
	}
}

func TestVerifyReportsViolations(t *testing.T) {
	before, _ := Parse("R", ".", "G")
	reordered, _ := Parse(".", "G", "R")
	floating, _ := Parse("R", "G", ".")
	lost, _ := Parse(".", ".", "G")

	cases := []struct {
		name     string
		after    *Board
		property string
	}{
		{"order", reordered, "order"},
		{"alignment", floating, "alignment"},
		{"occupancy", lost, "occupancy"},
	}
	for _, tc := range cases {
		err := Verify(before, tc.after)
		var ie *InvariantError
		if !errors.As(err, &ie) {
			t.Fatalf("%s: expected InvariantError, got %v", tc.name, err)
		}
		if ie.Property != tc.property || ie.Column != 0 {
			t.Fatalf("%s: got %+v", tc.name, ie)
		}
	}

	wide := New(2, 3)
	if err := Verify(before, wide); err == nil {
		t.Fatal("expected dimension mismatch")
	}
}

func TestBlockColorImmutable(t *testing.T) {
	c := Of(Green)
	blk, ok := c.Block()
	if !ok || blk.Color() != Green {
		t.Fatalf("got %v %v", blk.Color(), ok)
	}
	if (Cell{}).Glyph() != '.' || !(Cell{}).Empty() {
		t.Fatal("zero cell should be empty")
	}
}

func assertBottomAligned(t *testing.T, b *Board, x int) {
	t.Helper()
	n := b.Occupied(x)
	col := b.Column(x)
	for y, c := range col {
		wantEmpty := y < len(col)-n
		if c.Empty() != wantEmpty {
			t.Fatalf("column %d row %d empty=%v, want %v (%s)", x, y, c.Empty(), wantEmpty, FormatColumn(col))
		}
	}
}

func sameMultiset(a, b []Color) bool {
	a = slices.Clone(a)
	b = slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
