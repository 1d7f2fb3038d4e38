package scanner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/diskviz/internal/workpool"
)

func fixtureEntries(root string) []Entry {
	p := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}
	return []Entry{
		{Path: root, Name: filepath.Base(root), Kind: KindDir},
		{Path: p("a.txt"), Name: "a.txt", Kind: KindFile, Size: 10},
		{Path: p("B"), Name: "B", Kind: KindDir},
		{Path: p("B", "b.txt"), Name: "b.txt", Kind: KindFile, Size: 20},
		{Path: p("B", "C"), Name: "C", Kind: KindDir},
		{Path: p("B", "C", "c.txt"), Name: "c.txt", Kind: KindFile, Size: 30},
		{Path: p("E"), Name: "E", Kind: KindDir}, // empty
	}
}

func TestAggregateDepthOne(t *testing.T) {
	root := filepath.FromSlash("/r")
	tree := Aggregate(root, fixtureEntries(root), 1)

	if tree.Size != 60 {
		t.Errorf("expected 60, got %d", tree.Size)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected a.txt and B, got %d children", len(tree.Children))
	}
	b := childByName(tree, "B")
	if b == nil || b.Size != 20 || len(b.Children) != 1 {
		t.Errorf("expected B=20 with one child, got %+v", b)
	}
	if childByName(tree, "E") != nil {
		t.Error("directories without files must not appear")
	}
}

func TestAggregateUnlimited(t *testing.T) {
	root := filepath.FromSlash("/r")
	tree := Aggregate(root, fixtureEntries(root), 0)

	b := childByName(tree, "B")
	if b == nil || b.Size != 50 || len(b.Children) != 2 {
		t.Fatalf("expected B=50 with b.txt and C, got %+v", b)
	}
	if err := tree.Verify(true); err != nil {
		t.Errorf("unlimited tree must be fully consistent: %v", err)
	}
}

func TestAggregateSynthesizesAncestors(t *testing.T) {
	root := filepath.FromSlash("/r")
	entries := []Entry{
		{Path: filepath.Join(root, "x", "y", "f"), Name: "f", Kind: KindFile, Size: 4},
	}

	tree := Aggregate(root, entries, 2)
	x := childByName(tree, "x")
	if x == nil || x.Size != 4 {
		t.Fatalf("expected synthesized x of 4 bytes, got %+v", x)
	}
	y := childByName(x, "y")
	if y == nil || y.Path != filepath.Join(root, "x", "y") {
		t.Errorf("expected y under x, got %+v", y)
	}
}

func TestAggregateIgnoresOutsideRoot(t *testing.T) {
	root := filepath.FromSlash("/r")
	entries := []Entry{
		{Path: filepath.FromSlash("/elsewhere/f"), Name: "f", Kind: KindFile, Size: 9},
	}
	tree := Aggregate(root, entries, 0)
	if len(tree.Children) != 0 {
		t.Errorf("outside entry attached: %d children", len(tree.Children))
	}
}

func TestAggregateEmpty(t *testing.T) {
	tree := Aggregate(filepath.FromSlash("/r"), nil, 1)
	if tree.Size != 0 || len(tree.Children) != 0 || !tree.IsDir {
		t.Errorf("expected empty dir node, got %+v", tree)
	}
	if tree.Name != "r" {
		t.Errorf("expected name r, got %s", tree.Name)
	}
}

func TestTotals(t *testing.T) {
	root := filepath.FromSlash("/r")
	entries := fixtureEntries(root)

	for _, workers := range []int{1, 2, 3, 16} {
		dirs, bytes, err := Totals(context.Background(), workpool.New(workers), entries)
		if err != nil {
			t.Fatalf("workers %d: %v", workers, err)
		}
		if dirs != 4 || bytes != 60 {
			t.Errorf("workers %d: expected 4 dirs and 60 bytes, got %d and %d", workers, dirs, bytes)
		}
	}

	dirs, bytes, err := Totals(context.Background(), workpool.New(4), nil)
	if err != nil || dirs != 0 || bytes != 0 {
		t.Errorf("expected zero totals for no entries, got %d %d %v", dirs, bytes, err)
	}
}

func TestLevelBelow(t *testing.T) {
	root := filepath.FromSlash("/r")
	cases := []struct {
		path  string
		level int
		ok    bool
	}{
		{"/r", 0, true},
		{"/r/a", 1, true},
		{"/r/a/b", 2, true},
		{"/other", 0, false},
		{"/r2", 0, false},
	}
	for _, c := range cases {
		level, ok := levelBelow(root, filepath.FromSlash(c.path))
		if level != c.level || ok != c.ok {
			t.Errorf("levelBelow(%s) = %d, %v; want %d, %v", c.path, level, ok, c.level, c.ok)
		}
	}
}
