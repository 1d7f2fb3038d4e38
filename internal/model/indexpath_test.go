package model

import "testing"

func TestIndexPathResolve(t *testing.T) {
	root := sampleTree()

	if n := (IndexPath{}).Resolve(root); n != root {
		t.Error("empty path should resolve to root")
	}
	if n := (IndexPath{1, 0}).Resolve(root); n == nil || n.Name != "b.txt" {
		t.Errorf("expected b.txt, got %+v", n)
	}
	if n := (IndexPath{1, 5}).Resolve(root); n != nil {
		t.Errorf("expected nil for out-of-range index, got %+v", n)
	}
	if n := (IndexPath{0, 0}).Resolve(root); n != nil {
		t.Errorf("file has no children, got %+v", n)
	}
	if n := (IndexPath{-1}).Resolve(root); n != nil {
		t.Errorf("expected nil for negative index, got %+v", n)
	}
}

func TestIndexPathSurvivesTreeReplacement(t *testing.T) {
	old := sampleTree()
	path := IndexPath{1, 0}
	if path.Resolve(old) == nil {
		t.Fatal("path should resolve on original tree")
	}

	replacement := &Node{Path: "/r", Name: "r", IsDir: true}
	if n := path.Resolve(replacement); n != nil {
		t.Errorf("expected nil against replaced tree, got %+v", n)
	}
}

func TestIndexPathChildParent(t *testing.T) {
	p := IndexPath{}.Child(1)
	q := p.Child(0)

	if q.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", q.Depth())
	}
	if p.Depth() != 1 {
		t.Errorf("Child must not modify receiver, depth %d", p.Depth())
	}

	up := q.Parent()
	if up.Depth() != 1 || up[0] != 1 {
		t.Errorf("expected [1], got %v", up)
	}

	// Appending to a parent must not clobber the original path
	sibling := up.Child(7)
	if q[1] != 0 {
		t.Errorf("parent aliasing overwrote child path: %v", q)
	}
	if sibling[1] != 7 {
		t.Errorf("expected sibling [1 7], got %v", sibling)
	}

	if root := (IndexPath{}).Parent(); root.Depth() != 0 {
		t.Errorf("root parent should stay root, got %v", root)
	}
}

func TestIndexPathTrail(t *testing.T) {
	root := sampleTree()

	trail := IndexPath{1, 0}.Trail(root)
	if len(trail) != 3 || trail[2].Name != "b.txt" {
		t.Fatalf("unexpected trail %v", trail)
	}

	trail = IndexPath{1, 9}.Trail(root)
	if len(trail) != 2 || trail[1].Name != "B" {
		t.Errorf("trail should stop at last valid step, got %d entries", len(trail))
	}

	if (IndexPath{}).Trail(nil) != nil {
		t.Error("expected nil trail for nil root")
	}
}

func TestIndexOf(t *testing.T) {
	root := sampleTree()
	b := root.Children[1]
	if i := IndexOf(root, b); i != 1 {
		t.Errorf("expected 1, got %d", i)
	}
	if i := IndexOf(root, &Node{}); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
	if i := IndexOf(nil, b); i != -1 {
		t.Errorf("expected -1 for nil parent, got %d", i)
	}
}
