package model

import (
	"errors"
	"runtime"
	"testing"
)

func sampleTree() *Node {
	return &Node{
		Path:  "/r",
		Name:  "r",
		IsDir: true,
		Children: []*Node{
			{Path: "/r/a.txt", Name: "a.txt", Size: 10},
			{
				Path:  "/r/B",
				Name:  "B",
				IsDir: true,
				Children: []*Node{
					{Path: "/r/B/b.txt", Name: "b.txt", Size: 20},
				},
			},
		},
	}
}

func TestNodeSize(t *testing.T) {
	child1 := &Node{Name: "file1.txt", Size: 100, IsDir: false}
	child2 := &Node{Name: "file2.txt", Size: 200, IsDir: false}
	parent := &Node{
		Name:     "folder",
		IsDir:    true,
		Children: []*Node{child1, child2},
	}

	parent.ComputeSizes()

	if parent.TotalSize() != 300 {
		t.Errorf("expected 300, got %d", parent.TotalSize())
	}
}

func TestComputeSizesNested(t *testing.T) {
	root := sampleTree()
	if got := root.ComputeSizes(); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if b := root.Find("/r/B"); b == nil || b.Size != 20 {
		t.Errorf("expected B to be 20, got %+v", b)
	}
}

func TestFind(t *testing.T) {
	root := sampleTree()

	if n := root.Find("/r/B/b.txt"); n == nil || n.Name != "b.txt" {
		t.Errorf("expected to find b.txt, got %+v", n)
	}
	if n := root.Find("/r/missing"); n != nil {
		t.Errorf("expected nil for missing path, got %+v", n)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := sampleTree()

	var visited []string
	root.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Name)
		return n.Name != "B"
	})

	want := []string{"r", "a.txt", "B"}
	if len(visited) != len(want) {
		t.Fatalf("expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], visited[i])
		}
	}
}

func TestCount(t *testing.T) {
	files, dirs := sampleTree().Count()
	if files != 2 || dirs != 1 {
		t.Errorf("expected 2 files and 1 dir, got %d and %d", files, dirs)
	}
}

func TestVerify(t *testing.T) {
	root := sampleTree()
	root.ComputeSizes()
	if err := root.Verify(true); err != nil {
		t.Fatalf("expected consistent tree, got %v", err)
	}

	// A truncated root may carry extra bytes
	root.Size += 30
	if err := root.Verify(false); err != nil {
		t.Errorf("root should be exempt, got %v", err)
	}
	if err := root.Verify(true); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}

	root.Find("/r/B").Size = 99
	if err := root.Verify(false); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch for B, got %v", err)
	}
}

func TestSortBySize(t *testing.T) {
	nodes := []*Node{
		{Name: "small", Size: 100},
		{Name: "large", Size: 1000},
		{Name: "medium", Size: 500},
	}

	SortBySize(nodes)

	if nodes[0].Name != "large" {
		t.Errorf("expected 'large' first, got %s", nodes[0].Name)
	}
	if nodes[2].Name != "small" {
		t.Errorf("expected 'small' last, got %s", nodes[2].Name)
	}
}

func TestSortBySizeTiesByName(t *testing.T) {
	nodes := []*Node{
		{Name: "b", Size: 5},
		{Name: "a", Size: 5},
	}
	SortBySize(nodes)
	if nodes[0].Name != "a" {
		t.Errorf("expected 'a' first on tie, got %s", nodes[0].Name)
	}
}

func TestSortedLeavesTreeOrder(t *testing.T) {
	root := sampleTree()
	root.ComputeSizes()

	sorted := Sorted(root)
	if sorted[0].Name != "B" {
		t.Errorf("expected B first in sorted view, got %s", sorted[0].Name)
	}
	if root.Children[0].Name != "a.txt" {
		t.Errorf("tree order changed: first child is %s", root.Children[0].Name)
	}
	if Sorted(&Node{Name: "leaf"}) != nil {
		t.Error("expected nil for childless node")
	}
}

func TestScanProgressFraction(t *testing.T) {
	if f := (ScanProgress{}).Fraction(); f != 1 {
		t.Errorf("empty scan should be complete, got %v", f)
	}
	p := ScanProgress{TotalBytes: 200, ScannedBytes: 50}
	if f := p.Fraction(); f != 0.25 {
		t.Errorf("expected 0.25, got %v", f)
	}
	if p.Complete() {
		t.Error("partial progress reported complete")
	}
}

func TestVolumeUsage(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("volume query only exercised on unix")
	}

	vol, err := VolumeUsage(t.TempDir())
	if err != nil {
		t.Fatalf("VolumeUsage failed: %v", err)
	}
	if vol.TotalBytes <= 0 {
		t.Errorf("expected positive capacity, got %d", vol.TotalBytes)
	}
	if vol.UsedPercent() < 0 || vol.UsedPercent() > 100 {
		t.Errorf("used percent out of range: %.1f", vol.UsedPercent())
	}
}
