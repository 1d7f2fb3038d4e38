package model

// Change describes how one path differs between two scans of the same root
type Change struct {
	PrevSize int64
	Size     int64
	New      bool // present now, absent before
	Removed  bool // present before, absent now
}

// Delta returns the size difference, positive when the entry grew
func (c Change) Delta() int64 {
	return c.Size - c.PrevSize
}

// Changes maps a path to its change between two scans. Unchanged paths are
// left out.
type Changes map[string]Change

// Diff compares the current scan against a previous one by path. A nil
// previous tree marks every entry as new.
func Diff(previous, current *Node) Changes {
	changes := make(Changes)
	if current == nil {
		return changes
	}

	// Build lookup map of previous nodes by path
	prevMap := make(map[string]*Node)
	if previous != nil {
		buildPathMap(previous, prevMap)
	}

	current.Walk(func(node *Node, _ int) bool {
		prev, exists := prevMap[node.Path]
		switch {
		case !exists:
			changes[node.Path] = Change{Size: node.TotalSize(), New: true}
		case prev.TotalSize() != node.TotalSize():
			changes[node.Path] = Change{PrevSize: prev.TotalSize(), Size: node.TotalSize()}
		}
		delete(prevMap, node.Path)
		return true
	})

	// Whatever is left in the map is gone
	for path, prev := range prevMap {
		changes[path] = Change{PrevSize: prev.TotalSize(), Removed: true}
	}
	return changes
}

func buildPathMap(node *Node, m map[string]*Node) {
	m[node.Path] = node
	for _, child := range node.Children {
		buildPathMap(child, m)
	}
}

// Grew reports whether path or anything below it in current grew or appeared
func (c Changes) Grew(node *Node) bool {
	grew := false
	node.Walk(func(n *Node, _ int) bool {
		if ch, ok := c[n.Path]; ok && (ch.New || ch.Delta() > 0) {
			grew = true
		}
		return !grew
	})
	return grew
}
