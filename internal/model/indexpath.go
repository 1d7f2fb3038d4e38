package model

// IndexPath locates a node as the sequence of child indices leading to it
// from the root. An empty path is the root itself.
//
// Indices refer to the tree's own Children order, not any sorted view, so a
// path stays valid for as long as the tree it was built against is current.
// Resolving a path against a replaced tree yields nil instead of a stale node.
type IndexPath []int

// Resolve returns the node this path points to, or nil if any step is out of
// range for root
func (p IndexPath) Resolve(root *Node) *Node {
	node := root
	for _, idx := range p {
		if node == nil || idx < 0 || idx >= len(node.Children) {
			return nil
		}
		node = node.Children[idx]
	}
	return node
}

// Child returns a new path extended by idx
func (p IndexPath) Child(idx int) IndexPath {
	next := make(IndexPath, len(p)+1)
	copy(next, p)
	next[len(p)] = idx
	return next
}

// Parent returns the path one level up. The root's parent is the root.
func (p IndexPath) Parent() IndexPath {
	if len(p) == 0 {
		return p
	}
	return p[: len(p)-1 : len(p)-1]
}

// Depth returns how many levels below the root the path points
func (p IndexPath) Depth() int {
	return len(p)
}

// Trail resolves every prefix of the path, root first. It stops at the first
// step that no longer resolves.
func (p IndexPath) Trail(root *Node) []*Node {
	if root == nil {
		return nil
	}
	trail := []*Node{root}
	node := root
	for _, idx := range p {
		if idx < 0 || idx >= len(node.Children) {
			break
		}
		node = node.Children[idx]
		trail = append(trail, node)
	}
	return trail
}

// IndexOf returns the position of child within parent's Children, or -1
func IndexOf(parent, child *Node) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}
