package model

import "sort"

// SortBySize sorts nodes by total size descending, then by name ascending
func SortBySize(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		si, sj := nodes[i].TotalSize(), nodes[j].TotalSize()
		if si != sj {
			return si > sj
		}
		return nodes[i].Name < nodes[j].Name
	})
}

// Sorted returns a copy of n's children in SortBySize order, leaving the
// tree itself untouched
func Sorted(n *Node) []*Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	nodes := make([]*Node, len(n.Children))
	copy(nodes, n.Children)
	SortBySize(nodes)
	return nodes
}
