package model

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned by Verify when a directory's size is not the
// sum of its children
var ErrSizeMismatch = errors.New("directory size does not match children")

// Node represents a file or directory in the scanned tree
type Node struct {
	Path     string
	Name     string
	Size     int64 // own length for files, sum of children for dirs
	IsDir    bool
	Children []*Node
}

// TotalSize returns the cumulative size in bytes
func (n *Node) TotalSize() int64 {
	return n.Size
}

// ComputeSizes sets every directory's size to the sum of its children and
// returns the size of n. Directories without children keep size zero.
func (n *Node) ComputeSizes() int64 {
	if !n.IsDir {
		return n.Size
	}
	var total int64
	for _, child := range n.Children {
		total += child.ComputeSizes()
	}
	n.Size = total
	return total
}

// Walk visits n and all its descendants depth-first, parents before
// children. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns the node with the given path, or nil
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Path == path {
			found = node
			return false
		}
		return true
	})
	return found
}

// Count returns the number of files and directories below n, excluding n
func (n *Node) Count() (files, dirs int) {
	for _, child := range n.Children {
		if child.IsDir {
			dirs++
		} else {
			files++
		}
		f, d := child.Count()
		files += f
		dirs += d
	}
	return files, dirs
}

// Verify checks that every directory below n with children has a size equal
// to the sum of its children. The root is checked only when checkRoot is
// set, since a truncated tree's root also carries bytes from dropped levels.
func (n *Node) Verify(checkRoot bool) error {
	var err error
	n.Walk(func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		if !node.IsDir || len(node.Children) == 0 || (depth == 0 && !checkRoot) {
			return true
		}
		var sum int64
		for _, child := range node.Children {
			sum += child.Size
		}
		if sum != node.Size {
			err = fmt.Errorf("%w: %s has %d, children sum to %d", ErrSizeMismatch, node.Path, node.Size, sum)
			return false
		}
		return true
	})
	return err
}
