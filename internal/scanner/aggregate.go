package scanner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/diskviz/internal/model"
	"github.com/lumipallolabs/diskviz/internal/workpool"
)

// Totals counts directory entries and sums file sizes. The entry slice is
// split into one chunk per worker and the partial results are added up once
// every chunk is done, so the totals do not depend on pool size or scheduling.
func Totals(ctx context.Context, pool *workpool.Pool, entries []Entry) (dirs, bytes uint64, err error) {
	chunks := pool.Chunks(len(entries))
	partialDirs := make([]uint64, len(chunks))
	partialBytes := make([]uint64, len(chunks))

	err = pool.Run(ctx, len(chunks), func(_ context.Context, i int) error {
		var d, b uint64
		for _, e := range entries[chunks[i][0]:chunks[i][1]] {
			switch e.Kind {
			case KindDir:
				d++
			case KindFile:
				b += uint64(e.Size)
			}
		}
		partialDirs[i] = d
		partialBytes[i] = b
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	for i := range chunks {
		dirs += partialDirs[i]
		bytes += partialBytes[i]
	}
	return dirs, bytes, nil
}

// Aggregate builds the size tree for root from a flat entry list.
//
// Files are grouped by parent directory. A group is attached when its parent
// lies at most depth levels below root: files directly under root become root
// children, and each deeper group hangs off a synthesized directory node
// (created along with any missing ancestors). Groups below depth are left out
// of the tree. depth <= 0 attaches everything.
//
// Every attached directory's size is the sum of its attached children. The
// root's size is always the sum of all file entries, attached or not.
func Aggregate(root string, entries []Entry, depth int) *model.Node {
	root = filepath.Clean(root)
	rootNode := &model.Node{
		Path:  root,
		Name:  filepath.Base(root),
		IsDir: true,
	}

	groups := make(map[string][]Entry)
	for _, e := range entries {
		if e.Kind != KindFile {
			continue
		}
		parent := filepath.Dir(e.Path)
		groups[parent] = append(groups[parent], e)
	}

	dirs := map[string]*model.Node{root: rootNode}
	var ensureDir func(path string) *model.Node
	ensureDir = func(path string) *model.Node {
		if n, ok := dirs[path]; ok {
			return n
		}
		parent := ensureDir(filepath.Dir(path))
		n := &model.Node{
			Path:  path,
			Name:  filepath.Base(path),
			IsDir: true,
		}
		parent.Children = append(parent.Children, n)
		dirs[path] = n
		return n
	}

	var total int64
	for parent, files := range groups {
		for _, f := range files {
			total += f.Size
		}

		level, ok := levelBelow(root, parent)
		if !ok || (depth > 0 && level > depth) {
			continue
		}

		dir := ensureDir(parent)
		for _, f := range files {
			dir.Children = append(dir.Children, &model.Node{
				Path: f.Path,
				Name: f.Name,
				Size: f.Size,
			})
		}
	}

	rootNode.ComputeSizes()
	rootNode.Size = total
	return rootNode
}

// levelBelow returns how many directory levels path lies below root, with
// root itself at level zero. ok is false when path is outside root.
func levelBelow(root, path string) (level int, ok bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0, false
	}
	if rel == "." {
		return 0, true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0, false
	}
	return strings.Count(rel, string(filepath.Separator)) + 1, true
}
