package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/lumipallolabs/diskviz/internal/model"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// jsonNode is the JSON form of a tree node. Children are sorted by size.
type jsonNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Size     int64      `json:"size"`
	Dir      bool       `json:"dir,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

type jsonReport struct {
	Root     jsonNode           `json:"root"`
	Progress model.ScanProgress `json:"progress"`
	Elapsed  string             `json:"elapsed"`
}

func toJSONNode(n *model.Node) jsonNode {
	out := jsonNode{Name: n.Name, Path: n.Path, Size: n.TotalSize(), Dir: n.IsDir}
	for _, child := range model.Sorted(n) {
		out.Children = append(out.Children, toJSONNode(child))
	}
	return out
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *Report, writer io.Writer) error {
	data, err := json.MarshalIndent(jsonReport{
		Root:     toJSONNode(report.Root),
		Progress: report.Progress,
		Elapsed:  report.Elapsed.String(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the tree in human-readable table format, showing at
// most top rows per directory.
func PrintTable(report *Report, top int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	root := report.Root
	total := root.TotalSize()

	fmt.Fprintf(w, "%s\t%s\t\n", root.Path, humanize.IBytes(uint64(total)))
	printChildren(w, root, total, top, 1)

	files, dirs := root.Count()
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Directories scanned:\t%d\n", report.Progress.TotalDirs)
	fmt.Fprintf(w, "Entries listed:\t%d files, %d directories\n", files, dirs)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(uint64(total)), total)
	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}

func printChildren(w io.Writer, n *model.Node, total int64, top, level int) {
	rows := model.Sorted(n)
	indent := strings.Repeat("  ", level)

	shown := rows
	if top > 0 && len(rows) > top {
		shown = rows[:top]
	}

	for _, child := range shown {
		pct := 0.0
		if total > 0 {
			pct = 100.0 * float64(child.TotalSize()) / float64(total)
		}
		name := child.Name
		if child.IsDir {
			name += "/"
		}
		fmt.Fprintf(w, "%s%s\t%s\t(%.1f%%)\n", indent, name, humanize.IBytes(uint64(child.TotalSize())), pct)
		if child.IsDir {
			printChildren(w, child, total, top, level+1)
		}
	}

	if hidden := len(rows) - len(shown); hidden > 0 {
		var size int64
		for _, r := range rows[len(shown):] {
			size += r.TotalSize()
		}
		fmt.Fprintf(w, "%s… %d more\t%s\t\n", indent, hidden, humanize.IBytes(uint64(size)))
	}
}
