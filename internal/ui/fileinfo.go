package ui

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/diskviz/internal/logging"
	"github.com/lumipallolabs/diskviz/internal/model"
)

// describe returns the detail line for the selected node. Files are sniffed
// for their content type.
func describe(node *model.Node, total int64) string {
	if node == nil {
		return ""
	}

	share := fmt.Sprintf("%.1f%%", percent(node.TotalSize(), total))
	if node.IsDir {
		files, dirs := node.Count()
		return fmt.Sprintf("%s  %s  %s  %d files, %d folders", node.Path, FormatSize(node.TotalSize()), share, files, dirs)
	}

	kind := "unknown"
	if mt, err := mimetype.DetectFile(node.Path); err == nil {
		kind = mt.String()
	} else {
		logging.UI.Printf("mimetype %s: %v", node.Path, err)
	}
	return fmt.Sprintf("%s  %s  %s  %s", node.Path, FormatSize(node.Size), share, kind)
}
