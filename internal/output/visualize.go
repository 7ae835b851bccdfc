package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yourusername/swaysplit/internal/models"
	"golang.org/x/sys/unix"
)

// TreeOptions controls the appearance of the tree rendering
type TreeOptions struct {
	UseUnicode bool
	ShowIDs    bool
	ShowRects  bool
	MaxWidth   int
}

// DefaultTreeOptions returns sensible defaults
func DefaultTreeOptions() TreeOptions {
	width, _ := getTerminalSize()
	return TreeOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		ShowRects:  true,
		MaxWidth:   width,
	}
}

type branchSet struct {
	tee, last, pipe, blank string
}

var (
	unicodeBranches = branchSet{tee: "├── ", last: "└── ", pipe: "│   ", blank: "    "}
	asciiBranches   = branchSet{tee: "|-- ", last: "`-- ", pipe: "|   ", blank: "    "}
)

// RenderTree renders the tiling tree, one node per line. The line of the
// focused node (as found by models.FindFocused) is prefixed with "*".
func RenderTree(root *models.Node, opts TreeOptions) string {
	if root == nil {
		return "(empty tree)\n"
	}

	branches := asciiBranches
	if opts.UseUnicode {
		branches = unicodeBranches
	}

	focused := models.FindFocused(root)
	var b strings.Builder
	renderNode(&b, root, focused, "", "", branches, opts)
	return b.String()
}

func renderNode(b *strings.Builder, n, focused *models.Node, prefix, branch string, branches branchSet, opts TreeOptions) {
	marker := "  "
	if n == focused {
		marker = "* "
	}

	line := marker + prefix + branch + createNodeLabel(n, opts)
	if opts.MaxWidth > 0 {
		line = truncate(line, opts.MaxWidth)
	}
	b.WriteString(line)
	b.WriteString("\n")

	childPrefix := prefix
	switch branch {
	case branches.tee:
		childPrefix += branches.pipe
	case branches.last:
		childPrefix += branches.blank
	}

	for i, child := range n.Nodes {
		next := branches.tee
		if i == len(n.Nodes)-1 {
			next = branches.last
		}
		renderNode(b, child, focused, childPrefix, next, branches, opts)
	}
}

// createNodeLabel creates a label for a node
func createNodeLabel(n *models.Node, opts TreeOptions) string {
	parts := make([]string, 0, 5)

	if opts.ShowIDs {
		parts = append(parts, fmt.Sprintf("[%d]", n.ID))
	}

	kind := n.Type
	if kind == "" {
		kind = "node"
	}
	if n.Layout != "" && n.Layout != "none" {
		kind = fmt.Sprintf("%s/%s", kind, n.Layout)
	}
	parts = append(parts, kind)

	if appID := n.GetAppID(); appID != "" {
		parts = append(parts, appID)
	}
	if name := n.GetName(); name != "" {
		parts = append(parts, fmt.Sprintf("%q", name))
	}
	if opts.ShowRects && n.Rect != nil {
		parts = append(parts, fmt.Sprintf("(%dx%d)", n.Rect.Width, n.Rect.Height))
	}

	return strings.Join(parts, " ")
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	// Check LANG and LC_ALL environment variables
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintTree prints the tree to stdout, focused line highlighted
func PrintTree(root *models.Node, opts TreeOptions) {
	result := RenderTree(root, opts)

	if color.NoColor {
		fmt.Print(result)
		return
	}

	focusedColor := color.New(color.FgGreen, color.Bold)
	for _, line := range strings.SplitAfter(result, "\n") {
		if strings.HasPrefix(line, "* ") {
			focusedColor.Print(line)
		} else {
			fmt.Print(line)
		}
	}
}
