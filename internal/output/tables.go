package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/swaysplit/internal/models"
	"github.com/yourusername/swaysplit/internal/split"
)

// PrintCommandResults prints one row per subcommand of a RUN_COMMAND reply
func PrintCommandResults(command string, results []models.CommandResult) {
	subcommands := splitSubcommands(command)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Command", "Success", "Error")

	for i, r := range results {
		sub := "-"
		if i < len(subcommands) {
			sub = truncate(subcommands[i], 40)
		}

		success := "yes"
		if !r.Success {
			success = "no"
			if r.ParseError {
				success = "no (parse)"
			}
		}

		errMsg := r.Error
		if errMsg == "" {
			errMsg = "-"
		}

		table.Append(
			fmt.Sprintf("%d", i),
			sub,
			success,
			truncate(errMsg, 50),
		)
	}

	table.Render()
}

// PrintFocused prints the focused node's geometry and the split that would be used
func PrintFocused(node *models.Node, orientation split.Orientation) {
	if node == nil {
		fmt.Println("No focused node found")
		fmt.Printf("Split: %s\n", orientation)
		return
	}

	width, height := node.Size()
	fmt.Printf("Node ID: %d\n", node.ID)
	fmt.Printf("Type: %s\n", node.Type)
	if name := node.GetName(); name != "" {
		fmt.Printf("Name: %s\n", name)
	}
	if appID := node.GetAppID(); appID != "" {
		fmt.Printf("App ID: %s\n", appID)
	}
	fmt.Printf("Size: %dx%d\n", width, height)
	fmt.Printf("Frame: %s\n", node.FormatRect())
	fmt.Printf("Split: %s\n", orientation)
}

// Helper functions

// splitSubcommands mirrors how the compositor numbers results: one per
// ';' or ',' separated subcommand, quoted separators excluded.
func splitSubcommands(command string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
	)

	for _, r := range command {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ';' || r == ',':
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		parts = append(parts, last)
	}
	return parts
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
