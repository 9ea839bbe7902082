package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rbcheck/pkg/rbtree"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints canvas statistics on a single line.
func printStats(nodeCount, edgeCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// =============================================================================
// Verification Output
// =============================================================================

// flagTable renders every state flag of a verification run as a table.
func flagTable(st verify.State) string {
	rows := [][]string{
		{"exceedsMaxEdgeCount", yesNo(st.ExceedsMaxEdgeCount)},
		{"hasCycle", yesNo(st.HasCycle)},
		{"badOrder", yesNo(st.BadOrder)},
		{"sameLabel", yesNo(st.SameLabel)},
		{"redHasRedChildren", yesNo(st.RedHasRedChildren)},
		{"missingLabel", yesNo(st.MissingLabel)},
		{"disconnected", yesNo(st.Disconnected)},
		{"blackHeightGood", yesNo(st.BlackHeightGood)},
		{"visited", strconv.Itoa(st.NumVisited)},
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Flag", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			bad := rows[row][1] == "yes" && rows[row][0] != "blackHeightGood"
			if bad {
				return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printResult prints the outcome of a verification run.
func printResult(res verify.Result) {
	if res.OK() {
		printSuccess("%s", res.Message())
		if res.Reason == verify.Valid {
			printKeyValue("black height", StyleNumber.Render(strconv.Itoa(res.BlackHeight)))
			printKeyValue("in order", fmt.Sprint(res.Tree.InOrderLabels()))
		}
		return
	}
	printError("%s", res.Message())
	if res.Stage != "" {
		printDetail("failed at %s stage", res.Stage)
	}
	if flags := res.State.Flags(); len(flags) > 0 {
		printDetail("flags: %s", strings.Join(flags, ", "))
	}
}

// =============================================================================
// Tree Drawing
// =============================================================================

var (
	styleRedNode   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleBlackNode = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleMarked    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Underline(true)
)

// drawTree renders a linked tree sideways, right subtree on top, one node
// per line. The node at index mark is underlined; pass rbtree.None for none.
func drawTree(t *rbtree.Tree, mark int) string {
	if t.IsEmpty() {
		return StyleDim.Render("(empty)")
	}
	var lines []string
	var walk func(idx int, prefix string, upper, root bool)
	walk = func(idx int, prefix string, upper, root bool) {
		n := t.Nodes[idx]
		above, below, connector := prefix+"│   ", prefix+"    ", "└── "
		if upper {
			above, below, connector = prefix+"    ", prefix+"│   ", "┌── "
		}
		if root {
			above, below, connector = "", "", ""
		}
		if n.Right != rbtree.None {
			walk(n.Right, above, true, false)
		}
		lines = append(lines, StyleDim.Render(prefix+connector)+nodeText(n, idx == mark))
		if n.Left != rbtree.None {
			walk(n.Left, below, false, false)
		}
	}
	walk(t.Root, "", false, true)
	return strings.Join(lines, "\n")
}

func nodeText(n rbtree.Node, marked bool) string {
	text := strconv.Itoa(n.Label)
	if n.Black {
		text += "b"
	} else {
		text += "r"
	}
	switch {
	case marked:
		return styleMarked.Render(text)
	case n.Black:
		return styleBlackNode.Render(text)
	default:
		return styleRedNode.Render(text)
	}
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
