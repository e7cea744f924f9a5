package common

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth = 80
	WideWidth    = 100

	statBarCells = 10
)

func printRule(char string, width int, leadingNewline bool) {
	line := strings.Repeat(char, width)
	if leadingNewline {
		line = "\n" + line
	}
	fmt.Println(line)
}

// PrintHeader prints a report title between two rules
func PrintHeader(title string, width int) {
	printRule("=", width, true)
	fmt.Println(title)
	printRule("=", width, false)
}

// PrintFooter prints a summary line between two rules
func PrintFooter(message string, width int) {
	printRule("=", width, true)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints the divider under a saver's box header
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the box-drawing prefix for a list item
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under a list item
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// ShortId truncates long identifiers for tabular output.
func ShortId(id string) string {
	if id == "" {
		return "none"
	}
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

// StatBar renders a 0-100 stat as a ten-cell gauge, e.g. "█████░░░░░  50".
func StatBar(value int) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * statBarCells / 100
	return fmt.Sprintf("%s%s %3d", strings.Repeat("█", filled), strings.Repeat("░", statBarCells-filled), value)
}
