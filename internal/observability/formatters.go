// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/filebridge/internal/files"
	"github.com/jonathan/filebridge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to maxItemsToShow items under a heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintLoadResult outputs the loaded paths and the reasons any were left out.
func (p *Printer) PrintLoadResult(result *types.LoadResult) {
	if result == nil {
		return
	}

	loaded := result.Files.Paths()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Loaded: %d\n", len(loaded)))
	sb.WriteString(fmt.Sprintf("Failed: %d\n", len(result.Failures)))

	if len(loaded) > 0 {
		sb.WriteString("\n")
		items := make([]string, len(loaded))
		for i, path := range loaded {
			file, _ := result.Files.Get(path)
			items[i] = fmt.Sprintf("%s (%d bytes)", path, len(file.Content))
		}
		writeList(&sb, "Files", items)
	}

	if len(result.Failures) > 0 {
		sb.WriteString("\n")
		items := make([]string, len(result.Failures))
		for i, f := range result.Failures {
			items[i] = fmt.Sprintf("%s: %s", f.Path, f.Reason)
		}
		writeList(&sb, "Failures", items)
	}

	p.printBox("FILE LOAD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjectType outputs the detected project shape and how to run it.
func (p *Printer) PrintProjectType(pt types.ProjectType) {
	var sb strings.Builder
	if !pt.IsRecognized() {
		sb.WriteString("Type:     (not recognized)")
		p.printBox("PROJECT TYPE", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Type:     %s\n", pt.Type))
	sb.WriteString(fmt.Sprintf("Setup:    %s", pt.SetupCommand))
	if pt.FollowupMessage != "" {
		sb.WriteString("\n\n")
		sb.WriteString(wrap(pt.FollowupMessage, boxWidth-4))
	}

	p.printBox("PROJECT TYPE", sb.String())
}

// PrintCollection outputs what a directory walk kept and skipped.
func (p *Printer) PrintCollection(c *files.Collection) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Included: %d\n", len(c.Files)))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", len(c.Skipped)))

	if len(c.Files) > 0 {
		sb.WriteString("\n")
		items := make([]string, len(c.Files))
		for i, f := range c.Files {
			items[i] = f.Path()
		}
		writeList(&sb, "Files", items)
	}

	if len(c.Skipped) > 0 {
		sb.WriteString("\n")
		items := make([]string, len(c.Skipped))
		for i, s := range c.Skipped {
			items[i] = fmt.Sprintf("%s (%s)", s.Path, s.Reason)
		}
		writeList(&sb, "Skipped", items)
	}

	p.printBox("DIRECTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text on spaces so no line exceeds width where possible.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
