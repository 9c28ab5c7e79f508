package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const minFlagColumn = 28

// PrintHelp writes a colorized help page for cmd.
func PrintHelp(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "\n%s\n", Paint(ColorBold+ColorCyan, strings.ToUpper(cmd.Name())))
	if cmd.Short != "" {
		fmt.Fprintln(w, cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(w, "\n%s\n", WrapText(cmd.Long, 80))
	}

	printUsage(w, cmd)
	printExamples(w, cmd)
	printCommands(w, cmd)

	if cmd.HasAvailableLocalFlags() {
		section(w, "Flags")
		PrintFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		section(w, "Global Flags")
		PrintFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", Paint(ColorDim, fmt.Sprintf("Use \"%s <command> --help\" for more information about a command.", cmd.CommandPath())))
	}
	fmt.Fprintln(w)
}

// PrintUsage writes the short usage block shown after a command error.
func PrintUsage(w io.Writer, cmd *cobra.Command) error {
	printUsage(w, cmd)
	printCommands(w, cmd)
	if cmd.HasAvailableLocalFlags() {
		section(w, "Flags")
		PrintFlags(w, cmd.LocalFlags().FlagUsages())
	}
	fmt.Fprintf(w, "\n%s\n", Paint(ColorDim, fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", Paint(ColorBold+ColorWhite, title))
}

func printUsage(w io.Writer, cmd *cobra.Command) {
	section(w, "Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", Paint(ColorCyan, cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n",
			Paint(ColorCyan, cmd.CommandPath()),
			Paint(ColorYellow, "<command>"),
			Paint(ColorDim, "[flags]"))
	}
}

// printExamples renders "# comment" lines dimmed and everything else as a shell command.
func printExamples(w io.Writer, cmd *cobra.Command) {
	if !cmd.HasExample() {
		return
	}
	section(w, "Examples")

	lastWasCommand := false
	for _, line := range strings.Split(cmd.Example, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "#"):
			if lastWasCommand {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", Paint(ColorDim, trimmed))
			lastWasCommand = false
		default:
			fmt.Fprintf(w, "  %s\n", Paint(ColorGreen, "$ "+trimmed))
			lastWasCommand = true
		}
	}
}

func printCommands(w io.Writer, cmd *cobra.Command) {
	if !cmd.HasAvailableSubCommands() {
		return
	}
	section(w, "Commands")

	var available []*cobra.Command
	width := 0
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			available = append(available, c)
			width = max(width, len(c.Name()))
		}
	}
	for _, c := range available {
		fmt.Fprintf(w, "  %s%s%s\n",
			Paint(ColorCyan, c.Name()),
			strings.Repeat(" ", width-len(c.Name())+2),
			Paint(ColorDim, c.Short))
	}
}

// PrintFlags re-aligns pflag usage text into two colored columns.
func PrintFlags(w io.Writer, usages string) {
	lines := strings.Split(usages, "\n")

	width := minFlagColumn
	for _, line := range lines {
		if name, _, ok := splitFlagLine(line); ok {
			width = max(width, len(name))
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, desc, ok := splitFlagLine(line)
		switch {
		case ok && desc != "":
			fmt.Fprintf(w, "  %s%s%s\n", Paint(ColorGreen, name), strings.Repeat(" ", width-len(name)+2), Paint(ColorDim, desc))
		case ok:
			fmt.Fprintf(w, "  %s\n", Paint(ColorGreen, name))
		default:
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", width+4), Paint(ColorDim, strings.TrimSpace(line)))
		}
	}
}

// splitFlagLine splits "  -o, --output string   description" into its flag
// and description parts. ok is false for continuation lines.
func splitFlagLine(line string) (name, desc string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "-") {
		return "", "", false
	}
	name, desc, _ = strings.Cut(trimmed, "  ")
	return strings.TrimSpace(name), strings.TrimSpace(desc), true
}

// WrapText wraps text at width while keeping paragraphs and list items intact.
func WrapText(text string, width int) string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		var lines []string
		for _, line := range strings.Split(para, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
				lines = append(lines, trimmed)
				continue
			}
			lines = append(lines, wrapLine(trimmed, width)...)
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func wrapLine(line string, width int) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, word := range strings.Fields(line) {
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) <= width:
			cur.WriteString(" " + word)
		default:
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
