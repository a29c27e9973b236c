// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"regexp"
	"strings"
)

const minColWidth = 3 // minimum separator width for a valid Markdown table (---)

// documentHeader renders the block every converted document starts with:
// a title heading, the source filename, and a rule.
func documentHeader(title, sourceName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*Converted from: %s*\n\n", sourceName)
	b.WriteString("---\n")
	return b.String()
}

// renderTable converts a [][]string into a GitHub-flavored Markdown table.
// The first row is treated as the header. Each column is padded to the
// width of its widest cell (minimum minColWidth).
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols == 0 {
		return ""
	}

	widths := make([]int, maxCols)
	for i := range widths {
		widths[i] = minColWidth
	}
	for _, row := range rows {
		for i, raw := range row {
			if i < maxCols {
				if w := len(escapePipes(raw)); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	cell := func(row []string, col int) string {
		if col < len(row) {
			return escapePipes(row[col])
		}
		return ""
	}
	pad := func(s string, w int) string {
		if len(s) >= w {
			return s
		}
		return s + strings.Repeat(" ", w-len(s))
	}

	var sb strings.Builder

	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		sb.WriteString(" " + pad(cell(rows[0], i), widths[i]) + " |")
	}
	sb.WriteByte('\n')

	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		sb.WriteString(" " + strings.Repeat("-", widths[i]) + " |")
	}
	sb.WriteByte('\n')

	for _, row := range rows[1:] {
		sb.WriteString("|")
		for i := 0; i < maxCols; i++ {
			sb.WriteString(" " + pad(cell(row, i), widths[i]) + " |")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// escapePipes replaces | characters in a cell value so they do not break the
// Markdown table syntax.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// inlineImagePattern matches base64 data-URI images that MuPDF embeds in
// page HTML.
var inlineImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]+\)`)

// stripInlineImages drops embedded raster images from converted Markdown.
func stripInlineImages(content string) string {
	return inlineImagePattern.ReplaceAllString(content, "")
}
