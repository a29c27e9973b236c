// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/omriariav/pdf-to-md/pkg/types"
)

const (
	// cellGap is the horizontal gap, in points, that separates two text
	// runs into different table cells.
	cellGap = 18.0

	// wordGap is the horizontal gap, in points, rendered as a single space
	// inside a cell. Whitespace glyphs never reach clustering, so word
	// breaks survive only as pen gaps.
	wordGap = 3.0

	// rowTolerance is the vertical distance, in points, within which
	// glyphs belong to the same text row.
	rowTolerance = 2.0

	// minTableRows is the minimum run of consecutive multi-cell rows that
	// counts as a table.
	minTableRows = 2
)

// TextConverter extracts the embedded text layer. It is pure Go and does
// no OCR, so a scanned (image-only) PDF comes out as a header-only document.
type TextConverter struct{}

// NewTextConverter returns the text-layer converter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Name returns the config identifier for this backend.
func (t *TextConverter) Name() string {
	return string(types.MethodText)
}

// Convert reads the PDF at pdfPath and renders it as Markdown with one
// section per non-empty page, followed by any detected tables.
func (t *TextConverter) Convert(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(pdfPath), err)
	}
	defer f.Close()

	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	b.WriteString(documentHeader(stem, base))

	fonts := make(map[string]*pdf.Font)
	tableCount := 0

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, base, err)
		}
		text = strings.TrimSpace(text)

		tables := detectTables(p)
		if text == "" && len(tables) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## Page %d\n", i)
		if text != "" {
			b.WriteString("\n" + text + "\n")
		}
		for _, tbl := range tables {
			tableCount++
			fmt.Fprintf(&b, "\n### Table %d (Page %d)\n\n", tableCount, i)
			b.WriteString(renderTable(tbl))
		}
	}

	return b.String(), nil
}

// detectTables lays out a page's glyphs and scans the text rows for runs of
// consecutive rows that cluster into two or more cells. Detection is
// best-effort: a page whose content stream the library cannot interpret
// simply has no tables.
func detectTables(p pdf.Page) (tables [][][]string) {
	defer func() {
		if recover() != nil {
			tables = nil
		}
	}()

	var current [][]string

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, row := range textRows(p.Content().Text) {
		cells := clusterCells(row)
		if len(cells) >= 2 {
			current = append(current, cells)
			continue
		}
		flush()
	}
	flush()

	return tables
}

// textRows buckets glyphs into text rows by baseline, top of the page first.
// Whitespace glyphs are dropped; word spacing is recovered from the pen gaps
// they leave.
func textRows(glyphs []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) != "" {
			sorted = append(sorted, g)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	for _, g := range sorted {
		if n := len(rows) - 1; n >= 0 && rows[n][0].Y-g.Y <= rowTolerance {
			rows[n] = append(rows[n], g)
			continue
		}
		rows = append(rows, []pdf.Text{g})
	}
	return rows
}

// clusterCells groups a row's glyphs into cells, splitting where the
// horizontal gap between adjacent glyphs exceeds cellGap and restoring a
// space where it exceeds wordGap.
func clusterCells(runs []pdf.Text) []string {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	var cell strings.Builder
	prevEnd := sorted[0].X

	for _, run := range sorted {
		gap := run.X - prevEnd
		switch {
		case gap > cellGap && cell.Len() > 0:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		case gap > wordGap && cell.Len() > 0:
			cell.WriteByte(' ')
		}
		cell.WriteString(run.S)
		prevEnd = run.X + run.W
	}
	if cell.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cell.String()))
	}
	return cells
}
