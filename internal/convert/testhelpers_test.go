// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pdfRun is one positioned text run on a page, in PDF user-space points
// (origin bottom-left).
type pdfRun struct {
	x, y float64
	s    string
}

// writeTestPDF writes a minimal but well-formed PDF to path, one page per
// element of pages, so backend tests need no binary fixtures. The document
// uses a classic cross-reference table, one content stream per page, and
// the built-in Helvetica font.
func writeTestPDF(t *testing.T, path string, pages [][]pdfRun) {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // pages dict, filled in once the kid object numbers are known
		fontObject(),
	}

	var kids []string
	for _, runs := range pages {
		pageNum := len(objects) + 1
		contentNum := pageNum + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum),
			streamObject(contentStream(runs)),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages))

	if err := os.WriteFile(path, buildPDF(objects), 0o644); err != nil {
		t.Fatal(err)
	}
}

// helloPDF writes a one-page document with a single text run and returns
// its path.
func helloPDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "hello.pdf")
	writeTestPDF(t, path, [][]pdfRun{{
		{72, 720, "Hello PDF"},
	}})
	return path
}

// tablePDF writes a one-page document whose runs form a 2x2 grid: a header
// row (Name, Qty) and a data row (Apple, 3), with a wide horizontal gap
// between the columns.
func tablePDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "table.pdf")
	writeTestPDF(t, path, [][]pdfRun{{
		{72, 700, "Name"},
		{200, 700, "Qty"},
		{72, 680, "Apple"},
		{200, 680, "3"},
	}})
	return path
}

// fontObject returns a Type1 Helvetica font dict with WinAnsi encoding and
// uniform glyph widths so extracted runs carry real advance widths.
func fontObject() string {
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>", widths)
}

// contentStream renders runs as one BT/ET text object each, so every run's
// Td coordinates are absolute.
func contentStream(runs []pdfRun) string {
	lines := make([]string, 0, len(runs))
	for _, r := range runs {
		lines = append(lines, fmt.Sprintf("BT /F1 12 Tf %g %g Td (%s) Tj ET", r.x, r.y, escapePDFString(r.s)))
	}
	return strings.Join(lines, "\n")
}

func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	return strings.ReplaceAll(s, ")", `\)`)
}

// streamObject wraps a content stream body with its required /Length.
func streamObject(content string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
}

// buildPDF assembles numbered objects (objects[i] becomes object i+1) into
// a complete document with a cross-reference table and trailer.
func buildPDF(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return buf.Bytes()
}
