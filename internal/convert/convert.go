// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-Markdown conversion with pluggable
// backends and owns the output-file bookkeeping: naming, collision
// handling, and atomic writes.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omriariav/pdf-to-md/pkg/types"
)

// Converter transforms a PDF file into Markdown text. Different backends
// (text-layer extraction, OCR) implement this interface.
type Converter interface {
	// Name returns the backend identifier used in config and logs.
	Name() string

	// Convert reads a PDF at pdfPath and returns the Markdown content.
	Convert(pdfPath string) (string, error)
}

// New returns the converter registered under the given method name.
func New(method types.ConversionMethod) (Converter, error) {
	switch method {
	case types.MethodText:
		return NewTextConverter(), nil
	case types.MethodOCR:
		return NewOCRConverter(), nil
	default:
		return nil, fmt.Errorf("unsupported conversion_method %q: use text or ocr", method)
	}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// IsPDF reports whether path names a convertible PDF: a .pdf extension,
// case-insensitively, on a non-empty stem. A bare dotfile like ".pdf" has
// nothing to name its output after and is not a PDF.
func IsPDF(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.EqualFold(ext, ".pdf") && len(base) > len(ext)
}

// ConvertFile converts a single PDF to Markdown in the output directory,
// printing a status line to w. A non-PDF path is a benign skip, not an
// error; a missing file fails. The output file never overwrites an existing
// one: on collision the name gets a timestamp suffix.
func ConvertFile(c Converter, pdfPath string, set *types.Settings, w io.Writer) (string, types.ConversionStatus, error) {
	abs, err := filepath.Abs(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", pdfPath, err)
		return "", types.StatusFailed, fmt.Errorf("resolving %s: %w", pdfPath, err)
	}
	base := filepath.Base(abs)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	info, err := os.Stat(abs)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return "", types.StatusFailed, fmt.Errorf("reading %s: %w", abs, err)
	}

	if !IsPDF(abs) {
		fmt.Fprintf(w, "skipped: %s (not a PDF)\n", base)
		return "", types.StatusSkipped, nil
	}

	if limit := set.MaxFileSizeBytes(); limit > 0 && info.Size() > limit {
		fmt.Fprintf(w, "skipped: %s (%.1f MB exceeds max_file_size_mb %d)\n",
			base, float64(info.Size())/(1<<20), set.MaxFileSizeMB)
		return "", types.StatusSkipped, nil
	}

	raw, err := c.Convert(abs)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return "", types.StatusFailed, fmt.Errorf("converting %s: %w", base, err)
	}

	content := raw
	if set.FrontMatter {
		content = addFrontMatter(base, c.Name(), raw)
	}

	if err := os.MkdirAll(set.OutputDirectory, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return "", types.StatusFailed, fmt.Errorf("creating output directory: %w", err)
	}

	outPath, err := outputPath(set.OutputDirectory, stem)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return "", types.StatusFailed, err
	}

	if err := writeMarkdown(outPath, content); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return "", types.StatusFailed, err
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", base, filepath.Base(outPath))
	return outPath, types.StatusConverted, nil
}

// ConvertBatch processes a list of paths through the converter, printing
// per-file status to w and returning a summary. It continues after
// individual failures.
func ConvertBatch(c Converter, pdfPaths []string, set *types.Settings, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		_, status, _ := ConvertFile(c, p, set, w)
		switch status {
		case types.StatusConverted:
			result.Converted++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// Preview converts pdfPath and writes the Markdown to w without creating
// anything in the output directory.
func Preview(c Converter, pdfPath string, w io.Writer) error {
	abs, err := filepath.Abs(pdfPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", pdfPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("reading %s: %w", abs, err)
	}
	if !IsPDF(abs) {
		return fmt.Errorf("%s is not a PDF file", filepath.Base(abs))
	}

	md, err := c.Convert(abs)
	if err != nil {
		return fmt.Errorf("converting %s: %w", filepath.Base(abs), err)
	}
	if _, err := io.WriteString(w, md); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	return nil
}

// timestampFormat is the collision suffix layout, e.g. invoice_20240101_120000.md.
const timestampFormat = "20060102_150405"

// outputPath returns a destination under outDir that does not exist yet:
// <stem>.md, then <stem>_YYYYMMDD_HHMMSS.md, then a numbered variant when
// the timestamped name is also taken within the same second.
func outputPath(outDir, stem string) (string, error) {
	candidate := filepath.Join(outDir, stem+".md")
	free, err := pathFree(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	ts := time.Now().Format(timestampFormat)
	candidate = filepath.Join(outDir, fmt.Sprintf("%s_%s.md", stem, ts))
	free, err = pathFree(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	for n := 2; ; n++ {
		candidate = filepath.Join(outDir, fmt.Sprintf("%s_%s_%d.md", stem, ts, n))
		free, err = pathFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
}

func pathFree(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, fmt.Errorf("checking output path %s: %w", path, err)
}

// writeMarkdown writes content to destPath via a temporary file in the same
// directory, renaming on success so a reader never sees a partial file.
func writeMarkdown(destPath, content string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".pdf-to-md-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing markdown: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// addFrontMatter prepends a YAML front matter block to the converted output.
func addFrontMatter(sourceName, converter, body string) string {
	ts := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source_pdf: %q\n", sourceName)
	fmt.Fprintf(&b, "converter: %q\n", converter)
	fmt.Fprintf(&b, "converted_at: %q\n", ts)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}
