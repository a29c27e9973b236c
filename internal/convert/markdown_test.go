package convert

import (
	"strings"
	"testing"
)

func TestDocumentHeader(t *testing.T) {
	got := documentHeader("report", "report.pdf")
	want := "# report\n\n*Converted from: report.pdf*\n\n---\n"
	if got != want {
		t.Errorf("documentHeader = %q, want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	got := renderTable([][]string{
		{"Name", "Qty"},
		{"Apple", "3"},
	})
	want := strings.Join([]string{
		"| Name  | Qty |",
		"| ----- | --- |",
		"| Apple | 3   |",
		"",
	}, "\n")
	if got != want {
		t.Errorf("renderTable =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTableRaggedRows(t *testing.T) {
	got := renderTable([][]string{
		{"A", "B", "C"},
		{"1"},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}
	// Every line must have the same number of cells as the widest row.
	for _, line := range lines {
		if n := strings.Count(line, "|"); n != 4 {
			t.Errorf("line %q has %d pipes, want 4", line, n)
		}
	}
}

func TestRenderTableEscapesPipes(t *testing.T) {
	got := renderTable([][]string{
		{"expr", "desc"},
		{"a|b", "pipe"},
	})
	if !strings.Contains(got, `a\|b`) {
		t.Errorf("cell pipes should be escaped:\n%s", got)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := renderTable(nil); got != "" {
		t.Errorf("renderTable(nil) = %q, want empty", got)
	}
	if got := renderTable([][]string{}); got != "" {
		t.Errorf("renderTable(empty) = %q, want empty", got)
	}
}

func TestStripInlineImages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drops data-uri image",
			in:   "before ![scan](data:image/png;base64,iVBORw0KGgo=) after",
			want: "before  after",
		},
		{
			name: "keeps file-path image",
			in:   "![diagram](figures/arch.png)",
			want: "![diagram](figures/arch.png)",
		},
		{
			name: "plain text untouched",
			in:   "no images here",
			want: "no images here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripInlineImages(tt.in); got != tt.want {
				t.Errorf("stripInlineImages(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
