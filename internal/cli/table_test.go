package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Target", "Hex"})

	table.AddRow([]string{"vibrant", "#ff0000"})
	table.AddRow([]string{"muted"})
	table.AddRow([]string{"dark-muted", "#101010", "extra"})

	want := [][]string{
		{"vibrant", "#ff0000"},
		{"muted", ""},
		{"dark-muted", "#101010"},
	}
	if diff := cmp.Diff(want, table.rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"TARGET", "HEX", "POPULATION"})
	table.AddRow([]string{"vibrant", "#f80000", "1,024"})
	table.AddRow([]string{"light-muted", "#c0b0a0", "7"})

	want := strings.Join([]string{
		"TARGET       HEX      POPULATION",
		"-----------  -------  ----------",
		"vibrant      #f80000  1,024",
		"light-muted  #c0b0a0  7",
		"",
	}, "\n")
	if diff := cmp.Diff(want, table.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if out := NewTable(nil).Render(); out != "" {
		t.Errorf("Expected empty string for table without headers, got %q", out)
	}

	out := NewTable([]string{"Column1", "Column2"}).Render()
	if out != "Column1  Column2\n-------  -------\n" {
		t.Errorf("Unexpected render of table without rows: %q", out)
	}
}

func TestTableIgnoresColourEscapes(t *testing.T) {
	block := "\x1b[48;2;255;0;0m    \x1b[0m"
	table := NewTable([]string{"", "HEX"})
	table.AddRow([]string{block, "#ff0000"})

	lines := strings.Split(table.Render(), "\n")
	header := strings.Index(lines[0], "HEX")
	row := displayWidth(lines[2][:strings.Index(lines[2], "#")])
	if header != row {
		t.Errorf("HEX header at column %d, value at column %d", header, row)
	}
	if !strings.HasPrefix(lines[2], block+"  #ff0000") {
		t.Errorf("Unexpected row %q", lines[2])
	}
}

func TestTableWrapping(t *testing.T) {
	table := NewTable([]string{"Name", "Description"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow([]string{"muted", "low saturation mid lightness"})

	want := strings.Join([]string{
		"Name   Description",
		"-----  -----------",
		"muted  low",
		"       saturation",
		"       mid",
		"       lightness",
		"",
	}, "\n")
	if diff := cmp.Diff(want, table.Render()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"\x1b[31mx\x1b[0m", 3, "\x1b[31mx\x1b[0m  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
