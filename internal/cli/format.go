package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/swatch/pkg/colour"
	"github.com/jmylchreest/swatch/pkg/palette"
)

// Output formats.
const (
	formatText = "text"
	formatHex  = "hex"
	formatJSON = "json"
)

var outputFormats = []string{formatText, formatHex, formatJSON}

// previewWidth is the width of colour blocks in previews.
const previewWidth = 6

// formatPalette formats the palette according to the specified format.
func formatPalette(p *palette.Palette, format string, preview bool) (string, error) {
	switch format {
	case formatText:
		return formatTextPalette(p, preview), nil
	case formatHex:
		return formatHexPalette(p, preview), nil
	case formatJSON:
		data, err := p.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(outputFormats, ", "))
	}
}

// formatHexPalette lists swatch hex codes, one per line.
func formatHexPalette(p *palette.Palette, preview bool) string {
	var sb strings.Builder
	for _, s := range p.Swatches() {
		if preview {
			sb.WriteString(colour.Preview(s.RGB(), previewWidth))
			sb.WriteString(" ")
		}
		sb.WriteString(s.Hex())
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatTextPalette renders the swatches and the target selections as tables.
func formatTextPalette(p *palette.Palette, preview bool) string {
	if p.Empty() {
		return "No swatches found\n"
	}

	var sb strings.Builder

	total := 0
	for _, s := range p.Swatches() {
		total += s.Population()
	}
	fmt.Fprintf(&sb, "Swatches (%d, %s samples)\n", len(p.Swatches()), humanize.Comma(int64(total)))
	sb.WriteString(swatchTable(p, preview).Render())

	if len(p.Selections()) > 0 {
		sb.WriteString("\nTargets\n")
		targets := NewTable(withPreviewHeader([]string{"TARGET", "HEX", "POPULATION", "TEXT"}, preview))
		for _, sel := range p.Selections() {
			targets.AddRow(withPreview([]string{
				sel.Target.Name,
				sel.Swatch.Hex(),
				humanize.Comma(int64(sel.Swatch.Population())),
				textSample(sel.Swatch, preview),
			}, sel.Swatch, preview))
		}
		sb.WriteString(targets.Render())
	}

	if missing := missingTargets(p); len(missing) > 0 {
		fmt.Fprintf(&sb, "\nNo swatch for: %s\n", strings.Join(missing, ", "))
	}
	return sb.String()
}

func swatchTable(p *palette.Palette, preview bool) *Table {
	table := NewTable(withPreviewHeader([]string{"HEX", "RGB", "HSL", "POPULATION", ""}, preview))
	dominant := p.Dominant()
	for _, s := range p.Swatches() {
		marker := ""
		if s == dominant {
			marker = "dominant"
		}
		table.AddRow(withPreview([]string{
			s.Hex(),
			s.RGB().String(),
			s.HSL().String(),
			humanize.Comma(int64(s.Population())),
			marker,
		}, s, preview))
	}
	return table
}

// textSample shows the title and body text colours, on the swatch when
// previews are enabled.
func textSample(s *palette.Swatch, preview bool) string {
	title, body := s.TitleTextColour(), s.BodyTextColour()
	if !preview {
		return fmt.Sprintf("title %s body %s", title.Hex(), body.Hex())
	}
	return colour.PreviewWithText(s.RGB(), title, "Title", 8) + " " +
		colour.PreviewWithText(s.RGB(), body, "Body", 8)
}

func withPreviewHeader(headers []string, preview bool) []string {
	if !preview {
		return headers
	}
	return append([]string{""}, headers...)
}

func withPreview(row []string, s *palette.Swatch, preview bool) []string {
	if !preview {
		return row
	}
	return append([]string{colour.Preview(s.RGB(), previewWidth)}, row...)
}

// missingTargets returns the names of targets without a selected swatch.
func missingTargets(p *palette.Palette) []string {
	var missing []string
	for _, t := range p.Targets() {
		if p.SwatchFor(t.Name) == nil {
			missing = append(missing, t.Name)
		}
	}
	return missing
}
