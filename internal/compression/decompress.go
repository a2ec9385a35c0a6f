// Package compression opens optionally compressed streams, selecting the
// codec from the file name or the stream's magic bytes.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Format identifies a compression codec.
type Format string

// Supported formats.
const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
	FormatXz    Format = "xz"
)

var magic = []struct {
	format Format
	prefix []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
}

// FormatFromName returns the format implied by a file extension.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".bz2", ".bzip2":
		return FormatBzip2
	case ".xz":
		return FormatXz
	default:
		return FormatNone
	}
}

// TrimExtension removes a compression extension from name, so "frame.rgba.xz"
// becomes "frame.rgba".
func TrimExtension(name string) string {
	if FormatFromName(name) == FormatNone {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// NewReader returns a decompressing reader for r. The format comes from the
// extension of name, falling back to sniffing the magic bytes.
func NewReader(r io.Reader, name string) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)

	format := FormatFromName(name)
	if format == FormatNone {
		format = sniff(br)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	switch format {
	case FormatGzip:
		var gzr *gzip.Reader
		if gzr, err = gzip.NewReader(br); err == nil {
			rc = gzr
		}
	case FormatBzip2:
		rc = io.NopCloser(bzip2.NewReader(br))
	case FormatXz:
		var xzr *xz.Reader
		if xzr, err = xz.NewReader(br); err == nil {
			rc = io.NopCloser(xzr)
		}
	default:
		rc = io.NopCloser(br)
	}
	if err != nil {
		return nil, format, fmt.Errorf("failed to create %s reader: %w", format, err)
	}
	return rc, format, nil
}

func sniff(br *bufio.Reader) Format {
	head, _ := br.Peek(6)
	for _, m := range magic {
		if bytes.HasPrefix(head, m.prefix) {
			return m.format
		}
	}
	return FormatNone
}
