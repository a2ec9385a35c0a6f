package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/ulikunitz/xz"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	payload := bytes.Repeat([]byte{0xff, 0x00, 0x80, 0xff}, 64)

	tests := []struct {
		name       string
		file       string
		data       []byte
		wantFormat Format
	}{
		{name: "plain", file: "frame.rgba", data: payload, wantFormat: FormatNone},
		{name: "gzip by extension", file: "frame.rgba.gz", data: gzipBytes(t, payload), wantFormat: FormatGzip},
		{name: "gzip by magic", file: "frame.rgba", data: gzipBytes(t, payload), wantFormat: FormatGzip},
		{name: "xz by extension", file: "frame.rgba.xz", data: xzBytes(t, payload), wantFormat: FormatXz},
		{name: "xz by magic", file: "frame", data: xzBytes(t, payload), wantFormat: FormatXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, format, err := NewReader(bytes.NewReader(tt.data), tt.file)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer rc.Close()

			if format != tt.wantFormat {
				t.Errorf("format = %s, want %s", format, tt.wantFormat)
			}
			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("decompressed %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestNewReaderCorrupt(t *testing.T) {
	if _, _, err := NewReader(bytes.NewReader([]byte("not gzip")), "frame.gz"); err == nil {
		t.Error("Expected error for corrupt gzip stream")
	}
}

func TestTrimExtension(t *testing.T) {
	tests := map[string]string{
		"frame.rgba.xz":  "frame.rgba",
		"frame.rgba.GZ":  "frame.rgba",
		"frame.rgba.bz2": "frame.rgba",
		"frame.rgba":     "frame.rgba",
	}
	for in, want := range tests {
		if got := TrimExtension(in); got != want {
			t.Errorf("TrimExtension(%q) = %q, want %q", in, got, want)
		}
	}
}
