package image

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/swatch/internal/compression"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/pkg/colour"
)

// MaxRawBytes bounds the decompressed size of a raw sample dump.
const MaxRawBytes = 256 << 20

// IsRawPath reports whether path names a raw RGBA dump (".rgba", optionally
// followed by a compression extension).
func IsRawPath(path string) bool {
	return strings.EqualFold(filepath.Ext(compression.TrimExtension(path)), ".rgba")
}

// ReadRawSamples reads a raw RGBA8888 dump such as the output of
// `ffmpeg -i in.mp4 -frames:v 1 -f rawvideo -pix_fmt rgba frame.rgba`.
// Gzip, bzip2 and xz compression are detected from the name or content.
func ReadRawSamples(path string) ([]colour.RGBA, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified sample path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open raw samples: %w", err)
	}
	defer file.Close()

	return DecodeRawSamples(file, path)
}

// DecodeRawSamples decodes raw RGBA8888 samples from r. name selects the
// compression format by extension.
func DecodeRawSamples(r io.Reader, name string) ([]colour.RGBA, error) {
	rc, format, err := compression.NewReader(r, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(security.NewLimitedReader(rc, MaxRawBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read raw samples (%s): %w", format, err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw sample data is %d bytes, not a multiple of 4", len(data))
	}

	samples := make([]colour.RGBA, len(data)/4)
	for i := range samples {
		p := data[i*4 : i*4+4 : i*4+4]
		samples[i] = colour.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return samples, nil
}
