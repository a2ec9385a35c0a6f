package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/plugin/executor"
	"github.com/jmylchreest/swatch/pkg/colour"
	"github.com/jmylchreest/swatch/pkg/palette"
)

// extractOptions holds the flags shared by extract and watch.
type extractOptions struct {
	colours         int
	bits            int
	resizeArea      int
	region          string
	noDefaultFilter bool
	exclude         []string
	excludeDistance float64
	filterPlugins   []string
	targets         []string
	workers         int
	format          string
	preview         bool
	output          string
	raw             bool
	cache           bool
	allowHTTP       bool
}

// defaultExtractOptions mirrors the flag defaults.
func defaultExtractOptions() extractOptions {
	return extractOptions{
		colours:         palette.DefaultMaximumColourCount,
		bits:            palette.DefaultQuantizeBits,
		resizeArea:      image.DefaultResizeArea,
		excludeDistance: 20,
		workers:         runtime.NumCPU(),
		format:          formatText,
	}
}

var extractOpts = defaultExtractOptions()

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image|url|directory|raw>",
	Short: "Extract a colour palette from an image",
	Long: `Extract prominent colour swatches from an image and match them to the
standard targets.

The input can be a local image (JPEG, PNG, GIF, WebP, AVIF, BMP, TIFF), an
HTTPS URL, a directory (a random image inside is used) or a raw RGBA8888 dump
(".rgba", optionally gzip, bzip2 or xz compressed).

Examples:
  # Text summary of swatches and targets
  swatch extract wallpaper.jpg

  # Eight swatches as JSON
  swatch extract -c 8 --format json wallpaper.png

  # Only sample the top strip of the image
  swatch extract --region 0,0,1920,200 wallpaper.png

  # Drop colours close to pure blue and run an external filter
  swatch extract --exclude blue --filter-plugin ./greyscale wallpaper.png

  # Raw frame dumped by ffmpeg
  swatch extract --raw frame.rgba.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd, &extractOpts)
}

// addExtractFlags registers the extraction flags on cmd, bound to opts.
func addExtractFlags(cmd *cobra.Command, opts *extractOptions) {
	def := defaultExtractOptions()
	flags := cmd.Flags()
	flags.IntVarP(&opts.colours, "colours", "c", def.colours, "maximum number of swatches to extract")
	flags.IntVar(&opts.bits, "bits", def.bits, "bits per channel kept when quantizing (1-8)")
	flags.IntVar(&opts.resizeArea, "resize-area", def.resizeArea, "scale images down to at most this many pixels before sampling (0 disables)")
	flags.StringVar(&opts.region, "region", "", "only sample the region x0,y0,x1,y1")
	flags.BoolVar(&opts.noDefaultFilter, "no-default-filter", false, "keep near-black, near-white and skin-tone colours")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "reject colours close to these (hex or CSS names)")
	flags.Float64Var(&opts.excludeDistance, "exclude-distance", def.excludeDistance, "RGB distance within which --exclude rejects a colour")
	flags.StringArrayVar(&opts.filterPlugins, "filter-plugin", nil, "filter plugin executable (repeatable)")
	flags.StringSliceVar(&opts.targets, "targets", nil, fmt.Sprintf("targets to select (default all: %s)", strings.Join(standardTargetNames(), ", ")))
	flags.IntVar(&opts.workers, "workers", def.workers, "goroutines used to build the colour histogram")
	flags.StringVarP(&opts.format, "format", "f", def.format, "output format (text, hex, json)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour previews (terminals only)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.raw, "raw", false, "treat the input as raw RGBA8888 samples")
	flags.BoolVar(&opts.cache, "cache", false, "cache images downloaded from URLs")
	flags.BoolVar(&opts.allowHTTP, "allow-http", false, "allow plain HTTP URLs")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	opts := extractOpts
	if err := opts.validate(); err != nil {
		return err
	}

	p, err := extract(cmd.Context(), args[0], opts, logger)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), p, opts)
}

// validate checks flags that are not checked by the palette builder.
func (o extractOptions) validate() error {
	if !lo.Contains(outputFormats, o.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", o.format, strings.Join(outputFormats, ", "))
	}
	if o.excludeDistance < 0 {
		return fmt.Errorf("--exclude-distance must be non-negative, got %g", o.excludeDistance)
	}
	if _, err := image.ParseRegion(o.region); err != nil {
		return err
	}
	return nil
}

// extract loads path and generates its palette.
func extract(ctx context.Context, path string, opts extractOptions, logger hclog.Logger) (*palette.Palette, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	samples, err := loadSamples(ctx, path, opts, logger)
	if err != nil {
		return nil, err
	}

	builder, closeFilters, err := newBuilder(ctx, samples, opts, logger)
	if err != nil {
		return nil, err
	}
	defer closeFilters()

	p, err := builder.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate palette: %w", err)
	}
	logger.Debug("generated palette", "swatches", len(p.Swatches()), "selections", len(p.Selections()))
	return p, nil
}

// loadSamples reads the samples of an image, URL, directory or raw dump.
func loadSamples(ctx context.Context, path string, opts extractOptions, logger hclog.Logger) ([]colour.RGBA, error) {
	if opts.raw || image.IsRawPath(path) {
		samples, err := image.ReadRawSamples(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("read raw samples", "path", path, "samples", len(samples))
		return samples, nil
	}

	loader := image.NewSmartLoader(image.LoaderOptions{Cache: opts.cache, AllowHTTP: opts.allowHTTP})
	img, resolved, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("loaded image", "path", resolved, "width", bounds.Dx(), "height", bounds.Dy())

	region, err := image.ParseRegion(opts.region)
	if err != nil {
		return nil, err
	}
	sampler := image.Sampler{ResizeArea: opts.resizeArea, Region: region}
	samples, err := sampler.Samples(img)
	if err != nil {
		return nil, err
	}
	logger.Debug("sampled image", "samples", len(samples))
	return samples, nil
}

// newBuilder configures a palette builder from opts. The returned function
// stops any filter plugins that were started.
func newBuilder(ctx context.Context, samples []colour.RGBA, opts extractOptions, logger hclog.Logger) (*palette.Builder, func(), error) {
	b := palette.NewBuilder(samples).
		MaximumColourCount(opts.colours).
		QuantizeBits(opts.bits).
		Workers(opts.workers).
		WithLogger(logger.Named("palette"))

	if opts.noDefaultFilter {
		b.ClearFilters()
	}

	if len(opts.exclude) > 0 {
		excluded := make([]colour.RGB, 0, len(opts.exclude))
		for _, s := range opts.exclude {
			c, err := colour.ParseColour(s)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid --exclude: %w", err)
			}
			excluded = append(excluded, c)
		}
		b.AddFilter(palette.ExcludeFilter{Colours: excluded, Distance: opts.excludeDistance})
	}

	if len(opts.targets) > 0 {
		b.ClearTargets()
		names := lo.Uniq(lo.Map(opts.targets, func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
		for _, name := range names {
			t, ok := palette.StandardTarget(name)
			if !ok {
				return nil, nil, fmt.Errorf("unknown target %q (valid: %s)", name, strings.Join(standardTargetNames(), ", "))
			}
			b.AddTarget(t)
		}
	}

	var executors []*executor.FilterExecutor
	closeAll := func() {
		for _, e := range executors {
			e.Close()
		}
	}
	pluginLogger := logger.Named("plugin")
	for _, path := range opts.filterPlugins {
		e, err := executor.New(ctx, path, pluginLogger)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to load filter plugin: %w", err)
		}
		executors = append(executors, e)
		logger.Debug("using filter plugin", "name", e.Info().Name, "protocol", e.Protocol())
		b.AddFilter(e.AsFilter(ctx))
	}

	return b, closeAll, nil
}

// writeOutput renders p to opts.output, or w when no output file is set.
func writeOutput(w io.Writer, p *palette.Palette, opts extractOptions) error {
	preview := opts.preview && opts.output == "" && colour.SupportsANSIColours()
	out, err := formatPalette(p, opts.format, preview)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.WriteString(w, out)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil { // #nosec G306 - palette output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote palette", "path", opts.output)
	return nil
}

func standardTargetNames() []string {
	return lo.Map(palette.StandardTargets(), func(t palette.Target, _ int) string {
		return t.Name
	})
}
