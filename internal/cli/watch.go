package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
const watchDebounce = 250 * time.Millisecond

var watchOpts = defaultExtractOptions()

// watchCmd re-extracts the palette whenever the image changes.
var watchCmd = &cobra.Command{
	Use:   "watch <image>",
	Short: "Re-extract the palette whenever an image changes",
	Long: `Extract a palette from an image, then extract it again every time the
file is written or replaced, until interrupted. Accepts the same flags as
extract.

Examples:
  # Print the hex codes of the current wallpaper as it changes
  swatch watch --format hex ~/.cache/wallpaper.png`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addExtractFlags(watchCmd, &watchOpts)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := watchOpts
	if err := opts.validate(); err != nil {
		return err
	}
	if image.IsURL(args[0]) {
		return fmt.Errorf("cannot watch a URL: %s", args[0])
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch a directory: %s", path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func() {
		p, err := extract(ctx, path, opts, logger)
		if err != nil {
			logger.Error("extraction failed", "path", path, "error", err)
			return
		}
		if err := writeOutput(cmd.OutOrStdout(), p, opts); err != nil {
			logger.Error("failed to write palette", "error", err)
		}
	}

	render()
	logger.Info("watching for changes", "path", path)
	return watchFile(ctx, path, watchDebounce, logger, render)
}

// watchFile calls onChange once path has been written or created and no
// further events arrived for debounce. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger hclog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming a temporary file over the original,
	// which a watch on the file itself would lose.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
