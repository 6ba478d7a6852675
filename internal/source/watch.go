package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

const reloadOps = fsnotify.Write | fsnotify.Create

// Watch loads the description at path, calls fn with it, and calls fn again every time
// the file is rewritten, until ctx is done. Descriptions that fail to load are logged and
// skipped. An error returned by fn stops the watch.
func Watch(ctx context.Context, path string, fn func(*model.Pipeline) error, opts ...Option) error {
	cfg := newConfig(opts...)
	target := filepath.Clean(path)
	file := &File{cfg: cfg, path: path}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "unable to create watcher")
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so the directory is watched.
	err = watcher.Add(filepath.Dir(target))
	if err != nil {
		return errors.Wrapf(err, "unable to watch %s", path)
	}

	err = reload(ctx, cfg.logger, file, fn)
	if err != nil {
		return err
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
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

			if filepath.Clean(event.Name) != target || event.Op&reloadOps == 0 {
				continue
			}

			cfg.logger.Debug("model changed", zap.String("path", path), zap.Stringer("op", event.Op))

			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				timer.Reset(cfg.debounce)
			}

			pending = timer.C
		case <-pending:
			pending = nil

			err := reload(ctx, cfg.logger, file, fn)
			if err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return errors.Wrapf(err, "unable to watch %s", path)
		}
	}
}

func reload(ctx context.Context, logger *zap.Logger, file *File, fn func(*model.Pipeline) error) error {
	pipe, err := file.Pipeline(ctx)
	if err != nil {
		logger.Warn("unable to load model", zap.String("path", file.Path()), zap.Error(err))

		return nil
	}

	err = fn(pipe)
	if err != nil {
		return errors.Wrapf(err, "unable to handle %s", file.Path())
	}

	return nil
}
