package source

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

// Provider yields the fitted pipeline of a finished training run.
type Provider interface {
	Pipeline(ctx context.Context) (*model.Pipeline, error)
}

// File is a provider reading a model description exported to disk.
type File struct {
	cfg  *config
	path string
}

// NewFile creates a provider for the description stored at path.
func NewFile(path string, opts ...Option) *File {
	return &File{
		cfg:  newConfig(opts...),
		path: path,
	}
}

// Path returns the location of the description.
func (f *File) Path() string {
	return f.path
}

// Pipeline reads and decodes the description.
func (f *File) Pipeline(ctx context.Context) (*model.Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", f.path)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", f.path)
	}
	defer file.Close()

	pipe, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", f.path)
	}

	f.cfg.logger.Debug("model loaded", zap.String("path", f.path), zap.Int("steps", len(pipe.Steps)))

	return pipe, nil
}

// LoadAll loads every provider concurrently, at most limit at a time when limit is positive.
// Pipelines are returned in provider order. It returns early on the first error.
func LoadAll(ctx context.Context, providers []Provider, limit int) ([]*model.Pipeline, error) {
	errGrp, dCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGrp.SetLimit(limit)
	}

	pipes := make([]*model.Pipeline, len(providers))

	for idx, provider := range providers {
		idx, provider := idx, provider
		errGrp.Go(func() error {
			pipe, err := provider.Pipeline(dCtx)
			if err != nil {
				return errors.Wrapf(err, "provider %d", idx)
			}

			pipes[idx] = pipe

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return pipes, nil
}

var _ Provider = (*File)(nil)
