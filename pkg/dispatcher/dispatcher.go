// Package dispatcher is the entry point from the CLI layer into bundling.
// It resolves which package types a project is bundled as and hands the
// settings to the backend registered for each one.
package dispatcher

import (
	"context"

	"github.com/arthur-debert/quark/pkg/backends/deb"
	"github.com/arthur-debert/quark/pkg/backends/msi"
	"github.com/arthur-debert/quark/pkg/backends/osx"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// Backend writes one kind of bundle and returns the paths it produced
type Backend interface {
	Bundle(ctx context.Context, s *settings.Settings) ([]string, error)
}

// BackendFunc adapts a function to the Backend interface
type BackendFunc func(ctx context.Context, s *settings.Settings) ([]string, error)

// Bundle implements Backend
func (f BackendFunc) Bundle(ctx context.Context, s *settings.Settings) ([]string, error) {
	return f(ctx, s)
}

// Registry maps package types to the backend that writes them
type Registry map[settings.PackageType]Backend

// DefaultRegistry holds the staging backends for every package type
func DefaultRegistry() Registry {
	return Registry{
		settings.OsxBundle:  BackendFunc(osx.Bundle),
		settings.Deb:        BackendFunc(deb.Bundle),
		settings.WindowsMsi: BackendFunc(msi.Bundle),
	}
}

// Observer is told when a package type starts bundling
type Observer func(pt settings.PackageType, s *settings.Settings)

type options struct {
	observer Observer
}

// Option configures BundleProject
type Option func(*options)

// WithObserver reports each package type before its backend runs
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// BundleProject bundles the project described by s as each of its package
// types, in order, and returns every produced path. The first failing
// backend aborts the run.
func BundleProject(ctx context.Context, s *settings.Settings, registry Registry, opts ...Option) ([]string, error) {
	logger := logging.GetLogger("dispatcher")
	o := options{observer: func(settings.PackageType, *settings.Settings) {}}
	for _, opt := range opts {
		opt(&o)
	}

	types, err := s.PackageTypes()
	if err != nil {
		return nil, err
	}

	backends := make([]Backend, 0, len(types))
	for _, pt := range types {
		backend, ok := registry[pt]
		if !ok || backend == nil {
			return nil, errors.Newf(errors.ErrPackageTypeUnavailable, "no bundler available for %s packages", pt.ShortName()).
				WithDetail("packageType", pt.ShortName())
		}
		backends = append(backends, backend)
	}

	info, err := s.FS().Stat(s.BinaryPath())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "binary %s not found", s.BinaryPath()).
			WithDetail("path", s.BinaryPath())
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileNotFound, "binary %s is a directory", s.BinaryPath()).
			WithDetail("path", s.BinaryPath())
	}

	var paths []string
	for i, pt := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug().
			Str("packageType", pt.ShortName()).
			Str("bundle", s.BundleName()).
			Msg("Dispatching bundle")
		o.observer(pt, s)

		done := logging.LogOperationStart(logger, "bundle "+pt.ShortName())
		produced, err := backends[i].Bundle(ctx, s)
		done()
		if err != nil {
			if errors.GetErrorCode(err) == errors.ErrUnknown {
				err = errors.Wrapf(err, errors.ErrBackendExecute, "failed to bundle %s package", pt.ShortName()).
					WithDetail("packageType", pt.ShortName())
			}
			return nil, err
		}
		paths = append(paths, produced...)
	}

	logger.Info().Int("count", len(paths)).Msg("Bundling finished")
	return paths, nil
}
