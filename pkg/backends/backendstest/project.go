// Package backendstest builds resolved settings over a temporary project
// for backend tests.
package backendstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quark/pkg/buildsys"
	"github.com/arthur-debert/quark/pkg/buildsys/buildsystest"
	"github.com/arthur-debert/quark/pkg/settings"
)

// Package is the package every test project declares
func Package(bundle map[string]any) buildsys.Package {
	pkg := buildsys.Package{
		Name:        "hello",
		Version:     "1.2.3",
		Authors:     []string{"Ada Lovelace <ada@example.com>"},
		Homepage:    "https://example.com/hello",
		Description: "Says hello",
	}
	if bundle != nil {
		pkg.Metadata = map[string]any{"bundle": bundle}
	}
	return pkg
}

// NewSettings resolves settings for a project in dir with the given bundle
// section. The fake build writes a binary named "hello" so backends have
// something to copy.
func NewSettings(t *testing.T, dir string, bundle map[string]any, opts ...settings.Option) *settings.Settings {
	t.Helper()
	fake := buildsystest.NewFake(dir, Package(bundle))
	base := []settings.Option{
		settings.WithBuildSystem(fake),
		settings.WithMainBinaryFromPackage(),
		settings.WithHost("linux", "amd64"),
	}
	s, err := settings.New(context.Background(), dir, append(base, opts...)...)
	require.NoError(t, err)
	return s
}
