package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/paths"
)

// EnvPrefix prefixes environment overrides, QUARK_BUILD_PROFILE sets
// build.profile
const EnvPrefix = "QUARK_"

var sections = []string{"build", "bundle", "output"}

type loadOptions struct {
	userFile   string
	projectDir string
	overrides  map[string]interface{}
}

// Option configures Load
type Option func(*loadOptions)

// WithUserConfigFile loads the given user config file if it exists
func WithUserConfigFile(path string) Option {
	return func(o *loadOptions) { o.userFile = path }
}

// WithProjectDir loads <dir>/.quark.toml if it exists
func WithProjectDir(dir string) Option {
	return func(o *loadOptions) { o.projectDir = dir }
}

// WithOverrides applies dotted keys ("build.profile") on top of every
// other source
func WithOverrides(overrides map[string]interface{}) Option {
	return func(o *loadOptions) { o.overrides = overrides }
}

// Load merges every configuration source and decodes the result
func Load(opts ...Option) (*Config, error) {
	logger := logging.GetLogger("config")
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	k, err := loadKoanf(o)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				splitFeaturesHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	logger.Debug().
		Str("tool", cfg.Build.Tool).
		Str("profile", cfg.Build.Profile).
		Bool("skipBuild", cfg.Build.Skip).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadKoanf(o loadOptions) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config, then project config
	files := []string{o.userFile}
	if o.projectDir != "" {
		files = append(files, filepath.Join(o.projectDir, paths.ProjectConfigFile))
	}
	for _, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicit overrides
	if len(o.overrides) > 0 {
		if err := k.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}
	return k, nil
}

// envKey maps QUARK_BUNDLE_PACKAGE_TYPE to bundle.package_type. Variables
// outside the config sections (QUARK_CONFIG_DIR and friends) are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok && rest != "" {
			return section + "." + rest
		}
	}
	return ""
}

// splitFeaturesHookFunc accepts space separated feature lists as well as
// comma separated ones
func splitFeaturesHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		items, ok := data.([]string)
		if !ok || t != reflect.TypeOf([]string{}) {
			return data, nil
		}
		var out []string
		for _, item := range items {
			out = append(out, strings.Fields(item)...)
		}
		return out, nil
	}
}
