package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StylesConfig represents the complete styles configuration
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// ParseStyles builds a style registry from YAML, bound to renderer r
func ParseStyles(r *lipgloss.Renderer, data []byte) (map[string]lipgloss.Style, error) {
	var config StylesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := r.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Foreground != "" {
			color, ok := config.Colors[def.Foreground]
			if !ok {
				return nil, fmt.Errorf("style %s uses unknown color %q", name, def.Foreground)
			}
			style = style.Foreground(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
		}
		registry[name] = style
	}
	return registry, nil
}
