package backends

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
)

// Icon is an icon image ready to embed. Data is always PNG encoded.
type Icon struct {
	Source string
	Width  int
	Height int
	Retina bool
	Data   []byte
}

// LoadIcon reads an icon file in any registered image format (png, jpeg,
// gif, bmp, webp) and returns it as PNG.
func LoadIcon(fsys filesystem.FS, path string) (Icon, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read icon %s", path).
			WithDetail("path", path)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrInvalidInput, "%s is not a supported image", path).
			WithDetail("path", path)
	}

	icon := Icon{
		Source: path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Retina: filesystem.IsRetina(path),
		Data:   raw,
	}
	if format == "png" {
		return icon, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrInvalidInput, "cannot decode icon %s", path).
			WithDetail("path", path)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Icon{}, errors.Wrapf(err, errors.ErrInternal, "cannot encode icon %s as png", path)
	}
	icon.Data = buf.Bytes()
	return icon, nil
}

// LoadIcons loads every declared icon file. The first unresolvable pattern
// or unreadable image aborts.
func LoadIcons(fsys filesystem.FS, paths []string) ([]Icon, error) {
	icons := make([]Icon, 0, len(paths))
	for _, path := range paths {
		icon, err := LoadIcon(fsys, path)
		if err != nil {
			return nil, err
		}
		icons = append(icons, icon)
	}
	return icons, nil
}
