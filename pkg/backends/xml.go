package backends

import (
	"github.com/beevik/etree"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
)

// WriteDocument writes an XML document, creating parent directories
func WriteDocument(fsys filesystem.FS, path string, doc *etree.Document) error {
	w, err := filesystem.CreateFile(fsys, path)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(w); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	return nil
}
