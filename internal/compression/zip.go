package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
)

func (x *extractor) zip(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to create zip reader: %w", err)
	}

	for _, f := range zr.File {
		if !f.Mode().IsRegular() {
			continue
		}
		rel, ok := x.target(f.Name)
		if !ok {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		err = x.write(rel, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
