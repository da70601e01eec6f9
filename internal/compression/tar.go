package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// decompressor opens the compression layer around a tar stream.
func decompressor(data []byte, format Format) (io.Reader, func(), error) {
	r := bytes.NewReader(data)
	switch format {
	case FormatTarGz:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, func() { gzr.Close() }, nil
	case FormatTarXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, func() {}, nil
	case FormatTarBz2:
		return bzip2.NewReader(r), func() {}, nil
	}
	return nil, nil, fmt.Errorf("not a tar format: %s", format)
}

func (x *extractor) tar(data []byte, format Format) error {
	r, closeFn, err := decompressor(data, format)
	if err != nil {
		return err
	}
	defer closeFn()

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		rel, ok := x.target(header.Name)
		if !ok {
			continue
		}
		if err := x.write(rel, tr); err != nil {
			return err
		}
	}
}
