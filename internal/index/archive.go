package index

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// indexName returns the index file name an archive entry maps to, or ""
// when the entry is not a top-level index file.
func indexName(entry string) string {
	name := path.Clean(strings.TrimPrefix(entry, "./"))
	for _, n := range Names {
		if name == n {
			return n
		}
	}
	return ""
}

// extract copies the index files of the archive at archivePath into slot
// and ignores everything else. It returns the names it extracted.
func extract(archivePath, slot string) ([]string, error) {
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return extractTar(archivePath, slot, func(r io.Reader) (io.Reader, func(), error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, fmt.Errorf("creating zstd reader: %w", err)
			}
			return d, d.Close, nil
		})
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return extractTar(archivePath, slot, func(r io.Reader) (io.Reader, func(), error) {
			g, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, fmt.Errorf("creating gzip reader: %w", err)
			}
			return g, func() { g.Close() }, nil
		})
	case strings.HasSuffix(lower, ".tar"):
		return extractTar(archivePath, slot, func(r io.Reader) (io.Reader, func(), error) {
			return r, func() {}, nil
		})
	default:
		return extractZip(archivePath, slot)
	}
}

func extractZip(archivePath, slot string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer zr.Close()

	var extracted []string
	for _, f := range zr.File {
		name := indexName(f.Name)
		if name == "" || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return extracted, fmt.Errorf("opening %s in %s: %w", f.Name, archivePath, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxIndexSize))
		rc.Close()
		if err != nil {
			return extracted, fmt.Errorf("reading %s in %s: %w", f.Name, archivePath, err)
		}
		if err := writeFile(slot, name, data); err != nil {
			return extracted, err
		}
		extracted = append(extracted, name)
	}
	return extracted, nil
}

type decompressor func(io.Reader) (io.Reader, func(), error)

func extractTar(archivePath, slot string, decompress decompressor) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer f.Close()

	r, closeFn, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var extracted []string
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("reading archive %s: %w", archivePath, err)
		}
		name := indexName(hdr.Name)
		if name == "" || hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(tr, maxIndexSize))
		if err != nil {
			return extracted, fmt.Errorf("reading %s in %s: %w", hdr.Name, archivePath, err)
		}
		if err := writeFile(slot, name, data); err != nil {
			return extracted, err
		}
		extracted = append(extracted, name)
	}
	return extracted, nil
}
