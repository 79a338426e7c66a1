package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CatenateTar appends every entry of the src tar archive onto dst. A
// tar archive always carries an end-of-archive trailer, so the two files
// cannot simply be concatenated byte-wise; instead both are re-streamed
// entry by entry into a fresh archive that replaces dst, which drops the
// intermediate trailers and writes a single valid one at the end.
func CatenateTar(dst, src string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tarcat-*")
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	tw := tar.NewWriter(tmp)
	for _, path := range []string{dst, src} {
		if err := appendEntries(tw, path); err != nil {
			_ = tw.Close()
			_ = tmp.Close()
			return err
		}
	}
	if err := tw.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("finalizing %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", dst, err)
	}
	return os.Rename(tmpName, dst)
}

// appendEntries copies all entries of the archive at path into tw.
func appendEntries(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("appending %s from %s: %w", hdr.Name, path, err)
		}
		if _, err := io.Copy(tw, tr); err != nil {
			return fmt.Errorf("appending %s from %s: %w", hdr.Name, path, err)
		}
	}
}
