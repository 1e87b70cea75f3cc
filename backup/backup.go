// Package backup makes timestamped copies of the inventory file and restores them.
//
// A backup is a byte-for-byte copy named backup_YYYYMMDD_HHMMSS followed by
// the extension of the inventory file, optionally gzip compressed with a
// ".gz" suffix.
package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
)

// DefaultDir is the backup directory used when none is configured.
const DefaultDir = "backups"

const (
	prefix     = "backup_"
	timeLayout = "20060102_150405"
	gzExt      = ".gz"
)

// Info describes a backup file.
type Info struct {
	Name       string
	Path       string
	Time       time.Time // Time encoded in the name.
	Size       int64     // Size on disk.
	Compressed bool
	Digest     uint64 // xxhash of the uncompressed content.
}

// Name returns the backup file name for an inventory file with extension ext, taken at t.
func Name(t time.Time, ext string, compress bool) string {
	name := prefix + t.Format(timeLayout) + ext
	if compress {
		name += gzExt
	}
	return name
}

// Create copies src into dir, creating dir if needed, and returns the path of the copy.
func Create(src, dir string, t time.Time, compress bool) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("cannot back up %q: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create backup directory: %w", err)
	}
	dst := filepath.Join(dir, Name(t, filepath.Ext(src), compress))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("cannot create backup: %w", err)
	}
	if err := copyTo(out, in, compress); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("cannot write backup: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("cannot write backup: %w", err)
	}
	return dst, nil
}

// copyTo copies r into w, gzip compressed if compress is set.
func copyTo(w io.Writer, r io.Reader, compress bool) error {
	if !compress {
		_, err := io.Copy(w, r)
		return err
	}
	gz := gzip.NewWriter(w)
	if _, err := io.Copy(gz, r); err != nil {
		return err
	}
	return gz.Close()
}

// Read returns the uncompressed content of a backup.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, gzExt) {
		return data, nil
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot read compressed backup %q: %w", path, err)
	}
	defer gz.Close()
	data, err = io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("cannot read compressed backup %q: %w", path, err)
	}
	return data, nil
}

// Restore overwrites dst with the content of the backup at path.
//
// The backup is fully read before dst is touched, so a corrupt backup leaves
// dst unchanged.
func Restore(path, dst string) error {
	data, err := Read(path)
	if err != nil {
		return fmt.Errorf("cannot restore: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("cannot restore: %w", err)
	}
	return nil
}

// Digest returns the xxhash of a file's content, to compare it with backups.
func Digest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// List returns the backups found in dir, newest first. A missing dir has no backups.
func List(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list backups: %w", err)
	}
	var infos []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		t, ok := parseName(e.Name())
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("cannot list backups: %w", err)
		}
		path := filepath.Join(dir, e.Name())
		data, err := Read(path)
		if err != nil {
			return nil, fmt.Errorf("cannot list backups: %w", err)
		}
		infos = append(infos, Info{
			Name:       e.Name(),
			Path:       path,
			Time:       t,
			Size:       fi.Size(),
			Compressed: strings.HasSuffix(e.Name(), gzExt),
			Digest:     xxhash.Sum64(data),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		if c := b.Time.Compare(a.Time); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return infos, nil
}

// parseName extracts the time encoded in a backup file name.
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, prefix) || len(name) < len(prefix)+len(timeLayout) {
		return time.Time{}, false
	}
	stamp := name[len(prefix) : len(prefix)+len(timeLayout)]
	t, err := time.ParseInLocation(timeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
