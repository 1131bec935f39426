package feed

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrArchiveUnreadable is returned when the archive's bytes cannot be
// read at all (I/O error), distinct from ErrNotAnArchive (bytes read
// fine but aren't a valid zip).
var ErrArchiveUnreadable = errors.New("feed: archive could not be read")

// ErrNotAnArchive is returned when the input doesn't parse as a zip.
var ErrNotAnArchive = errors.New("feed: input is not a valid zip archive")

// junkEntries matches archive members that should be silently skipped
// rather than treated as unknown GTFS files: macOS resource forks,
// dotfiles, and Windows thumbnail caches.
var junkEntries = ignore.CompileIgnoreLines(
	"__MACOSX/*",
	".*",
	"*/.*",
	"Thumbs.db",
	"*/Thumbs.db",
)

// Archive is a uniform view over a zip file, an in-memory zip buffer, or
// a directory: a flat map from logical GTFS file name to raw bytes.
// Subfolder rebases to the original per spec.md §4.3.
type Archive struct {
	Files          map[string][]byte
	HadSubfolder   bool
	SubfolderName  string
}

// OpenZipPath opens a seekable zip file on disk.
func OpenZipPath(path string) (*Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%w: %v", ErrArchiveUnreadable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotAnArchive, err)
	}
	defer r.Close()
	return buildArchive(&r.Reader)
}

// OpenZipBytes opens an in-memory zip buffer.
func OpenZipBytes(data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnArchive, err)
	}
	return buildArchive(r)
}

// OpenDirectory opens an already-extracted feed directory.
func OpenDirectory(dir string) (*Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveUnreadable, err)
	}
	raw := make(map[string][]byte)
	var names []string
	for _, e := range entries {
		if e.IsDir() || junkEntries.MatchesPath(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchiveUnreadable, err)
		}
		raw[e.Name()] = data
		names = append(names, e.Name())
	}
	return rebase(raw, names), nil
}

func buildArchive(r *zip.Reader) (*Archive, error) {
	raw := make(map[string][]byte)
	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || junkEntries.MatchesPath(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchiveUnreadable, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchiveUnreadable, err)
		}
		raw[f.Name] = data
		names = append(names, f.Name)
	}
	return rebase(raw, names), nil
}

// rebase detects a single common subfolder prefix across every archive
// member and, if found, strips it so file lookup by logical name still
// works; the original relative path is preserved on the Archive for the
// invalid_input_files_in_subfolder notice.
func rebase(raw map[string][]byte, names []string) *Archive {
	prefix, ok := commonSubfolder(names)
	files := make(map[string][]byte, len(raw))
	if !ok {
		for _, n := range names {
			files[n] = raw[n]
		}
		return &Archive{Files: files}
	}
	for _, n := range names {
		files[strings.TrimPrefix(n, prefix)] = raw[n]
	}
	return &Archive{Files: files, HadSubfolder: true, SubfolderName: strings.TrimSuffix(prefix, "/")}
}

func commonSubfolder(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	var prefix string
	for i, n := range names {
		idx := strings.Index(n, "/")
		if idx < 0 {
			return "", false
		}
		p := n[:idx+1]
		if i == 0 {
			prefix = p
		} else if p != prefix {
			return "", false
		}
	}
	return prefix, true
}

// Has reports whether the archive contains a member with this logical
// name (case-sensitive, matching the GTFS spec's literal file names).
func (a *Archive) Has(name string) bool {
	_, ok := a.Files[name]
	return ok
}
