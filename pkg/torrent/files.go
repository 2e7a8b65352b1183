package torrent

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-errors/errors"
)

var (
	ErrRootNotSet           = errors.New("the torrent root folder is not set")
	ErrRootIsFilesystemRoot = errors.New("the filesystem root can't be used as a torrent root folder")
	ErrRootNotCommon        = errors.New("the torrent root folder is not common")
)

const (
	MinPieceSize = 16 * 1024
	MaxPieceSize = 16 * 1024 * 1024

	// AutoPieceSize aims for about this many pieces
	targetPieces = 1500
)

// ScanFolder lists the regular files below root with "/" separated paths
// relative to root, sorted by path
func ScanFolder(root string) ([]File, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	files := []File{}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// CheckRoot rejects an unset root folder and the filesystem root
func CheckRoot(root string) error {
	if root == "" {
		return ErrRootNotSet
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	if isFilesystemRoot(abs) {
		return ErrRootIsFilesystemRoot
	}
	return nil
}

func isFilesystemRoot(path string) bool {
	return filepath.Dir(path) == path
}

// CommonRoot finds the deepest folder holding every one of paths and returns
// the files relative to it, in the given order
func CommonRoot(paths []string) (string, []File, error) {
	if len(paths) == 0 {
		return "", nil, ErrRootNotSet
	}

	absPaths := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", nil, errors.Wrap(err, 0)
		}
		absPaths = append(absPaths, abs)
	}

	root := filepath.Dir(absPaths[0])
	for _, path := range absPaths[1:] {
		if filepath.VolumeName(path) != filepath.VolumeName(root) {
			return "", nil, ErrRootNotCommon
		}
		for !isWithin(path, root) && !isFilesystemRoot(root) {
			root = filepath.Dir(root)
		}
	}
	if isFilesystemRoot(root) {
		return "", nil, ErrRootIsFilesystemRoot
	}

	files := make([]File, 0, len(absPaths))
	for _, path := range absPaths {
		info, err := os.Stat(path)
		if err != nil {
			return "", nil, errors.Wrap(err, 0)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", nil, errors.Wrap(err, 0)
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Size: info.Size()})
	}
	return root, files, nil
}

func isWithin(path string, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

// AutoPieceSize picks a power of two piece size giving roughly 1500 pieces,
// kept between 16 KiB and 16 MiB
func AutoPieceSize(totalSize int64) int64 {
	size := int64(MinPieceSize)
	for size < MaxPieceSize && totalSize/size > targetPieces {
		size *= 2
	}
	return size
}

// IsValidPieceSize accepts powers of two of at least 16 KiB
func IsValidPieceSize(size int64) bool {
	return size >= MinPieceSize && size&(size-1) == 0
}
