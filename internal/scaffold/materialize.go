package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/agentx-labs/expertkit/internal/platform"
)

// Materialize recursively copies the template at src to dst and returns the
// copied entries relative to dst, in walk order.
//
// dst must not exist: an existing path (file, directory or dangling link)
// fails with E_DESTINATION_EXISTS and is left untouched. The parent of dst is
// created as needed. Regular files keep their permission bits, symlinks are
// recreated with the same target, and other special files are skipped.
func Materialize(src, dst string) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(errors.ETemplateNotFound,
				"template not found at "+src, map[string]string{errors.DetailPath: src})
		}
		return nil, errors.FromFS(err, errors.ETemplateNotFound, "reading template", src)
	}
	if !info.IsDir() {
		return nil, errors.NewWithDetails(errors.ETemplateNotFound,
			"template at "+src+" is not a directory", map[string]string{errors.DetailPath: src})
	}

	if _, err := os.Lstat(dst); err == nil {
		return nil, destinationExists(dst)
	} else if !os.IsNotExist(err) {
		return nil, errors.FromFS(err, errors.EIO, "checking destination", dst)
	}

	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, paths.DirPerm); err != nil {
		return nil, errors.FromFS(err, errors.EIO, "creating directory", parent)
	}

	// Mkdir, not MkdirAll: losing a race to another writer must still
	// surface as an existing destination rather than a merge.
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		if os.IsExist(err) {
			return nil, destinationExists(dst)
		}
		return nil, errors.FromFS(err, errors.EIO, "creating directory", dst)
	}

	var copied []string
	if err := copyTree(src, dst, "", &copied); err != nil {
		return copied, err
	}
	return copied, nil
}

func destinationExists(dst string) error {
	return errors.NewWithDetails(errors.EDestinationExists,
		"destination "+dst+" already exists; refusing to overwrite or merge",
		map[string]string{errors.DetailPath: dst})
}

// copyTree copies the contents of srcDir into the existing dstDir.
func copyTree(srcDir, dstDir, rel string, copied *[]string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return errors.FromFS(err, errors.EIO, "reading directory", srcDir)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())
		relPath := filepath.ToSlash(filepath.Join(rel, entry.Name()))

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			if err := platform.CopySymlink(srcPath, dstPath); err != nil {
				return errors.FromFS(err, errors.EIO, "copying symlink", srcPath)
			}
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return errors.FromFS(err, errors.EIO, "reading", srcPath)
			}
			if err := os.Mkdir(dstPath, info.Mode().Perm()); err != nil {
				return errors.FromFS(err, errors.EIO, "creating directory", dstPath)
			}
			*copied = append(*copied, relPath)
			if err := copyTree(srcPath, dstPath, relPath, copied); err != nil {
				return err
			}
			continue
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		default:
			continue
		}
		*copied = append(*copied, relPath)
	}
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.FromFS(err, errors.EFileNotFound, "reading", src)
	}
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.FromFS(err, errors.EIO, "writing", dst)
	}
	return nil
}
