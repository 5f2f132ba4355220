package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/paths"
)

// defaultTemplate is the project template shipped with the binary. The all:
// prefix keeps dotfiles such as .env.example.
//
//go:embed all:template/project_template
var defaultTemplate embed.FS

const embeddedRoot = "template/project_template"

// DefaultTemplate returns the embedded project template rooted at its top
// directory.
func DefaultTemplate() fs.FS {
	sub, err := fs.Sub(defaultTemplate, embeddedRoot)
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// InstallTemplate writes the embedded template to dst and returns the written
// files relative to dst. An existing dst is an error unless force is set, in
// which case it is removed first.
func InstallTemplate(dst string, force bool) ([]string, error) {
	if _, err := os.Lstat(dst); err == nil {
		if !force {
			return nil, errors.NewWithDetails(errors.EDestinationExists,
				"template already installed at "+dst+"; use --force to replace it",
				map[string]string{errors.DetailPath: dst})
		}
		if err := os.RemoveAll(dst); err != nil {
			return nil, errors.FromFS(err, errors.EIO, "removing", dst)
		}
	}

	src := DefaultTemplate()
	var written []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			if err := os.MkdirAll(target, paths.DirPerm); err != nil {
				return errors.FromFS(err, errors.EIO, "creating directory", target)
			}
			return nil
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, paths.FilePerm); err != nil {
			return errors.FromFS(err, errors.EIO, "writing", target)
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}
