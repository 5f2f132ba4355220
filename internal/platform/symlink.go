package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// sidecarSuffix marks the file recording a link target when a native
// symlink could not be created.
const sidecarSuffix = ".target"

// CreateSymlink creates a symbolic link at link pointing to target.
// On Windows it attempts os.Symlink first (requires developer mode), then
// falls back to copying the target and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyLinkTarget(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}
	// Sidecar failure is non-fatal: the copy already carries the content.
	_ = os.WriteFile(link+sidecarSuffix, []byte(target), 0644)
	return nil
}

// ReadSymlinkTarget returns the target of a symlink, consulting the .target
// sidecar on Windows when the link was materialized as a copy.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}
	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no %s sidecar found: %w", sidecarSuffix, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// CopySymlink reproduces the symlink at src as a new symlink at dst with the
// same (unresolved) target. Relative targets stay relative, so links inside a
// copied tree keep pointing inside the copy.
func CopySymlink(src, dst string) error {
	target, err := ReadSymlinkTarget(src)
	if err != nil {
		return err
	}
	return CreateSymlink(target, dst)
}

// copyLinkTarget copies the file a link would point at to dst. Relative
// targets resolve against the directory containing dst.
func copyLinkTarget(target, dst string) error {
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(dst), target)
	}

	in, err := os.Open(resolved)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
