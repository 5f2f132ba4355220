package platform

import (
	"os"
	"runtime"
)

// SecretFilePerm is applied to files that hold credentials, such as a
// generated project's .env.
const SecretFilePerm os.FileMode = 0600

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// SecureFile restricts path to owner read/write.
func SecureFile(path string) error {
	return Chmod(path, SecretFilePerm)
}
