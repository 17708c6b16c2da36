package git

import (
	"os"
	"path/filepath"
)

// IsBareRepo reports whether path has the layout of a bare repository.
func IsBareRepo(path string) bool {
	for _, name := range []string{"HEAD", "objects", "refs"} {
		if _, err := os.Stat(filepath.Join(path, name)); err != nil {
			return false
		}
	}
	return true
}
