package declarative

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"dogctl/faults"
)

// CollectJSONFiles returns every .json file under root, sorted
// lexicographically by path. Other files are skipped.
func CollectJSONFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "failed to scan "+root, err)
	}

	sort.Strings(files)
	return files, nil
}
