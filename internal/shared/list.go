package shared

import (
	"os"
)

// Entry is one item of the shared root.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// List returns every entry of root, hidden and special files included,
// without descending into subdirectories. Order is the order of os.ReadDir.
func List(root string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, de := range dirEntries {
		e := Entry{Name: de.Name(), IsDir: de.IsDir()}

		// a file removed between ReadDir and Info is still listed
		if info, infoErr := de.Info(); infoErr == nil && !de.IsDir() {
			e.Size = info.Size()
		}

		entries = append(entries, e)
	}

	return entries, nil
}
