package common

import (
	"io/fs"
	"path/filepath"
	"sync"
)

// OpenFileLimit restricts the number of concurrently open files
var OpenFileLimit = 64

// ConcurrentlyWalkDir recursively traverses a directory and calls `onFile` for each found file inside a goroutine.
// At most `OpenFileLimit` calls run at once; it returns after every call has completed.
func ConcurrentlyWalkDir(dirPath string, onFile func(file string)) error {
	limit := OpenFileLimit
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit) // limits number of concurrently open files
	var files []string

	err := filepath.WalkDir(dirPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.Type().IsRegular() {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, filePath := range files {
		wg.Add(1)
		guard <- struct{}{} // blocks while `limit` calls are in flight
		go func(path string) {
			defer wg.Done()
			defer func() { <-guard }()
			onFile(path)
		}(filePath)
	}
	wg.Wait()
	return nil
}
