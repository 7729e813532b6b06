// Package scan enumerates and classifies candidate media files. It is the
// thin front end of the batch: everything it emits becomes a job, and
// nothing here runs concurrently.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Category is the media class of a candidate file.
type Category string

const (
	Video Category = "video"
	Image Category = "image"
)

// Supported extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".3gp": true, ".ogv": true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".bmp": true,
	".tiff": true, ".tga": true, ".gif": true,
}

// Classify maps a path to its media category by extension. The boolean is
// false for anything that is neither video nor image.
func Classify(path string) (Category, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return Video, true
	case imageExtensions[ext]:
		return Image, true
	default:
		return "", false
	}
}

// File is one discovered candidate.
type File struct {
	Path     string
	Category Category
}

// Options selects which files Scan returns. Pattern is a basename glob and
// must be well-formed (config validation guarantees this before any batch
// starts); a malformed pattern surfaces here as an error all the same.
type Options struct {
	Dir       string
	Pattern   string
	Videos    bool
	Images    bool
	Recursive bool
}

// Scan walks opts.Dir, collects files whose basename matches the pattern
// and whose category is selected, and returns them sorted lexicographically
// for deterministic admission order. Without Recursive only the top level
// is inspected.
func Scan(opts Options) ([]File, error) {
	var files []File
	root := opts.Dir

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !opts.Recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		matched, err := filepath.Match(opts.Pattern, d.Name())
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}

		cat, ok := Classify(path)
		if !ok {
			return nil
		}
		if (cat == Video && opts.Videos) || (cat == Image && opts.Images) {
			files = append(files, File{Path: path, Category: cat})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
