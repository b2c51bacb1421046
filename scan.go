package ocrconv

// Input directory scanning and image to annotation file pairing.

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
)

// DefaultImageExts is the default set of recognized image file extensions.
var DefaultImageExts = []string{"jpg", "jpeg", "png"}

// DirContents holds the partitioned entries of an input directory. Both
// lists contain bare file names in lexicographic order.
type DirContents struct {
	AnnotationFiles []string // Files with extension ".json".
	ImageFiles      []string // Files with a recognized image extension.
}

// ScanInputDir partitions the entries of dirPath into annotation files and
// image files. Extensions are matched case-insensitively against imageExts.
//
// Entries whose names start with a dot are ignored. Any other entry with an
// unrecognized extension is an error, as it indicates the directory is not a
// clean labelme output directory.
func ScanInputDir(dirPath string, imageExts []string) (DirContents, error) {
	entries, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return DirContents{}, fmt.Errorf("cannot read directory %q: %v", dirPath, err)
	}

	extSet := make(map[string]bool, len(imageExts))
	for _, ext := range imageExts {
		extSet[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	// ioutil.ReadDir returns entries sorted by name, so the partitioned
	// lists stay sorted.
	var contents DirContents
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}

		_, ext := splitName(name)
		switch {
		case ext == ".json":
			contents.AnnotationFiles = append(contents.AnnotationFiles, name)
		case extSet[strings.ToLower(strings.TrimPrefix(ext, "."))]:
			contents.ImageFiles = append(contents.ImageFiles, name)
		default:
			return DirContents{}, fmt.Errorf("unrecognized file %q in %q", name, dirPath)
		}
	}

	return contents, nil
}

// ListGroups returns the sorted names of the group subdirectories of root.
//
// A nil slice with a nil error means root directly contains files and is
// therefore a flat dataset rather than a root of group subdirectories.
func ListGroups(root string) ([]string, error) {
	entries, err := ioutil.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %v", root, err)
	}

	var groups []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !entry.IsDir() {
			return nil, nil
		}
		groups = append(groups, entry.Name())
	}

	return groups, nil
}

// annotationsByBase maps the base names of the given annotation files (with
// the extension stripped) to their full file names for exact-match pairing
// with images.
func annotationsByBase(files []string) map[string]string {
	mapping := make(map[string]string, len(files))
	for _, f := range files {
		base, _ := splitName(f)
		mapping[base] = f
	}
	return mapping
}

// splitName splits a file name into the base name and the extension
// (including the dot).
func splitName(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return name[:len(name)-len(ext)], ext
}
