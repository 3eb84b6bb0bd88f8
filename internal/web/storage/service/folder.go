package service

import (
	"regexp"
	"strings"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

var (
	invalidFolderChars = regexp.MustCompile(`[^a-zA-Z0-9\-_/]`)
	repeatedSlashes    = regexp.MustCompile(`/+`)
)

// SanitizeFolder strips a client-supplied folder path down to
// [A-Za-z0-9-_/], collapses repeated slashes and trims the edges.
func SanitizeFolder(folder string) string {
	folder = invalidFolderChars.ReplaceAllString(folder, "")
	folder = repeatedSlashes.ReplaceAllString(folder, "/")
	return strings.Trim(folder, "/")
}

// Folder is one node of the derived folder listing.
type Folder struct {
	Name      string              `json:"name"`
	Files     []*model.FileRecord `json:"files"`
	FileCount int                 `json:"fileCount"`
	TotalSize int64               `json:"totalSize"`
}

// FolderStructure groups files by the folder component of their storage key.
// Keys shaped `<prefix>/<name>` sit at the root; deeper keys contribute the
// middle components as the folder path.
func FolderStructure(files []*model.FileRecord) (folders map[string]*Folder, root []*model.FileRecord) {
	folders = map[string]*Folder{}
	root = []*model.FileRecord{}

	for _, file := range files {
		parts := strings.Split(file.StorageKey, "/")
		if len(parts) <= 2 {
			root = append(root, file)
			continue
		}

		path := strings.Join(parts[1:len(parts)-1], "/")
		f := folders[path]
		if f == nil {
			f = &Folder{Name: path, Files: []*model.FileRecord{}}
			folders[path] = f
		}
		f.Files = append(f.Files, file)
		f.FileCount++
		f.TotalSize += file.Size
	}

	return folders, root
}

// SearchFiles linearly filters files whose name, content type or storage key
// contains the query, case-insensitive.
func SearchFiles(files []*model.FileRecord, query string) []*model.FileRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return files
	}

	matched := []*model.FileRecord{}
	for _, file := range files {
		if strings.Contains(strings.ToLower(file.Filename), query) ||
			strings.Contains(strings.ToLower(file.ContentType), query) ||
			strings.Contains(strings.ToLower(file.StorageKey), query) {
			matched = append(matched, file)
		}
	}

	return matched
}
