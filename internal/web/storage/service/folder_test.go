package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

func TestSanitizeFolder(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"images", "images"},
		{"a/b/c", "a/b/c"},
		{"/leading/and/trailing/", "leading/and/trailing"},
		{"a//b///c", "a/b/c"},
		{"sp aces&sym!bols", "spacessymbols"},
		{"../../etc", "etc"},
		{"", ""},
		{"///", ""},
		{"под/folder", "folder"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, SanitizeFolder(c.in), "input %q", c.in)
	}
}

func storedFile(key string, size int64) *model.FileRecord {
	f := model.NewFileRecord()
	f.StorageKey = key
	f.Filename = key
	f.Size = size
	return f
}

func TestFolderStructure(t *testing.T) {
	files := []*model.FileRecord{
		storedFile("uploads/k1-a.png", 10),
		storedFile("uploads/images/k2-b.png", 20),
		storedFile("uploads/images/k3-c.png", 30),
		storedFile("uploads/docs/2024/k4-d.pdf", 40),
	}

	folders, root := FolderStructure(files)

	require.Len(t, root, 1)
	require.Equal(t, "uploads/k1-a.png", root[0].StorageKey)

	require.Len(t, folders, 2)
	require.Equal(t, 2, folders["images"].FileCount)
	require.Equal(t, int64(50), folders["images"].TotalSize)
	require.Equal(t, 1, folders["docs/2024"].FileCount)
	require.Equal(t, int64(40), folders["docs/2024"].TotalSize)
}

func TestSearchFiles(t *testing.T) {
	a := storedFile("uploads/k1-report.PDF", 1)
	a.Filename = "Annual-Report.pdf"
	a.ContentType = "application/pdf"
	b := storedFile("uploads/images/k2-cat.png", 1)
	b.Filename = "cat.png"
	b.ContentType = "image/png"
	files := []*model.FileRecord{a, b}

	require.Len(t, SearchFiles(files, "report"), 1)
	require.Len(t, SearchFiles(files, "PNG"), 1)
	require.Len(t, SearchFiles(files, "images/"), 1)
	require.Len(t, SearchFiles(files, ""), 2)
	require.Empty(t, SearchFiles(files, "missing"))
}
