package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

// 🧪 TestResolveDirectory covers the walk, exclusion accounting, and path
// decomposition
func TestResolveDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{
		"a.png",
		"b.txt",
		".hidden/c.png",
		"d",
		"sub/e.png",
	})

	r := &Resolver{OutputDir: "/out"}
	tasks, err := r.Resolve(root)
	require.NoError(t, err)

	// Files under the root: a.png, b.txt, .hidden/c.png, d, sub/e.png.
	// Hidden-path and extensionless files are exclusions; the rest are
	// tasks. Together they account for every file.
	assert.Len(t, tasks, 3)
	assert.Equal(t, 2, r.Excluded)
	assert.Equal(t, 5, len(tasks)+r.Excluded, "every file is either a task or an exclusion")

	byBase := map[string]Task{}
	for _, task := range tasks {
		byBase[task.Base] = task
	}
	assert.Contains(t, byBase, "a")
	assert.Contains(t, byBase, "b")
	assert.Contains(t, byBase, "e")

	assert.Equal(t, "", byBase["a"].RelativeDir, "files directly under root have an empty relative dir")
	assert.Equal(t, "sub", byBase["e"].RelativeDir)
	assert.Equal(t, "png", byBase["e"].Ext)
	assert.Equal(t, filepath.Join("/out", "e.png"), byBase["e"].OutputPath)
}

// 🧪 TestResolveHiddenAlwaysExcluded checks that a valid extension does not
// rescue a file under a hidden directory
func TestResolveHiddenAlwaysExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{".cache/x.png"})

	r := &Resolver{OutputDir: "/out"}
	tasks, err := r.Resolve(root)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, r.Excluded)
}

// 🧪 TestResolveSingleFile checks single-file mode
func TestResolveSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"pic.jpeg"})

	r := &Resolver{OutputDir: "/out"}
	tasks, err := r.Resolve(filepath.Join(root, "pic.jpeg"))
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "", tasks[0].RelativeDir, "single-file mode always has an empty relative dir")
	assert.Equal(t, "pic", tasks[0].Base)
	assert.Equal(t, "jpeg", tasks[0].Ext)
	assert.Equal(t, filepath.Join("/out", "pic.png"), tasks[0].OutputPath)
}

// 🧪 TestResolveInvalidRoots checks the fatal root shapes
func TestResolveInvalidRoots(t *testing.T) {
	t.Run("nonexistent_path", func(t *testing.T) {
		r := &Resolver{OutputDir: "/out"}
		_, err := r.Resolve(filepath.Join(t.TempDir(), "does/not/exist"))
		assert.True(t, errors.Is(err, ErrNotImage))
	})

	t.Run("extensionless_file", func(t *testing.T) {
		root := t.TempDir()
		writeTree(t, root, []string{"d"})
		r := &Resolver{OutputDir: "/out"}
		_, err := r.Resolve(filepath.Join(root, "d"))
		assert.True(t, errors.Is(err, ErrNotImage))
	})
}

// 🧪 TestResolveExcludePatterns checks glob exclusions count toward the
// exclusion total
func TestResolveExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"a.png", "notes/b.txt", "c.txt"})

	r := &Resolver{OutputDir: "/out", Exclude: []string{"**/*.txt", "*.txt"}}
	tasks, err := r.Resolve(root)
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Base)
	assert.Equal(t, 2, r.Excluded)
}

// 🧪 TestTaskNaming checks extension splitting and display rendering
func TestTaskNaming(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, []string{"sub/archive.tar.gz"})

	r := &Resolver{OutputDir: "/out"}
	tasks, err := r.Resolve(root)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "archive.tar", tasks[0].Base, "split happens on the final dot")
	assert.Equal(t, "gz", tasks[0].Ext)

	dir, name := tasks[0].DisplayName()
	assert.Equal(t, "sub"+string(filepath.Separator), dir)
	assert.Equal(t, "archive.tar.gz", name)
}
