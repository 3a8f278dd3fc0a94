package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "src/app/app.routes.ts", want: "src/app/app.routes.ts"},
		{in: "./src//app/../app/x.ts", want: "src/app/x.ts"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "../outside.ts", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Clean(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// treeContract runs the same checks against every Tree implementation.
func treeContract(t *testing.T, tree Tree) {
	t.Helper()

	assert.False(t, tree.Exists("a/b.txt"))

	_, err := tree.Read("a/b.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = tree.Overwrite("a/b.txt", "x")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, tree.Write("a/b.txt", "first"))
	assert.True(t, tree.Exists("a/b.txt"))

	got, err := tree.Read("a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	require.NoError(t, tree.Write("a/b.txt", "second"))
	require.NoError(t, tree.Overwrite("a/b.txt", "third"))

	got, err = tree.Read("./a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "third", got)

	assert.Error(t, tree.Write("../escape.txt", "x"))
	assert.False(t, tree.Exists("a"))
}

func TestDiskTree(t *testing.T) {
	root := t.TempDir()
	tree := NewDiskTree(root)

	treeContract(t, tree)

	data, err := os.ReadFile(filepath.Join(root, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "third", string(data))
	assert.Equal(t, root, tree.Root())
}

func TestMemTree(t *testing.T) {
	tree := NewMemTree(nil)

	treeContract(t, tree)

	assert.Equal(t, []string{"a/b.txt"}, tree.Paths())
}

func TestNewMemTree_CleansPaths(t *testing.T) {
	tree := NewMemTree(map[string]string{"./x/y.ts": "y", "../bad": "z"})

	assert.True(t, tree.Exists("x/y.ts"))
	assert.Equal(t, []string{"x/y.ts"}, tree.Paths())
}
