package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultContent(t *testing.T) {
	content := DefaultContent()

	assert.Len(t, content.Conflicts, 16)
	assert.Len(t, content.CodeReviews, 14)
	assert.Equal(t, "Code review: Can you make it more enterprise-grade™?", content.CodeReviews[1])
}

func TestContentYAML(t *testing.T) {
	content := Content{
		Conflicts:   []string{"CONFLICT: tabs only"},
		CodeReviews: []string{"Code review: more patterns"},
	}

	data, err := yaml.Marshal(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadContent(path)
	require.NoError(t, err)
	assert.Equal(t, content, loaded)
}

func TestLoadContentPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conflicts: []\n"), 0644))

	loaded, err := LoadContent(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Conflicts, "conflicts are disabled")
	assert.Len(t, loaded.CodeReviews, 14, "code reviews keep the defaults")
}

func TestLoadContentErrors(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conflicts: [unterminated"), 0644))
	_, err = LoadContent(path)
	assert.Error(t, err)
}

func TestLoadContentEmptyPath(t *testing.T) {
	loaded, err := LoadContent("")
	require.NoError(t, err)
	assert.Len(t, loaded.Conflicts, 16)
}
