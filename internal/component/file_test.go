package component_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
root: com.example:app:1.0
toolchain: "1.8"
components:
  - id: com.example:app:1.0
    dependencies:
      - g:a:1.0
      - id: g:b:2.0
  - id: g:a:1.0
    archive: libs/a-1.0-javadoc.jar
    dependencies: ["g:b:2.0"]
  - id: g:b:2.0
    skip: true
`)
	l, err := component.LoadFile(path)
	require.NoError(t, err)

	a := component.ID{Group: "g", Name: "a", Version: "1.0"}
	b := component.ID{Group: "g", Name: "b", Version: "2.0"}
	assert.Equal(t, component.ID{Group: "com.example", Name: "app", Version: "1.0"}, l.Graph.Root)
	assert.Equal(t, "1.8", l.Toolchain)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "libs/a-1.0-javadoc.jar"), l.Archives[a])
	assert.True(t, l.Skipped[b])

	ids, err := component.Collect(l.Graph)
	require.NoError(t, err)
	assert.Equal(t, []component.ID{a, b}, ids)
}

func TestLoadFile_JSON(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `{"root": "r:r:1", "components": [{"id": "r:r:1", "dependencies": ["g:a:1.0"]}]}`)
	l, err := component.LoadFile(path)
	require.NoError(t, err)

	ids, err := component.Collect(l.Graph)
	require.NoError(t, err)
	assert.Equal(t, []component.ID{{Group: "g", Name: "a", Version: "1.0"}}, ids)
}

func TestLoadFile_Unresolved(t *testing.T) {
	t.Parallel()

	path := writeGraph(t, `
root: r:r:1
components:
  - id: r:r:1
    dependencies:
      - requested: "g:missing:1.+"
        unresolved: "could not find g:missing"
`)
	l, err := component.LoadFile(path)
	require.NoError(t, err)

	_, err = component.Collect(l.Graph)
	var gre *component.GraphResolutionError
	require.True(t, errors.As(err, &gre))
	assert.Equal(t, "g:missing:1.+", gre.Edge.Requested)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad root":      "root: nope\n",
		"bad component": "root: r:r:1\ncomponents:\n  - id: broken\n",
		"duplicate":     "root: r:r:1\ncomponents:\n  - id: g:a:1\n  - id: g:a:1\n",
		"bad yaml":      "root: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := component.LoadFile(writeGraph(t, content))
			assert.Error(t, err)
		})
	}

	_, err := component.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
