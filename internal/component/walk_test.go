package component_test

import (
	"errors"
	"testing"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) component.ID {
	return component.ID{Group: "g", Name: name, Version: "1.0"}
}

func graph(root component.ID, nodes map[component.ID][]component.ID) component.Graph {
	g := component.Graph{Root: root, Nodes: make(map[component.ID][]component.Edge)}
	for from, targets := range nodes {
		for _, t := range targets {
			g.Nodes[from] = append(g.Nodes[from], component.Resolved(t))
		}
	}
	return g
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("breadth first in edge order", func(t *testing.T) {
		t.Parallel()

		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"): {id("z"), id("a")},
			id("z"):    {id("m")},
			id("a"):    {id("b")},
		})
		ids, err := component.Collect(g)
		require.NoError(t, err)
		assert.Equal(t, []component.ID{id("z"), id("a"), id("m"), id("b")}, ids)
	})

	t.Run("diamond yields shared dependency once", func(t *testing.T) {
		t.Parallel()

		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"):  {id("left"), id("right")},
			id("left"):  {id("shared")},
			id("right"): {id("shared")},
		})
		ids, err := component.Collect(g)
		require.NoError(t, err)
		assert.Equal(t, []component.ID{id("left"), id("right"), id("shared")}, ids)
	})

	t.Run("cycles terminate and exclude root", func(t *testing.T) {
		t.Parallel()

		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"): {id("a")},
			id("a"):    {id("b"), id("root")},
			id("b"):    {id("a")},
		})
		ids, err := component.Collect(g)
		require.NoError(t, err)
		assert.Equal(t, []component.ID{id("a"), id("b")}, ids)
	})

	t.Run("versions are distinct components", func(t *testing.T) {
		t.Parallel()

		v2 := component.ID{Group: "g", Name: "a", Version: "2.0"}
		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"): {id("a"), v2},
		})
		ids, err := component.Collect(g)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("empty graph", func(t *testing.T) {
		t.Parallel()

		ids, err := component.Collect(component.Graph{Root: id("root")})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("unresolved edge fails the walk", func(t *testing.T) {
		t.Parallel()

		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"): {id("a"), id("b")},
		})
		g.Nodes[id("b")] = []component.Edge{component.Unresolved("g:missing:+", "not found")}

		ids, err := component.Collect(g)
		require.Error(t, err)
		assert.Nil(t, ids)

		var gre *component.GraphResolutionError
		require.True(t, errors.As(err, &gre))
		assert.Equal(t, id("b"), gre.From)
		assert.Equal(t, "g:missing:+", gre.Edge.Requested)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("walker is one shot", func(t *testing.T) {
		t.Parallel()

		g := graph(id("root"), map[component.ID][]component.ID{
			id("root"): {id("a")},
		})
		w := component.Walk(g)
		require.True(t, w.Next())
		assert.Equal(t, id("a"), w.ID())
		assert.False(t, w.Next())
		assert.False(t, w.Next())
		assert.NoError(t, w.Err())
	})
}

func TestParseID(t *testing.T) {
	t.Parallel()

	got, err := component.ParseID("io.netty:netty-handler:4.1.68.Final")
	require.NoError(t, err)
	assert.Equal(t, component.ID{Group: "io.netty", Name: "netty-handler", Version: "4.1.68.Final"}, got)
	assert.Equal(t, "io.netty:netty-handler:4.1.68.Final", got.String())

	for _, bad := range []string{"", "g:a", "g::1", "g:a:1:x"} {
		_, err := component.ParseID(bad)
		assert.Error(t, err, bad)
	}
}
