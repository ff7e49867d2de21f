package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/stage"
	"github.com/vk/pipecut/internal/testutil"
)

func TestReplace(t *testing.T) {
	t.Run("consumers rewire to the replacement", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		merged := stage.New("zip", "merged", f.Ch1, f.Ch2)
		ng, err := graph.Replace(g, f.ForkZip, merged)
		require.NoError(t, err)

		assert.Contains(t, f.End.Inputs, merged)
		assert.NotContains(t, f.End.Inputs, f.ForkZip)

		flat := ng.Flatten()
		assert.Contains(t, flat, merged)
		assert.NotContains(t, flat, f.ForkZip)
	})

	t.Run("a wrapping replacement keeps its upstream reference", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		ng, d, err := testutil.InsertDispatcher(g, f.MultiBr)
		require.NoError(t, err)

		assert.Equal(t, []*stage.Stage{f.MultiBr}, d.Inputs)
		assert.Equal(t, []*stage.Stage{d}, f.Ch1.Inputs)
		assert.Equal(t, []*stage.Stage{d}, f.Ch2.Inputs)

		flat := ng.Flatten()
		assert.Contains(t, flat, d)
		assert.Contains(t, flat, f.MultiBr)
	})

	t.Run("replacing the root changes the root", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		ng, ph, err := testutil.SwapForPlaceholder(g, f.End)
		require.NoError(t, err)

		root, _, err := ng.Root()
		require.NoError(t, err)
		assert.Same(t, ph, root)
		assert.Equal(t, []*stage.Stage{ph}, ng.Flatten(), "placeholder has no inputs, so the old graph is detached")
	})

	t.Run("replacement inside a cycle", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		ng, d, err := testutil.InsertDispatcher(g, f.CirSrc)
		require.NoError(t, err)

		// cir_map -> d -> cir_src -> cir_map remains a cycle.
		assert.Equal(t, []*stage.Stage{d}, f.CirMap.Inputs)
		assert.Equal(t, []*stage.Stage{f.CirSrc}, d.Inputs)
		assert.Contains(t, f.CirSrc.Inputs, f.CirMap)
		assert.Contains(t, ng.Flatten(), d)
	})

	t.Run("error cases", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		_, err := graph.Replace(g, stage.New("map", "stranger"), stage.New("map", "new"))
		assert.ErrorIs(t, err, graph.ErrStageNotFound)

		_, err = graph.Replace(graph.Graph{}, f.End, f.End)
		assert.ErrorIs(t, err, graph.ErrMalformedGraph)
	})
}

func TestRemove(t *testing.T) {
	t.Run("consumers adopt the removed stage's inputs", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		ng, err := graph.Remove(g, f.ForkZip)
		require.NoError(t, err)

		assert.Equal(t, []*stage.Stage{f.SingleBr, f.Ch1, f.Ch2, f.CirMap}, f.End.Inputs)
		assert.NotContains(t, ng.Flatten(), f.ForkZip)
	})

	t.Run("removing a single-input root promotes its input", func(t *testing.T) {
		a := stage.New("source", "a")
		b := stage.New("map", "b", a)
		c := stage.New("map", "c", b)

		ng, err := graph.Remove(graph.Traverse(c), c)
		require.NoError(t, err)

		root, _, err := ng.Root()
		require.NoError(t, err)
		assert.Same(t, b, root)
	})

	t.Run("error cases", func(t *testing.T) {
		f := testutil.NewFixture()
		g := f.Graph()

		_, err := graph.Remove(g, f.End)
		assert.ErrorContains(t, err, "cannot remove sink stage")

		_, err = graph.Remove(g, stage.New("map", "stranger"))
		assert.ErrorIs(t, err, graph.ErrStageNotFound)

		_, err = graph.Remove(graph.Graph{}, f.End)
		assert.ErrorIs(t, err, graph.ErrMalformedGraph)
	})
}
