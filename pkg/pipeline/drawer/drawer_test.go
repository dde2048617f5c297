package drawer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/pkg/pipeline/drawer"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	d := drawer.NewDOTDrawer(buf)

	require.NoError(t, d.AddStep("a"))
	require.NoError(t, d.AddStep("a"))
	require.NoError(t, d.AddStep("b"))
	require.NoError(t, d.AddLink("a", "b"))
	require.NoError(t, d.AddLink("a", "b"))
	assert.Error(t, d.AddLink("b", "a"))
	assert.Error(t, d.AddLink("a", "missing"))

	d.SetLabel("b", "step b")
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.Contains(t, out, `rankdir="TB"`)
	assert.Contains(t, out, `"a" -> "b"`)
	assert.Contains(t, out, `label="step b"`)
}
