package namegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_FreshIsMonotonicAndHinted(t *testing.T) {
	g := New()

	require.Equal(t, "x.0", g.Fresh("x"))
	require.Equal(t, "x.1", g.Fresh("x"))
	require.Equal(t, "y.2", g.Fresh("y"))
}

func TestGenerator_NeverCollidesAcrossHints(t *testing.T) {
	g := New()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		for _, hint := range []string{"a", "b", "x"} {
			name := g.Fresh(hint)
			require.False(t, seen[name], "duplicate fresh name %q", name)
			seen[name] = true
		}
	}
}

func TestGenerator_Reset(t *testing.T) {
	g := New()
	g.Fresh("x")
	g.Fresh("x")
	g.Reset()

	require.Equal(t, "x.0", g.Fresh("x"))
}
