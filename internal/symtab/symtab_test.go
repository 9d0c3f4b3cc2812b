package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hassan/cc-semant/internal/staticinit"
	"github.com/hassan/cc-semant/internal/types"
)

func TestSymbolTable_PutGetContains(t *testing.T) {
	st := New()

	require.False(t, st.Contains("x"))
	_, ok := st.Get("x")
	require.False(t, ok)

	st.Put("x", &Symbol{Type: types.Int, Attrs: LocalAttr{}})

	require.True(t, st.Contains("x"))
	sym, ok := st.Get("x")
	require.True(t, ok)
	require.True(t, sym.Type.Equals(types.Int))
}

func TestSymbolTable_PutReplaces(t *testing.T) {
	st := New()
	st.Put("g", &Symbol{Type: types.Int, Attrs: FunAttr{IsDefined: false, IsGlobal: true}})
	st.Put("g", &Symbol{Type: types.Int, Attrs: FunAttr{IsDefined: true, IsGlobal: true}})

	sym, _ := st.Get("g")
	fa, ok := sym.Attrs.(FunAttr)
	require.True(t, ok)
	require.True(t, fa.IsDefined)
}

func TestSymbolTable_Reset(t *testing.T) {
	st := New()
	st.Put("x", &Symbol{Type: types.Int, Attrs: LocalAttr{}})
	st.Reset()

	require.Equal(t, 0, st.Len())
	require.False(t, st.Contains("x"))
}

func TestSymbolTable_SortedNames(t *testing.T) {
	st := New()
	st.Put("zeta", &Symbol{Type: types.Int, Attrs: LocalAttr{}})
	st.Put("alpha", &Symbol{Type: types.Int, Attrs: LocalAttr{}})
	st.Put("mu", &Symbol{Type: types.Int, Attrs: LocalAttr{}})

	require.Equal(t, []string{"alpha", "mu", "zeta"}, st.SortedNames())
}

func TestStaticAttr_CarriesInitialValue(t *testing.T) {
	sym := &Symbol{
		Type: types.Int,
		Attrs: StaticAttr{
			IsGlobal: true,
			Init:     staticinit.Initial{Inits: []staticinit.StaticInit{staticinit.IntInit{Value: 4}}},
		},
	}

	sa, ok := sym.Attrs.(StaticAttr)
	require.True(t, ok)
	init, ok := sa.Init.(staticinit.Initial)
	require.True(t, ok)
	require.Len(t, init.Inits, 1)
}
