package loopctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_EnterAssignsFreshIncreasingIds(t *testing.T) {
	s := New()

	id1 := s.EnterWhile()
	id2 := s.EnterFor()

	require.NotEqual(t, id1, id2)
}

func TestStack_TagBreakContinueUseInnermostLoop(t *testing.T) {
	s := New()

	outer := s.EnterWhile()
	inner := s.EnterFor()

	got, err := s.TagBreak()
	require.NoError(t, err)
	require.Equal(t, inner, got)

	s.Exit()

	got, err = s.TagContinue()
	require.NoError(t, err)
	require.Equal(t, outer, got)

	s.Exit()
}

func TestStack_TagOutsideLoopIsOrphan(t *testing.T) {
	s := New()

	_, err := s.TagBreak()
	require.ErrorIs(t, err, ErrOrphanBreakContinue)

	_, err = s.TagContinue()
	require.ErrorIs(t, err, ErrOrphanBreakContinue)
}

func TestStack_Reset(t *testing.T) {
	s := New()
	s.EnterWhile()
	s.Reset()

	_, err := s.TagBreak()
	require.ErrorIs(t, err, ErrOrphanBreakContinue)

	id := s.EnterFor()
	require.Equal(t, uint64(0), id, "counter restarts from zero after Reset")
}
