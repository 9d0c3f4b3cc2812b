package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"valid", Position{Filename: "a.c", Line: 42, Column: 15, Offset: 100}, "a.c:42:15"},
		{"zero value", Position{}, ":0:0"},
		{"line one col one", Position{Filename: "main.c", Line: 1, Column: 1}, "main.c:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.pos.String())
		})
	}
}

func TestPosition_IsValid(t *testing.T) {
	require.True(t, Position{Filename: "a.c", Line: 1, Column: 1}.IsValid())
	require.False(t, Position{Filename: "a.c", Line: 0, Column: 1}.IsValid())
	require.False(t, Position{Filename: "a.c", Line: -1, Column: 1}.IsValid())
}

func TestPosition_BeforeAfter(t *testing.T) {
	earlier := Position{Offset: 10}
	later := Position{Offset: 20}

	require.True(t, earlier.Before(later))
	require.False(t, later.Before(earlier))
	require.False(t, earlier.Before(earlier))

	require.True(t, later.After(earlier))
	require.False(t, earlier.After(later))
	require.False(t, earlier.After(earlier))
}

func TestItoa(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{42, "42"},
		{-10, "-10"},
		{123456, "123456"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, itoa(tt.input))
	}
}

func TestSpan_String(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want string
	}{
		{
			name: "single line",
			span: Span{
				Start: Position{Filename: "a.c", Line: 42, Column: 15},
				End:   Position{Filename: "a.c", Line: 42, Column: 23},
			},
			want: "a.c:42:15-23",
		},
		{
			name: "multi line",
			span: Span{
				Start: Position{Filename: "a.c", Line: 42, Column: 15},
				End:   Position{Filename: "a.c", Line: 44, Column: 10},
			},
			want: "a.c:42:15-44:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.span.String())
		})
	}
}

func TestSpan_IsValid(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want bool
	}{
		{
			name: "valid",
			span: Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 10, Offset: 9}},
			want: true,
		},
		{
			name: "invalid start",
			span: Span{Start: Position{Line: 0, Column: 1}, End: Position{Line: 1, Column: 10, Offset: 9}},
			want: false,
		},
		{
			name: "invalid end",
			span: Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 0, Column: 10, Offset: 9}},
			want: false,
		},
		{
			name: "end before start",
			span: Span{Start: Position{Line: 1, Column: 10, Offset: 9}, End: Position{Line: 1, Column: 1, Offset: 0}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.span.IsValid())
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	span := Span{
		Start: Position{Line: 1, Column: 5, Offset: 4},
		End:   Position{Line: 1, Column: 10, Offset: 9},
	}

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"at start", Position{Line: 1, Column: 5, Offset: 4}, true},
		{"in middle", Position{Line: 1, Column: 7, Offset: 6}, true},
		{"at end", Position{Line: 1, Column: 10, Offset: 9}, true},
		{"before start", Position{Line: 1, Column: 3, Offset: 2}, false},
		{"after end", Position{Line: 1, Column: 15, Offset: 14}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, span.Contains(tt.pos))
		})
	}
}

func TestSpan_Length(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want int
	}{
		{"normal", Span{Start: Position{Line: 1, Offset: 10}, End: Position{Line: 1, Offset: 20}}, 10},
		{"zero length", Span{Start: Position{Offset: 10}, End: Position{Offset: 10}}, 0},
		{"invalid (end before start)", Span{Start: Position{Line: 1, Offset: 20}, End: Position{Line: 0, Offset: 10}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.span.Length())
		})
	}
}
