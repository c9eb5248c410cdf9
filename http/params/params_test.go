package params_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TopShelfBullard/rails/http/params"
)

func TestBagSet(t *testing.T) {
	tcs := []struct {
		name  string
		pairs []params.Pair
		path  []string
		leaf  string
	}{
		{"Flat", []params.Pair{{"action", "show"}}, []string{"action"}, "show"},
		{"One-Level", []params.Pair{{"post[title]", "hi"}}, []string{"post", "title"}, "hi"},
		{
			"Two-Levels",
			[]params.Pair{{"post[address][street]", "Main St"}},
			[]string{"post", "address", "street"},
			"Main St",
		},
		{
			"Later-Write-Wins",
			[]params.Pair{{"post[title]", "first"}, {"post[title]", "second"}},
			[]string{"post", "title"},
			"second",
		},
		{
			"Siblings",
			[]params.Pair{{"post[address][street]", "Main St"}, {"post[address][city]", "Chicago"}},
			[]string{"post", "address", "city"},
			"Chicago",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			b := params.Parse(tc.pairs)

			v, ok := b.Fetch(tc.path...)
			require.True(t, ok)

			s, ok := v.String()
			require.True(t, ok)
			require.Equal(t, tc.leaf, s)
		})
	}
}

func TestBagOrderIndependence(t *testing.T) {
	// Arrange
	forward := []params.Pair{
		{"post[address][street]", "Main St"},
		{"post[address][city]", "Chicago"},
		{"post[title]", "hi"},
	}
	backward := []params.Pair{forward[2], forward[1], forward[0]}

	// Act
	a, b := params.Parse(forward), params.Parse(backward)

	// Assert
	for _, path := range [][]string{
		{"post", "title"},
		{"post", "address", "street"},
		{"post", "address", "city"},
	} {
		av, ok := a.Fetch(path...)
		require.True(t, ok)
		bv, ok := b.Fetch(path...)
		require.True(t, ok)
		require.Equal(t, av, bv)
	}
}

func TestBagFlattenRoundTrip(t *testing.T) {
	tcs := []struct {
		name  string
		pairs []params.Pair
	}{
		{"Flat", []params.Pair{{"action", "show"}, {"id", "1"}}},
		{"Nested", []params.Pair{{"post[address][street]", "Main St"}, {"post[title]", "hi"}}},
		{"Deep", []params.Pair{{"a[b][c][d]", "v"}}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			orig := params.Parse(tc.pairs)
			again := params.Parse(orig.Flatten())

			require.Equal(t, orig.Flatten(), again.Flatten())
			for _, p := range tc.pairs {
				require.Contains(t, again.Flatten(), p)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	vals := url.Values{
		"controller":    []string{"project"},
		"post[title]":   []string{"hi"},
		"post[body]":    []string{"text"},
		"action":        []string{"update"},
		"post[票][note]": []string{"unicode key"},
	}

	b := params.ParseValues(vals)

	require.Equal(t, "project", b.Leaf("controller"))
	require.Equal(t, "update", b.Leaf("action"))

	v, ok := b.Fetch("post", "票", "note")
	require.True(t, ok)
	s, _ := v.String()
	require.Equal(t, "unicode key", s)

	// repeated parses of the same values produce identical key order
	require.Equal(t, b.Keys(), params.ParseValues(vals).Keys())
}

func TestBagLeafAbsentOrNested(t *testing.T) {
	b := params.Parse([]params.Pair{{"post[title]", "hi"}})

	require.Zero(t, b.Leaf("missing"))
	require.Zero(t, b.Leaf("post"))

	_, ok := b.Fetch("post", "missing")
	require.False(t, ok)
}
