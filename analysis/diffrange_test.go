package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsUnrelated(t *testing.T) {
	var d DiffRange
	assert.False(t, d.Related())
	assert.False(t, d.LinearRelated())
	assert.Equal(t, 0, d.Coeff)
	assert.Equal(t, 0, d.Low)
	assert.Equal(t, 0, d.High)
	assert.Equal(t, "unrelated", d.String())
}

func TestExactDiff(t *testing.T) {
	d := ExactDiff(1, 0)
	require.True(t, d.Related())
	assert.True(t, d.LinearRelated())
	assert.True(t, d.Certain())
	assert.Equal(t, 0, d.Low)
	assert.Equal(t, 1, d.High)

	c := ExactDiff(0, 42)
	require.True(t, c.Related())
	assert.False(t, c.LinearRelated())
	assert.True(t, c.Certain())
	assert.Equal(t, 42, c.Low)
	assert.Equal(t, 43, c.High)
	assert.Equal(t, "0*x + [42, 43)", c.String())
}

func TestBoundedDiff(t *testing.T) {
	d := BoundedDiff(0, 2, 7)
	require.True(t, d.Related())
	assert.False(t, d.Certain())
	assert.Equal(t, 2, d.Low)
	assert.Equal(t, 7, d.High)

	// Degenerate [c, c) is allowed (e.g. a loop with begin == end).
	assert.NotPanics(t, func() { BoundedDiff(0, 3, 3) })
	assert.Panics(t, func() { BoundedDiff(0, 3, 1) })
}

func TestCertainPanicsOnUnrelated(t *testing.T) {
	assert.Panics(t, func() { DiffRange{}.Certain() })
}

func TestComposition(t *testing.T) {
	cases := []struct {
		name string
		a, b DiffRange
	}{
		{"singletons", ExactDiff(1, 0), ExactDiff(0, 3)},
		{"bounded", BoundedDiff(1, -2, 5), BoundedDiff(0, 1, 9)},
		{"negative", BoundedDiff(0, -7, -3), ExactDiff(1, -1)},
		{"mixed coeffs", ExactDiff(1, 4), BoundedDiff(1, 0, 2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := tc.a.Add(tc.b)
			require.True(t, sum.Related())
			assert.Equal(t, tc.a.Coeff+tc.b.Coeff, sum.Coeff)
			assert.Equal(t, tc.a.Low+tc.b.Low, sum.Low)
			assert.Equal(t, tc.a.High+tc.b.High-1, sum.High)
			// Half-open arithmetic regression: the sum of the bounds is
			// preserved up to the -1 of the encoding.
			assert.Equal(t, tc.a.Low+tc.a.High+tc.b.Low+tc.b.High-1, sum.Low+sum.High)

			diff := tc.a.Sub(tc.b)
			require.True(t, diff.Related())
			assert.Equal(t, tc.a.Coeff-tc.b.Coeff, diff.Coeff)
			assert.Equal(t, tc.a.Low-tc.b.High+1, diff.Low)
			assert.Equal(t, tc.a.High-tc.b.Low, diff.High)
			assert.Equal(t, tc.a.Low+tc.a.High-tc.b.Low-tc.b.High+1, diff.Low+diff.High)
		})
	}
}

func TestCompositionFoldsConstants(t *testing.T) {
	// x + 3 - 1: the constant term folds to exactly +2.
	d := ExactDiff(1, 0).Add(ExactDiff(0, 3)).Sub(ExactDiff(0, 1))
	require.True(t, d.Related())
	assert.Equal(t, 1, d.Coeff)
	assert.True(t, d.Certain())
	assert.Equal(t, 2, d.Low)
	assert.Equal(t, 3, d.High)
}

func TestUnrelatedAbsorbs(t *testing.T) {
	known := BoundedDiff(1, 0, 10)
	var unknown DiffRange

	for name, got := range map[string]DiffRange{
		"known+unknown":   known.Add(unknown),
		"unknown+known":   unknown.Add(known),
		"known-unknown":   known.Sub(unknown),
		"unknown-unknown": unknown.Sub(unknown),
	} {
		assert.Equal(t, DiffRange{}, got, name)
	}
}

func TestDiffPtrResult(t *testing.T) {
	c := CertainDiff(-8)
	require.True(t, c.IsCertain)
	assert.Equal(t, -8, c.Diff)
	assert.Equal(t, "certain(-8)", c.String())

	u := UncertainDiff()
	assert.False(t, u.IsCertain)
	assert.Equal(t, 0, u.Diff)
	assert.Equal(t, "uncertain", u.String())
}
