package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 4 - 3", 3},
		{"20 / 4 / 5", 1},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", -4},
		{"2 ^ -1", 0.5},
		{"-(3 + 4)", -7},
		{"+5", 5},
		{"6 × 7", 42},
		{"9 ÷ 3", 3},
		{"20 + 15 + 30 + 10", 75},
		{"1.5e2 + 0.5", 150.5},
		{"  42  ", 42},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Eval(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	_, err := Eval("1 / (2 - 2)")
	assert.ErrorIs(t, err, ErrDivisionByZero)

	for _, in := range []string{"", "2 +", "(1 + 2", "1 + 2)", "abc", "2 $ 3", "1..2"} {
		_, err := Eval(in)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", in)
	}
}
