package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	tool := New()
	cases := map[string]string{
		"2 + 3 * 4":               "14.0",
		"7 / 2":                   "3.5",
		"(2 + 3) * 4":             "20.0",
		"2 ** 3 ** 2":             "512.0",
		"-2 ** 2":                 "-4.0",
		"2 ** -1":                 "0.5",
		"2*-3":                    "-6.0",
		"-7 % 3":                  "2.0",
		"7 % -3":                  "-2.0",
		"10 - 4 - 3":              "3.0",
		"0.1 + 0.2":               "0.30000000000000004",
		"10 ** 16":                "1e+16",
		"1 / 100000":              "1e-05",
		"--3":                     "3.0",
		"- - 3":                   "3.0",
		"2 * --3":                 "6.0",
		"2 - - -3":                "-1.0",
		"-(-3)":                   "3.0",
		"1e3 + 1":                 "1001.0",
		"1E3":                     "1000.0",
		"2.5e-3 * 2":              "0.005",
		"1e+16":                   "1e+16",
		"1e-05 * 2":               "2e-05",
		`{"expression": "6 * 7"}`: "42.0",
	}
	for expr, expect := range cases {
		got, err := tool.Invoke(ctx, expr)
		require.NoError(t, err, expr)
		assert.Equal(t, expect, got, expr)
	}
	assert.Equal(t, int64(len(cases)), tool.Calls())
}

func TestInvokeRejectsInput(t *testing.T) {
	ctx := context.Background()
	tool := New()
	for _, expr := range []string{
		"__import__('os')",
		"a + 1",
		"sqrt(4)",
		"1 / 0",
		"5 % 0",
		"0 ** -1",
		"10 ** 400",
		"1 < 2",
		"true && false",
		"3 & 1",
		"(1 + 2",
		"",
	} {
		_, err := tool.Invoke(ctx, expr)
		require.Error(t, err, expr)
		var target *errs.ToolInputError
		assert.True(t, errors.As(err, &target), "%s: %v", expr, err)
	}
	assert.Equal(t, int64(12), tool.Failures())
}

func TestDivisionByZeroCause(t *testing.T) {
	_, err := New().Invoke(context.Background(), "1 / (2 - 2)")
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestInvokeAsyncUnsupported(t *testing.T) {
	ch, err := New().InvokeAsync(context.Background(), "1 + 1")
	assert.Nil(t, ch)
	var target *errs.UnsupportedOperationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, Name, target.Target)
}

func TestPrecedenceMatchesGrouping(t *testing.T) {
	pairs := [][2]string{
		{"1 + 2 * 3 - 4 / 2", "1 + (2 * 3) - (4 / 2)"},
		{"2 * 3 ** 2", "2 * (3 ** 2)"},
		{"-3 ** 2 + 1", "-(3 ** 2) + 1"},
		{"8 / 4 / 2", "(8 / 4) / 2"},
		{"17 % 5 * 2", "(17 % 5) * 2"},
	}
	for _, p := range pairs {
		a, err := Evaluate(p[0])
		require.NoError(t, err)
		b, err := Evaluate(p[1])
		require.NoError(t, err)
		assert.Equal(t, b, a, p[0])
	}
}

func TestFormattedResultsEvaluateAgain(t *testing.T) {
	for _, v := range []float64{1e16, 1e-05, -2.5e20, 42, 0.1 + 0.2} {
		got, err := Evaluate(Format(v))
		require.NoError(t, err, Format(v))
		assert.Equal(t, v, got)
	}

	_, err := Evaluate("1e400")
	assert.ErrorIs(t, err, ErrNotFinite)
	_, err = Evaluate("1e + 1")
	assert.Error(t, err)
}

func ExampleEvaluate() {
	v, _ := Evaluate("2 + 3 * 4")
	fmt.Println(Format(v))
	// Output:
	// 14.0
}
