package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func check(cond bool, extra ...any) []string {
	args, ok := CallArgs(1, 1, "check")
	if !ok {
		return nil
	}
	return args
}

func pair(a, b any) []string {
	args, _ := CallArgs(1, 2, "pair")
	return args
}

func TestCallArgs_SingleLine(t *testing.T) {
	x := 3
	args := check(x+1 == 4)
	require.Equal(t, []string{"x+1 == 4"}, args)
}

func TestCallArgs_KeepsExtraArgs(t *testing.T) {
	args := check(1 == 2, "message")
	require.Equal(t, []string{"1 == 2", `"message"`}, args)
}

func TestCallArgs_MultiLine(t *testing.T) {
	args := pair(
		len("abc"),
		3,
	)
	require.Equal(t, []string{`len("abc")`, "3"}, args)
}

func TestCallArgs_InsideClosure(t *testing.T) {
	var args []string
	func() {
		args = check(true && !false)
	}()
	require.Equal(t, []string{"true && !false"}, args)
}

func TestCallArgs_NoMatchingName(t *testing.T) {
	args, ok := CallArgs(0, 1, "doesNotExist")
	require.False(t, ok)
	require.Nil(t, args)
}

func typed[A, B any](a A, b B) []string {
	args, _ := CallArgs(1, 2, "typed")
	return args
}

func TestCallArgs_ExplicitTypeArguments(t *testing.T) {
	args := typed[int, string](1+2, "x")
	require.Equal(t, []string{"1+2", `"x"`}, args)
}

func TestCallArgs_SameLineIsAmbiguous(t *testing.T) {
	ok, bad := true, false
	first, second := check(ok), check(bad)
	require.Nil(t, first)
	require.Nil(t, second)
}

func TestCallArgs_NestedOnInnerLine(t *testing.T) {
	var inner []string
	pair(func() int {
		inner = check(len("ab") == 2)
		return 0
	}(), 2)
	require.Equal(t, []string{`len("ab") == 2`}, inner)
}
