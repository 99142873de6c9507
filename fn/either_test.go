package fn

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEitherLeftRight(t *testing.T) {
	t.Parallel()

	l := NewLeft[int, string](1)
	require.True(t, l.IsLeft())
	require.False(t, l.IsRight())

	r := NewRight[int, string]("foo")
	require.True(t, r.IsRight())
	require.False(t, r.IsLeft())
}

func TestElimEither(t *testing.T) {
	t.Parallel()

	toStr := func(e Either[int, string]) string {
		return ElimEither(
			e,
			func(i int) string { return strconv.Itoa(i) },
			func(s string) string { return s },
		)
	}

	require.Equal(t, "1", toStr(NewLeft[int, string](1)))
	require.Equal(t, "foo", toStr(NewRight[int, string]("foo")))
}

func TestMapLeftMapRight(t *testing.T) {
	t.Parallel()

	l := NewLeft[int, string](1)
	mapped := MapLeft[int, string, int](l, func(i int) int { return i + 1 })
	require.True(t, mapped.IsLeft())

	r := NewRight[int, string]("foo")
	untouched := MapLeft[int, string, int](r, func(i int) int { return i + 1 })
	require.True(t, untouched.IsRight())

	mappedRight := MapRight[int, string, int](r, func(s string) int { return len(s) })
	require.True(t, mappedRight.IsRight())

	untouchedLeft := MapRight[int, string, int](l, func(s string) int { return len(s) })
	require.True(t, untouchedLeft.IsLeft())
}

func TestOptionToLeftRight(t *testing.T) {
	t.Parallel()

	some := Some(5)
	e := OptionToLeft[int, int, string](some, "default")
	require.True(t, e.IsLeft())

	none := None[int]()
	e2 := OptionToLeft[int, int, string](none, "default")
	require.True(t, e2.IsRight())

	e3 := OptionToRight[int, string, int](some, "default")
	require.True(t, e3.IsRight())

	e4 := OptionToRight[int, string, int](none, "default")
	require.True(t, e4.IsLeft())
}
