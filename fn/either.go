package fn

// Either is a value that is exactly one of two possibilities: a "left" value
// of type L, or a "right" value of type R. By convention (following the
// usual functional-programming idiom this package's Option is modeled on),
// Left is conventionally used for the "alternative"/error-like case and
// Right for the "expected"/success-like case, though Either itself carries
// no such judgment. Internally, exactly one of the two embedded Options is
// ever Some.
type Either[L, R any] struct {
	left  Option[L]
	right Option[R]
}

// NewLeft creates an Either populated with a left value.
func NewLeft[L, R any](l L) Either[L, R] {
	return Either[L, R]{
		left:  Some(l),
		right: None[R](),
	}
}

// NewRight creates an Either populated with a right value.
func NewRight[L, R any](r R) Either[L, R] {
	return Either[L, R]{
		left:  None[L](),
		right: Some(r),
	}
}

// IsLeft reports whether e holds a left value.
func (e Either[L, R]) IsLeft() bool {
	return e.left.IsSome()
}

// IsRight reports whether e holds a right value.
func (e Either[L, R]) IsRight() bool {
	return e.right.IsSome()
}

// ElimEither is the universal Either eliminator: it reduces e to a single
// value of type A by applying whichever of the two continuations matches
// the case e actually holds.
//
// ElimEither : (Either[L, R], L -> A, R -> A) -> A.
func ElimEither[L, R, A any](e Either[L, R], f func(L) A, g func(R) A) A {
	if e.IsLeft() {
		return f(e.left.UnsafeFromSome())
	}

	return g(e.right.UnsafeFromSome())
}

// MapLeft transforms the left value of e, if present, leaving a right value
// untouched.
func MapLeft[L, R, L2 any](e Either[L, R], f func(L) L2) Either[L2, R] {
	if e.IsLeft() {
		return NewLeft[L2, R](f(e.left.UnsafeFromSome()))
	}

	return NewRight[L2, R](e.right.UnsafeFromSome())
}

// MapRight transforms the right value of e, if present, leaving a left value
// untouched.
func MapRight[L, R, R2 any](e Either[L, R], f func(R) R2) Either[L, R2] {
	if e.IsRight() {
		return NewRight[L, R2](f(e.right.UnsafeFromSome()))
	}

	return NewLeft[L, R2](e.left.UnsafeFromSome())
}
