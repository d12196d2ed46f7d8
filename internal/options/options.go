// Package options implements a generic functional-options pattern shared by
// every package that exposes a variadic WithXxx-style constructor
// (document.Flatten, document.StreamFlatten, and any future config struct),
// so option validation logic isn't duplicated per package.
package options

// Option configures a target of type T, returning an error if the value it
// carries is invalid for that target.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps fn as an Option, surfacing any validation error fn returns.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps fn as an Option for settings that can't fail validation —
// a plain field assignment with no range or format to check.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
