package tinyscope

// This package provides a small registry of singletons indexed by type.
// Scopes can be nested: a scope that cannot resolve a type asks its children.
// This package does NOT try to be a general purpose IOC container:
// there are no transient services and it is not safe for concurrent use.

import (
	"fmt"
	"reflect"
)

// Identifies a registered type.
// Keys are equal only when their types are identical.
type Key struct {
	t reflect.Type
}

// Returns Key of `T`.
// For interfaces use `KeyOf[MyInterface]()`, not a pointer to it.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeFor[T]()}
}

func KeyFor(t reflect.Type) Key {
	return Key{t: t}
}

func (k Key) Type() reflect.Type {
	return k.t
}

func (k Key) String() string {
	if k.t == nil {
		return "<nil>"
	}

	return k.t.String()
}

// Registers `fn` as a singleton factory of `T`.
func Provide[T any](s *Scope, fn func(*Scope) (T, error)) error {
	if fn == nil {
		return newBadConstructorError(ErrNilFactoryFunc, reflect.TypeOf(fn))
	}

	return s.RegisterFactoryFunction(KeyOf[T](), func(s *Scope) (any, error) {
		return fn(s)
	})
}

// Registers already constructed `instance` as a singleton of `T`.
func Instance[T any](s *Scope, instance T) error {
	return s.RegisterInstance(KeyOf[T](), instance)
}

// Registers `T` to be built by the first satisfiable constructor out of `constructors`.
func Construct[T any](s *Scope, constructors ...Constructor) error {
	return s.Register(Type[T](constructors...))
}

// Registers `T` under the key of `I` to be built by the first satisfiable constructor out of `constructors`.
func ConstructAs[I, T any](s *Scope, constructors ...Constructor) error {
	return s.RegisterAs(KeyOf[I](), Type[T](constructors...))
}

// Resolves `T` from `s` or any of its descendants.
func Get[T any](s *Scope) (T, error) {
	var zero T

	v, err := s.Resolve(KeyOf[T]())
	if err != nil {
		return zero, err
	}

	return cast[T](v)
}

// Same as Get, but panics on error.
func MustGet[T any](s *Scope) T {
	v, err := Get[T](s)
	if err != nil {
		panic(err)
	}

	return v
}

// Same as Get, but reports a missing registration with `ok == false` instead of an error.
// A registration that was found but failed returns `ok == true` with the error.
func TryGet[T any](s *Scope) (v T, ok bool, err error) {
	service, ok, err := s.TryResolve(KeyOf[T]())
	if !ok || err != nil {
		return v, ok, err
	}

	v, err = cast[T](service)

	return v, true, err
}

func cast[T any](v any) (T, error) {
	var zero T

	// nil interface value of a singleton registered as nil
	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("resolved %T is not %s", v, KeyOf[T]())
	}

	return t, nil
}
