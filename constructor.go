package tinyscope

import (
	"fmt"
	"reflect"
)

// Recipe to build a value out of dependencies.
// Dependencies are looked up by their exact types in the scope the value is registered in.
type Constructor struct {
	err    error
	out    reflect.Type
	build  func(args []any) (any, error)
	params []Key
}

func (c Constructor) Out() reflect.Type {
	return c.out
}

func (c Constructor) Params() []Key {
	return append([]Key(nil), c.params...)
}

func (c Constructor) Err() error {
	return c.err
}

// Implementation type with an ordered list of candidate constructors.
// Candidates are tried in order, first one with all dependencies registered wins.
type Blueprint struct {
	err          error
	key          Key
	constructors []Constructor
}

// Returns Blueprint of `T`.
// Every constructor should return a type assignable to `T`.
func Type[T any](constructors ...Constructor) Blueprint {
	bp := Blueprint{key: KeyOf[T](), constructors: constructors}

	for _, c := range constructors {
		if c.err != nil {
			bp.err = c.err
			break
		}

		if c.out == nil || c.build == nil {
			bp.err = newConstructorUnsupportedError(nil)
			break
		}

		if !c.out.AssignableTo(bp.key.t) {
			bp.err = newIncompatibleTypeError(bp.key, c.out)
			break
		}
	}

	return bp
}

func (bp Blueprint) Key() Key {
	return bp.key
}

func (bp Blueprint) Err() error {
	return bp.err
}

func Ctor0[T any](fn func() T) Constructor {
	return Constructor{
		out: reflect.TypeFor[T](),
		build: func([]any) (any, error) {
			return fn(), nil
		},
	}
}

func Ctor1[T, A any](fn func(A) T) Constructor {
	return Constructor{
		out:    reflect.TypeFor[T](),
		params: []Key{KeyOf[A]()},
		build: func(args []any) (any, error) {
			a, err := cast[A](args[0])
			if err != nil {
				return nil, err
			}

			return fn(a), nil
		},
	}
}

func Ctor2[T, A, B any](fn func(A, B) T) Constructor {
	return Constructor{
		out:    reflect.TypeFor[T](),
		params: []Key{KeyOf[A](), KeyOf[B]()},
		build: func(args []any) (any, error) {
			a, err := cast[A](args[0])
			if err != nil {
				return nil, err
			}

			b, err := cast[B](args[1])
			if err != nil {
				return nil, err
			}

			return fn(a, b), nil
		},
	}
}

func Ctor3[T, A, B, C any](fn func(A, B, C) T) Constructor {
	return Constructor{
		out:    reflect.TypeFor[T](),
		params: []Key{KeyOf[A](), KeyOf[B](), KeyOf[C]()},
		build: func(args []any) (any, error) {
			a, err := cast[A](args[0])
			if err != nil {
				return nil, err
			}

			b, err := cast[B](args[1])
			if err != nil {
				return nil, err
			}

			c, err := cast[C](args[2])
			if err != nil {
				return nil, err
			}

			return fn(a, b, c), nil
		},
	}
}

// Returns Constructor based on `constructor` function.
// `constructor` should be of type `func(T1, ...) [T|(T, error)]`,
// its signature is checked once here.
func Func(constructor any) Constructor {
	t := reflect.TypeOf(constructor)

	if t == nil || t.Kind() != reflect.Func {
		return Constructor{err: newBadConstructorError(ErrConstructorNotAFunction, t)}
	}

	if t.IsVariadic() {
		return Constructor{err: newBadConstructorError(ErrVariadicConstructor, t)}
	}

	withError := false

	switch t.NumOut() {
	case 1:
		if t.Out(0).Implements(errorInterface) {
			return Constructor{err: newConstructorUnsupportedError(t)}
		}
	case 2:
		if !t.Out(1).Implements(errorInterface) || t.Out(0).Implements(errorInterface) {
			return Constructor{err: newConstructorUnsupportedError(t)}
		}

		withError = true
	default:
		return Constructor{err: newConstructorUnsupportedError(t)}
	}

	params := make([]Key, t.NumIn())
	for i := range params {
		params[i] = KeyFor(t.In(i))
	}

	fn := reflect.ValueOf(constructor)

	return Constructor{
		out:    t.Out(0),
		params: params,
		build: func(args []any) (any, error) {
			in := make([]reflect.Value, len(args))
			for i, arg := range args {
				in[i] = argValue(arg, t.In(i))
			}

			values := fn.Call(in)

			if withError {
				if err, ok := values[1].Interface().(error); ok && err != nil {
					return nil, err
				}
			}

			return values[0].Interface(), nil
		},
	}
}

// Returns Constructor of `T` with its exported fields filled with resolved dependencies.
// `T` should be a struct.
func Fields[T any]() Constructor {
	t := reflect.TypeFor[T]()

	if t.Kind() != reflect.Struct {
		return Constructor{err: &FieldsError{T: t}}
	}

	fields, params := exportedFields(t)

	return Constructor{
		out:    t,
		params: params,
		build: func(args []any) (any, error) {
			return fillFields[T](fields, args).Interface(), nil
		},
	}
}

// Same as Fields, but returns `*T`.
func Pointer[T any]() Constructor {
	t := reflect.TypeFor[T]()

	if t.Kind() != reflect.Struct {
		return Constructor{err: &FieldsError{T: t}}
	}

	fields, params := exportedFields(t)

	return Constructor{
		out:    reflect.PointerTo(t),
		params: params,
		build: func(args []any) (any, error) {
			return fillFields[T](fields, args).Addr().Interface(), nil
		},
	}
}

func exportedFields(t reflect.Type) ([]int, []Key) {
	fields := make([]int, 0, t.NumField())
	params := make([]Key, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}

		fields = append(fields, i)
		params = append(params, KeyFor(t.Field(i).Type))
	}

	return fields, params
}

func fillFields[T any](fields []int, args []any) reflect.Value {
	p := reflect.ValueOf(new(T)).Elem()

	for i, v := range args {
		field := p.Field(fields[i])
		field.Set(argValue(v, field.Type()))
	}

	return p
}

// nil dependency has no reflect.Value of its own
func argValue(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}

	return reflect.ValueOf(v)
}

func newConstructorUnsupportedError(constructorType reflect.Type) error {
	return newBadConstructorError(
		&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplateStr},
		constructorType,
	)
}

func (c Constructor) String() string {
	return fmt.Sprintf("constructor of %s%v", c.out, c.params)
}
