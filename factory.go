package tinyscope

import "fmt"

// Produces value of a single type and caches it.
// A failed production leaves slot empty so the next call tries again.
type factory interface {
	produce() (any, error)
}

// Holds produced singleton.
// nil value pointer means nothing was produced yet, a stored nil is a valid singleton.
type slot struct {
	value *any
}

func (sl *slot) empty() bool {
	return sl.value == nil
}

func (sl *slot) load() (any, bool) {
	if sl.empty() {
		return nil, false
	}

	return *sl.value, true
}

func (sl *slot) store(v any) {
	sl.value = &v
}

var (
	_ factory = new(constructedFactory)
	_ factory = new(funcFactory)
)

func newConstructedFactory(scope *Scope, bp Blueprint) *constructedFactory {
	return &constructedFactory{scope: scope, blueprint: bp}
}

func newInstanceFactory(scope *Scope, key Key, instance any) *constructedFactory {
	f := &constructedFactory{scope: scope, blueprint: Blueprint{key: key}}
	f.slot.store(instance)

	return f
}

type constructedFactory struct {
	scope     *Scope
	blueprint Blueprint
	slot      slot
	building  bool
}

func (f *constructedFactory) produce() (any, error) {
	if v, ok := f.slot.load(); ok {
		return v, nil
	}

	if f.building {
		return nil, newCyclicDependencyError(f.blueprint.key)
	}

	f.building = true
	defer func() { f.building = false }()

	var (
		v   any
		err error
	)

	// implementation type might have its own registration in the same scope
	if other, ok := f.scope.factories[f.blueprint.key]; ok && other != factory(f) {
		v, err = other.produce()
	} else {
		v, err = f.scope.construct(f.blueprint)
	}

	if err != nil {
		return nil, err
	}

	f.slot.store(v)

	return v, nil
}

func newFuncFactory(scope *Scope, key Key, fn FactoryFunc) *funcFactory {
	return &funcFactory{scope: scope, key: key, fn: fn}
}

type funcFactory struct {
	scope    *Scope
	fn       FactoryFunc
	key      Key
	slot     slot
	building bool
}

func (f *funcFactory) produce() (any, error) {
	if v, ok := f.slot.load(); ok {
		return v, nil
	}

	if f.building {
		return nil, newCyclicDependencyError(f.key)
	}

	f.building = true
	defer func() { f.building = false }()

	v, err := f.call()
	if err != nil {
		return nil, err
	}

	f.slot.store(v)

	return v, nil
}

func (f *funcFactory) call() (service any, err error) {
	defer func() {
		if rp := recover(); rp != nil {
			err = newServiceBuilderError(
				newConstructorError(fmt.Errorf("recovered from panic: %v", rp)),
				f.key,
			)
		}
	}()

	service, err = f.fn(f.scope)
	if err != nil {
		return nil, newServiceBuilderError(newConstructorError(err), f.key)
	}

	if err := checkAssignable(f.key, service); err != nil {
		return nil, newServiceBuilderError(err, f.key)
	}

	return service, nil
}
