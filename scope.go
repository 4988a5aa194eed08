package tinyscope

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// Builds value of a registered type using scope it was registered in.
type FactoryFunc func(*Scope) (any, error)

type ScopeConfiguration struct {
	Logger *slog.Logger
	Name   string
}

type ScopeOption func(*ScopeConfiguration)

var (
	WithName = func(name string) ScopeOption {
		return func(conf *ScopeConfiguration) { conf.Name = name }
	}

	WithLogger = func(l *slog.Logger) ScopeOption {
		return func(conf *ScopeConfiguration) { conf.Logger = l }
	}
)

// Scope holds singletons registered by type and a list of child scopes.
// When a type is not registered in a scope, its children are asked in the order they were added.
// Scope is not safe for concurrent use.
type Scope struct {
	factories map[Key]factory
	base      *slog.Logger
	logger    *slog.Logger
	name      string
	children  []*Scope
	id        uuid.UUID
}

// Returns new empty Scope.
func NewScope(opts ...ScopeOption) *Scope {
	conf := ScopeConfiguration{Logger: logger()}

	for _, opt := range opts {
		opt(&conf)
	}

	if conf.Logger == nil {
		conf.Logger = logger()
	}

	id := uuid.New()

	return &Scope{
		id:        id,
		name:      conf.Name,
		factories: make(map[Key]factory),
		base:      conf.Logger,
		logger:    conf.Logger.With("scope", id.String()),
	}
}

func (s *Scope) ID() uuid.UUID {
	return s.id
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) String() string {
	if s.name == "" {
		return "scope " + s.id.String()
	}

	return fmt.Sprintf("scope %s (%s)", s.name, s.id)
}

// Registers `fn` as a singleton factory for `key`.
// `fn` is called at most once, on first successful resolution.
func (s *Scope) RegisterFactoryFunction(key Key, fn FactoryFunc) error {
	if fn == nil {
		return newBadConstructorError(ErrNilFactoryFunc, key.t)
	}

	return s.add(key, newFuncFactory(s, key, fn))
}

// Registers already constructed `instance` as a singleton for `key`.
// `instance` should be assignable to the type of `key`, nil is accepted for nillable types.
func (s *Scope) RegisterInstance(key Key, instance any) error {
	if err := checkAssignable(key, instance); err != nil {
		return err
	}

	return s.add(key, newInstanceFactory(s, key, instance))
}

// Registers `bp` under its own type.
func (s *Scope) Register(bp Blueprint) error {
	return s.RegisterAs(bp.key, bp)
}

// Registers `bp` under `key`.
// Type of `bp` should be assignable to the type of `key`.
func (s *Scope) RegisterAs(key Key, bp Blueprint) error {
	if bp.err != nil {
		return bp.err
	}

	if key.t == nil || bp.key.t == nil || !bp.key.t.AssignableTo(key.t) {
		return newIncompatibleTypeError(key, bp.key.t)
	}

	return s.add(key, newConstructedFactory(s, bp))
}

// Removes registration of `key` together with its cached singleton.
func (s *Scope) Unregister(key Key) {
	delete(s.factories, key)
}

// Reports whether `key` is registered in this scope, children are not checked.
func (s *Scope) Has(key Key) bool {
	_, ok := s.factories[key]
	return ok
}

func (s *Scope) add(key Key, f factory) error {
	if key.t == nil {
		return newIncompatibleTypeError(key, nil)
	}

	if _, ok := s.factories[key]; ok {
		return newDuplicateRegistrationError(key)
	}

	s.factories[key] = f

	return nil
}

// Returns singleton registered for `key` in this scope or any of its descendants.
func (s *Scope) Resolve(key Key) (any, error) {
	v, ok, err := s.TryResolve(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, newUnresolvedDependencyError(key)
	}

	return v, nil
}

// Same as Resolve, but reports missing registration with `ok == false`.
// Error is returned only if registration was found but failed to produce a value.
func (s *Scope) TryResolve(key Key) (service any, ok bool, err error) {
	f, owner := s.find(key)
	if f == nil {
		return nil, false, nil
	}

	if owner != s && s.debugEnabled() {
		s.logger.Debug("resolving from child scope", "type", key.String(), "child", owner.String())
	}

	service, err = f.produce()
	if err != nil {
		return nil, true, err
	}

	return service, true, nil
}

func (s *Scope) find(key Key) (factory, *Scope) {
	if f, ok := s.factories[key]; ok {
		return f, s
	}

	for _, child := range s.children {
		if f, owner := child.find(key); f != nil {
			return f, owner
		}
	}

	return nil, nil
}

// Builds `bp` using dependencies registered in this scope only.
func (s *Scope) construct(bp Blueprint) (any, error) {
	missing := make([]Key, 0, len(bp.constructors))

candidates:
	for i, c := range bp.constructors {
		deps := make([]factory, len(c.params))

		for j, param := range c.params {
			f, ok := s.factories[param]
			if !ok {
				if s.debugEnabled() {
					s.logger.Debug(
						"skipping constructor",
						"type", bp.key.String(),
						"candidate", i,
						"missing", param.String(),
					)
				}

				missing = append(missing, param)
				continue candidates
			}

			deps[j] = f
		}

		args := make([]any, len(deps))
		for j, dep := range deps {
			v, err := dep.produce()
			if err != nil {
				return nil, newServiceBuilderError(err, bp.key)
			}

			args[j] = v
		}

		return build(bp.key, c, args)
	}

	return nil, newConstructionError(bp.key, len(bp.constructors), missing)
}

func build(key Key, c Constructor, args []any) (service any, err error) {
	defer func() {
		if rp := recover(); rp != nil {
			err = newServiceBuilderError(
				newConstructorError(fmt.Errorf("recovered from panic: %v", rp)),
				key,
			)
		}
	}()

	service, err = c.build(args)
	if err != nil {
		return nil, newServiceBuilderError(newConstructorError(err), key)
	}

	return service, nil
}

// Adds `child` to the scopes asked when a type is not registered in `s`.
// Adding same child twice has no effect.
// Adding `s` itself or any of its ancestors returns an error.
func (s *Scope) AddChild(child *Scope) error {
	if child == nil || slices.Contains(s.children, child) {
		return nil
	}

	if child == s || child.reaches(s) {
		return newScopeHierarchyError(s, child)
	}

	s.children = append(s.children, child)

	if s.debugEnabled() {
		s.logger.Debug("child scope added", "child", child.String())
	}

	return nil
}

// Removes `child`, does nothing if `child` was not added.
func (s *Scope) RemoveChild(child *Scope) {
	i := slices.Index(s.children, child)
	if i < 0 {
		return
	}

	s.children = slices.Delete(s.children, i, i+1)

	if s.debugEnabled() {
		s.logger.Debug("child scope removed", "child", child.String())
	}
}

// Returns children in the order they are asked.
func (s *Scope) Children() []*Scope {
	return slices.Clone(s.children)
}

func (s *Scope) debugEnabled() bool {
	return s.logger.Enabled(context.Background(), slog.LevelDebug)
}

// Reports an error unless `v` can be handed out as a value of `key`.
func checkAssignable(key Key, v any) error {
	if key.t == nil {
		return newIncompatibleTypeError(key, nil)
	}

	if v == nil {
		if !nillable(key) {
			return newIncompatibleTypeError(key, nil)
		}

		return nil
	}

	if t := reflect.TypeOf(v); !t.AssignableTo(key.t) {
		return newIncompatibleTypeError(key, t)
	}

	return nil
}

func nillable(key Key) bool {
	switch key.t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func (s *Scope) reaches(target *Scope) bool {
	return s.reachesVia(target, make(map[*Scope]struct{}))
}

// scopes may be shared by several parents, so each one is walked once
func (s *Scope) reachesVia(target *Scope, visited map[*Scope]struct{}) bool {
	for _, child := range s.children {
		if child == target {
			return true
		}

		if _, ok := visited[child]; ok {
			continue
		}

		visited[child] = struct{}{}

		if child.reachesVia(target, visited) {
			return true
		}
	}

	return false
}
