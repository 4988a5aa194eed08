package tinyscope

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	errorInterface = reflect.TypeOf((*error)(nil)).Elem()

	ErrDuplicateRegistration   = errors.New("type is already registered in this scope")
	ErrUnresolvedDependency    = errors.New("type could not be resolved")
	ErrConstructionFailure     = errors.New("no constructor could be satisfied")
	ErrCyclicDependency        = errors.New("cyclic dependency")
	ErrVariadicConstructor     = errors.New("variadic constructor is not supported")
	ErrConstructorNotAFunction = errors.New("constructor is not a function")
	ErrNilFactoryFunc          = errors.New("got nil factory function")
)

const constructorTemplateStr string = "func(T1, ...) [T|(T, error)]"

func newDuplicateRegistrationError(key Key) error {
	return &DuplicateRegistrationError{Key: key}
}

type DuplicateRegistrationError struct {
	Key Key
}

func (err *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Key, ErrDuplicateRegistration)
}

func (err *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}

func newUnresolvedDependencyError(key Key) error {
	return &UnresolvedDependencyError{Key: key}
}

type UnresolvedDependencyError struct {
	Key Key
}

func (err *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("%s: %s", err.Key, ErrUnresolvedDependency)
}

func (err *UnresolvedDependencyError) Is(target error) bool {
	return target == ErrUnresolvedDependency
}

func newConstructionError(key Key, candidates int, missing []Key) error {
	return &ConstructionError{Key: key, Candidates: candidates, Missing: missing}
}

// ConstructionError is returned when none of the candidate constructors of a type
// has all of its parameters registered in the owning scope.
// Missing holds the first unresolved parameter of every candidate, in candidate order.
type ConstructionError struct {
	Key        Key
	Missing    []Key
	Candidates int
}

func (err *ConstructionError) Error() string {
	if len(err.Missing) == 0 {
		return fmt.Sprintf("%s: %s: no constructors declared", err.Key, ErrConstructionFailure)
	}

	missing := make([]string, len(err.Missing))
	for i, key := range err.Missing {
		missing[i] = key.String()
	}

	return fmt.Sprintf(
		"%s: %s: tried %d constructor(s), missing %s",
		err.Key,
		ErrConstructionFailure,
		err.Candidates,
		strings.Join(missing, ", "),
	)
}

func (err *ConstructionError) Is(target error) bool {
	return target == ErrConstructionFailure
}

func newCyclicDependencyError(key Key) error {
	return &CyclicDependencyError{Key: key}
}

type CyclicDependencyError struct {
	Key Key
}

func (err *CyclicDependencyError) Error() string {
	return fmt.Sprintf("%s: %s: requested while it is being produced", err.Key, ErrCyclicDependency)
}

func (err *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

func newScopeHierarchyError(parent, child *Scope) error {
	return &ScopeHierarchyError{Parent: parent.String(), Child: child.String()}
}

type ScopeHierarchyError struct {
	Parent string
	Child  string
}

func (err *ScopeHierarchyError) Error() string {
	return fmt.Sprintf("adding %s as a child of %s creates a cycle", err.Child, err.Parent)
}

func (err *ScopeHierarchyError) Unwrap() error {
	return ErrCyclicDependency
}

func newIncompatibleTypeError(key Key, got reflect.Type) error {
	return &IncompatibleTypeError{Key: key, Type: got}
}

type IncompatibleTypeError struct {
	Type reflect.Type
	Key  Key
}

func (err *IncompatibleTypeError) Error() string {
	return fmt.Sprintf("%s cannot be registered as %s", err.Type, err.Key)
}

func newBadConstructorError(cause error, constructorType reflect.Type) error {
	return &BadConstructorError{
		cause:           cause,
		ConstructorType: constructorType,
	}
}

type BadConstructorError struct {
	cause           error
	ConstructorType reflect.Type
}

func (err *BadConstructorError) Error() string {
	return fmt.Sprintf("bad constructor %s: %s", err.ConstructorType, err.cause)
}

func (err *BadConstructorError) Unwrap() error {
	return err.cause
}

type ConstructorTemplateError struct {
	SupportedConstructorTemplates string
}

func (err *ConstructorTemplateError) Error() string {
	return fmt.Sprintf("only %s can be used", err.SupportedConstructorTemplates)
}

type FieldsError struct {
	T reflect.Type
}

func (err *FieldsError) Error() string {
	return fmt.Sprintf("tinyscope.Fields and tinyscope.Pointer can only be used with a struct, got %s", err.T)
}

func newServiceBuilderError(cause error, key Key) error {
	return &ServiceBuilderError{
		cause: cause,
		Key:   key,
	}
}

type ServiceBuilderError struct {
	cause error
	Key   Key
}

func (err *ServiceBuilderError) Error() string {
	return fmt.Sprintf("cannot build %s: %s", err.Key, err.cause)
}

func (err *ServiceBuilderError) Unwrap() error {
	return err.cause
}

func newConstructorError(cause error) error {
	return &ConstructorError{
		cause: cause,
	}
}

type ConstructorError struct {
	cause error
}

func (err *ConstructorError) Error() string {
	return fmt.Sprintf("constructor returned an error: %s", err.cause)
}

func (err *ConstructorError) Unwrap() error {
	return err.cause
}
