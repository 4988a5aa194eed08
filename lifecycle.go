package tinyscope

import (
	"fmt"
	"log/slog"
)

type Cleanup func()

// Calls cleanup function, recovering and logging a panic if it happens.
func (fn Cleanup) CallWithRecovery(l *slog.Logger) {
	if fn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			if l == nil {
				l = logger()
			}

			l.Error("recovered from panic during cleanup", "error", fmt.Errorf("%v", r))
		}
	}()

	fn()
}

// Module registers and releases services of a single lifecycle,
// e.g. services living as long as the application or as long as a single view.
type Module struct {
	Setup   func(*Scope) error
	Cleanup func(*Scope)
	Name    string
}

func (m Module) setup(s *Scope) error {
	if m.Setup == nil {
		return nil
	}

	if err := m.Setup(s); err != nil {
		if m.Name == "" {
			return err
		}

		return fmt.Errorf("%s setup: %w", m.Name, err)
	}

	return nil
}

func (m Module) cleanup(s *Scope) Cleanup {
	return func() {
		if m.Cleanup != nil {
			m.Cleanup(s)
		}
	}
}

// Runs `m.Setup` against `root`.
// Returned Cleanup runs `m.Cleanup` against `root` once.
// `root` is expected to live as long as the application.
func Bootstrap(root *Scope, m Module) (Cleanup, error) {
	if err := m.setup(root); err != nil {
		return nil, err
	}

	done := false

	return func() {
		if done {
			return
		}

		done = true
		m.cleanup(root).CallWithRecovery(root.logger)
	}, nil
}

// Activation is a child scope attached to its parent for the duration of a lifecycle.
type Activation struct {
	parent *Scope
	scope  *Scope
	module Module
	active bool
}

// Creates new scope, adds it as a child of `parent` and runs `m.Setup` against it.
// If setup fails, the scope is detached and error is returned.
func Activate(parent *Scope, m Module, opts ...ScopeOption) (*Activation, error) {
	opts = append([]ScopeOption{WithName(m.Name), WithLogger(parent.base)}, opts...)

	scope := NewScope(opts...)

	if err := parent.AddChild(scope); err != nil {
		return nil, err
	}

	if err := m.setup(scope); err != nil {
		parent.RemoveChild(scope)
		return nil, err
	}

	return &Activation{parent: parent, scope: scope, module: m, active: true}, nil
}

func (a *Activation) Scope() *Scope {
	return a.scope
}

func (a *Activation) Active() bool {
	return a.active
}

// Runs `Cleanup` of the module and detaches the scope from its parent.
// Services registered in the scope are no longer reachable through the parent.
func (a *Activation) Deactivate() {
	if !a.active {
		return
	}

	a.active = false

	a.module.cleanup(a.scope).CallWithRecovery(a.scope.logger)
	a.parent.RemoveChild(a.scope)
}
