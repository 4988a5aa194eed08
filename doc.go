/*
This package provides a small type-indexed registry of singleton services organized in nested scopes.
A scope builds every registered service at most once, on first request, and can fall back to its child scopes.

To install tinyscope:

	go get -u github.com/andriiyaremenko/tinyscope

How to use:

	type NameService interface {
		Name() string
	}

	type name string

	func (n name) Name() string {
		return string(n)
	}

	type Hero struct {
		name NameService
	}

	func NewHero(name NameService) *Hero {
		return &Hero{name: name}
	}

	root := tinyscope.NewScope(tinyscope.WithName("app"))

	if err := tinyscope.Instance[NameService](root, name("Bob")); err != nil {
		// handle error
	}

	if err := tinyscope.Construct[*Hero](root, tinyscope.Ctor1(NewHero)); err != nil {
		// handle error
	}

	hero, err := tinyscope.Get[*Hero](root)
	if err != nil {
		// handle error
	}

	// use hero

Child scopes are consulted when the scope itself has nothing registered for a type:

	activation, err := tinyscope.Activate(root, tinyscope.Module{
		Name: "level",
		Setup: func(s *tinyscope.Scope) error {
			return tinyscope.Provide(s, func(s *tinyscope.Scope) (*Level, error) {
				return LoadLevel()
			})
		},
	})
	if err != nil {
		// handle error
	}

	defer activation.Deactivate()

	level := tinyscope.MustGet[*Level](root)

Constructor parameters are always resolved from the scope that owns the constructor.

Functions:
  - tinyscope.NewScope
  - tinyscope.Provide
  - tinyscope.Instance
  - tinyscope.Construct
  - tinyscope.ConstructAs
  - tinyscope.Get
  - tinyscope.MustGet
  - tinyscope.TryGet
  - tinyscope.Type
  - tinyscope.Ctor0 ... tinyscope.Ctor3
  - tinyscope.Func
  - tinyscope.Fields
  - tinyscope.Pointer
  - tinyscope.Bootstrap
  - tinyscope.Activate
  - tinyscope.WithScope
  - tinyscope.FromContext
  - tinyscope.SetDefaultLogger
*/
package tinyscope
