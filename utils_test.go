package tinyscope_test

import (
	"fmt"

	"github.com/andriiyaremenko/tinyscope"
)

type Logger interface {
	Log(msg string)
}

type MemoryLogger struct {
	lines []string
}

func (l *MemoryLogger) Log(msg string) {
	l.lines = append(l.lines, msg)
}

type Service struct {
	logger Logger
}

func (s *Service) Logger() Logger {
	return s.logger
}

func newService(logger Logger) *Service {
	return &Service{logger: logger}
}

type NameService interface {
	Name() string
}

type NameProvider string

func (s NameProvider) Name() string {
	return string(s)
}

type Greeter struct {
	greeting string
}

func (g *Greeter) Name() string {
	return g.greeting
}

type ServiceWithPublicFields struct {
	Dependency   NameService
	Logger       Logger
	someProperty string
}

func (s ServiceWithPublicFields) SomeProperty() string {
	return s.someProperty
}

func (s *ServiceWithPublicFields) Hello() string {
	return "Hello " + s.Dependency.Name()
}

type Hero struct {
	name string
}

func (h *Hero) Announce() string {
	return fmt.Sprintf("%s is our hero!", h.name)
}

type Impostor struct {
	hero *Hero
	name string
}

func (i *Impostor) Name() string {
	return i.name
}

func greeterConstructor() *Greeter {
	return &Greeter{greeting: "hello"}
}

func nameServiceConstructor() (NameService, error) {
	return NameProvider("Bob"), nil
}

func heroConstructor(nameService NameService) *Hero {
	return &Hero{nameService.Name()}
}

func heroWithLoggerConstructor(nameService NameService, logger Logger) *Hero {
	logger.Log("hero " + nameService.Name() + " created")

	return &Hero{nameService.Name()}
}

func impostorConstructor(nameService NameService, hero *Hero) *Impostor {
	return &Impostor{name: nameService.Name(), hero: hero}
}

func disguisedImpostorConstructor(impostor *Impostor) *Hero {
	return &Hero{name: impostor.Name()}
}

func scaredHeroConstructor(nameService NameService) (*Hero, error) {
	panic(fmt.Errorf("scared"))
}

// counts calls of returned factory function
func countingGreeter(calls *int) func(*tinyscope.Scope) (*Greeter, error) {
	return func(*tinyscope.Scope) (*Greeter, error) {
		*calls++

		return &Greeter{greeting: fmt.Sprintf("hello #%d", *calls)}, nil
	}
}
