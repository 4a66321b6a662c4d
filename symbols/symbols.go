// Package symbols keeps the names declared in one class: statics and fields
// for the whole class, arguments and locals for the subroutine being
// compiled.
package symbols

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Kind int

const (
	Static Kind = iota
	Field
	Argument
	Local
	ClassName
	SubroutineName
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "field"
	case Argument:
		return "argument"
	case Local:
		return "local"
	case ClassName:
		return "class"
	case SubroutineName:
		return "subroutine"
	}
	return "unknown"
}

// classScoped reports whether names of kind k live for the whole class.
func (k Kind) classScoped() bool {
	switch k {
	case Static, Field, ClassName, SubroutineName:
		return true
	case Argument, Local:
		return false
	}
	return false
}

type Symbol struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

var (
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrUndefinedSymbol = errors.New("undefined symbol")
)

// Error ties ErrDuplicateSymbol or ErrUndefinedSymbol to a name.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrDuplicateSymbol) {
		return "Duplicate symbol " + e.Name
	}
	return "Could not find symbol " + e.Name
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Table struct {
	class      map[string]Symbol
	subroutine map[string]Symbol
	counts     map[Kind]int
}

func New() *Table {
	return &Table{
		class:      make(map[string]Symbol),
		subroutine: make(map[string]Symbol),
		counts:     make(map[Kind]int),
	}
}

// StartSubroutine forgets every argument and local.
func (t *Table) StartSubroutine() {
	t.subroutine = make(map[string]Symbol)
	t.counts[Argument] = 0
	t.counts[Local] = 0
}

// Declare adds name to the scope of kind and returns its index among the
// symbols of that kind.
func (t *Table) Declare(name, typ string, kind Kind) (int, error) {
	if kind == ClassName || kind == SubroutineName {
		return 0, errors.Errorf("%s names are resolved by convention, not declared", kind)
	}

	scope := t.scope(kind)
	if _, ok := scope[name]; ok {
		return 0, &Error{Name: name, Err: ErrDuplicateSymbol}
	}

	index := t.counts[kind]
	scope[name] = Symbol{Name: name, Type: typ, Kind: kind, Index: index}
	t.counts[kind]++

	return index, nil
}

// Resolve finds name in the subroutine scope, then in the class scope.
func (t *Table) Resolve(name string) (Symbol, error) {
	if symbol, ok := t.Lookup(name); ok {
		return symbol, nil
	}
	return Symbol{}, &Error{Name: name, Err: ErrUndefinedSymbol}
}

// Lookup is Resolve for callers that treat a missing name as a class or
// subroutine name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	if symbol, ok := t.subroutine[name]; ok {
		return symbol, true
	}
	symbol, ok := t.class[name]
	return symbol, ok
}

func (t *Table) Count(kind Kind) int {
	return t.counts[kind]
}

// Names lists the declared names of kind in index order.
func (t *Table) Names(kind Kind) []string {
	scope := t.scope(kind)
	names := make([]string, 0, t.counts[kind])
	for _, name := range maps.Keys(scope) {
		if scope[name].Kind == kind {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) bool {
		return scope[a].Index < scope[b].Index
	})
	return names
}

func (t *Table) scope(kind Kind) map[string]Symbol {
	if kind.classScoped() {
		return t.class
	}
	return t.subroutine
}
