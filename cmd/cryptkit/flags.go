package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue[T ~string] struct {
	value   *T
	allowed []T
}

var _ pflag.Value = (*enumValue[string])(nil)

func newEnumValue[T ~string](p *T, def T, allowed ...T) *enumValue[T] {
	*p = def
	return &enumValue[T]{value: p, allowed: allowed}
}

func (e *enumValue[T]) String() string { return string(*e.value) }

func (e *enumValue[T]) Set(s string) error {
	v := T(strings.ToLower(s))
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", e.Type())
	}
	*e.value = v
	return nil
}

func (e *enumValue[T]) Type() string {
	names := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		names[i] = string(a)
	}
	return strings.Join(names, "|")
}

// enumFlag registers an enumValue on fs.
func enumFlag[T ~string](fs *pflag.FlagSet, p *T, name, shorthand string, def T, usage string, allowed ...T) {
	fs.VarP(newEnumValue(p, def, allowed...), name, shorthand, usage)
}
