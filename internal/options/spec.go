// Package options declares the scanner flags the hook forwards, parses them
// from the command line and config, and translates them back into argv.
package options

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind is the value kind of an option.
type Kind int

// Supported option kinds.
const (
	KindBool Kind = iota
	KindString
	KindInt
	KindStrings
)

// String returns the kind name shown in the options listing.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindStrings:
		return "strings"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec describes one forwarded flag.
type Spec struct {
	Name     string
	Kind     Kind
	Required bool
	Usage    string
}

// Flag returns the external flag spelling without the leading dashes.
func (s Spec) Flag() string {
	return FlagName(s.Name)
}

// FlagName maps an internal option name to its flag spelling.
func FlagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// SpecName maps a flag spelling back to the internal option name.
func SpecName(flag string) string {
	return strings.ReplaceAll(strings.TrimLeft(flag, "-"), "-", "_")
}

var (
	// ErrInvalidName is returned for option names outside [a-z][a-z0-9_]*.
	ErrInvalidName = errors.New("invalid option name")
	// ErrDuplicateName is returned when two specs share a name or flag spelling.
	ErrDuplicateName = errors.New("duplicate option name")
)

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Catalog is an ordered table of option specs. Declaration order is the
// order options are emitted in.
type Catalog struct {
	specs []Spec
	index map[string]int
}

// NewCatalog validates specs and builds a catalog.
func NewCatalog(specs ...Spec) (*Catalog, error) {
	c := &Catalog{
		specs: make([]Spec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	flags := make(map[string]string, len(specs))
	for _, s := range specs {
		if !nameRe.MatchString(s.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, s.Name)
		}
		if s.Kind < KindBool || s.Kind > KindStrings {
			return nil, fmt.Errorf("option %q: unknown kind %d", s.Name, int(s.Kind))
		}
		if _, ok := c.index[s.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		if prev, ok := flags[s.Flag()]; ok {
			return nil, fmt.Errorf("%w: %q and %q both map to --%s", ErrDuplicateName, prev, s.Name, s.Flag())
		}
		flags[s.Flag()] = s.Name
		c.index[s.Name] = len(c.specs)
		c.specs = append(c.specs, s)
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid table.
func MustCatalog(specs ...Spec) *Catalog {
	c, err := NewCatalog(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Specs returns a copy of the specs in declaration order.
func (c *Catalog) Specs() []Spec {
	return append([]Spec(nil), c.specs...)
}

// Lookup returns the spec for an internal name.
func (c *Catalog) Lookup(name string) (Spec, bool) {
	i, ok := c.index[name]
	if !ok {
		return Spec{}, false
	}
	return c.specs[i], true
}

// Len returns the number of specs.
func (c *Catalog) Len() int {
	return len(c.specs)
}
