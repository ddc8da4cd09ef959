package options

// Value is the realised value of one option. The zero Value is absent.
type Value struct {
	kind    Kind
	present bool
	str     string
	num     int
	list    []string
}

// BoolValue returns a present boolean flag.
func BoolValue() Value {
	return Value{kind: KindBool, present: true}
}

// StringValue returns a single string value.
func StringValue(s string) Value {
	return Value{kind: KindString, present: true, str: s}
}

// IntValue returns a single integer value.
func IntValue(n int) Value {
	return Value{kind: KindInt, present: true, num: n}
}

// StringsValue returns a repeated string value. An empty list is absent.
func StringsValue(items ...string) Value {
	if len(items) == 0 {
		return Value{kind: KindStrings}
	}
	return Value{kind: KindStrings, present: true, list: append([]string(nil), items...)}
}

// Present reports whether the value was supplied.
func (v Value) Present() bool { return v.present }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// String returns the string payload.
func (v Value) String() string { return v.str }

// Int returns the integer payload.
func (v Value) Int() int { return v.num }

// Strings returns a copy of the list payload.
func (v Value) Strings() []string { return append([]string(nil), v.list...) }

// Set maps option names to values. It is built once by Parse or Builder and
// not changed afterwards.
type Set struct {
	catalog *Catalog
	values  map[string]Value
}

// Get returns the value for name; absent options yield the zero Value.
func (s *Set) Get(name string) Value {
	return s.values[name]
}

// Has reports whether name is present.
func (s *Set) Has(name string) bool {
	return s.values[name].present
}

// Names returns the present option names in catalog order.
func (s *Set) Names() []string {
	var names []string
	for _, spec := range s.catalog.specs {
		if s.Has(spec.Name) {
			names = append(names, spec.Name)
		}
	}
	return names
}

// Builder assembles a Set. Values are checked against the catalog kind.
type Builder struct {
	catalog  *Catalog
	values   map[string]Value
	assigned map[string]bool // every name passed to Set, absent values included
}

// NewBuilder returns a builder for the given catalog.
func NewBuilder(c *Catalog) *Builder {
	return &Builder{catalog: c, values: make(map[string]Value), assigned: make(map[string]bool)}
}

// Set stores v under name. A later call for the same name replaces the value.
// Storing an absent value clears the option but still marks it assigned.
func (b *Builder) Set(name string, v Value) error {
	spec, ok := b.catalog.Lookup(name)
	if !ok {
		return &ValidationError{Option: name, Reason: "unknown option"}
	}
	if v.kind != spec.Kind {
		return &ValidationError{Option: name, Reason: "expected " + spec.Kind.String() + ", got " + v.kind.String()}
	}
	b.assigned[name] = true
	if !v.present {
		delete(b.values, name)
		return nil
	}
	b.values[name] = v
	return nil
}

// Has reports whether name has been set on the builder.
func (b *Builder) Has(name string) bool {
	return b.values[name].present
}

// Assigned reports whether name was given a value, including an explicit
// false or empty one.
func (b *Builder) Assigned(name string) bool {
	return b.assigned[name]
}

// Build validates required options and returns the finished Set.
func (b *Builder) Build() (*Set, error) {
	for _, spec := range b.catalog.specs {
		if spec.Required && !b.Has(spec.Name) {
			return nil, &ValidationError{Option: spec.Name, Reason: "required option is missing"}
		}
	}
	values := make(map[string]Value, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return &Set{catalog: b.catalog, values: values}, nil
}
