package options

import (
	"sort"

	"github.com/spf13/cast"
)

// ApplyDefaults fills options the command line left unset from a config map.
// Keys may use either the internal name or the flag spelling. Command-line
// values always win, an explicit --flag=false included; a default for a
// repeated option replaces nothing that was supplied explicitly.
func ApplyDefaults(b *Builder, defaults map[string]any) error {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	// deterministic error reporting
	sort.Strings(keys)

	for _, key := range keys {
		name := SpecName(key)
		spec, ok := b.catalog.Lookup(name)
		if !ok {
			return &ValidationError{Option: name, Reason: "unknown option in config"}
		}
		if b.Assigned(name) {
			continue
		}
		v, err := coerce(spec, defaults[key])
		if err != nil {
			return &ValidationError{Option: name, Reason: "config value: " + err.Error()}
		}
		if err := b.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

func coerce(spec Spec, raw any) (Value, error) {
	switch spec.Kind {
	case KindBool:
		on, err := cast.ToBoolE(raw)
		if err != nil {
			return Value{}, err
		}
		if !on {
			return Value{kind: KindBool}, nil
		}
		return BoolValue(), nil
	case KindString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case KindInt:
		n, err := cast.ToIntE(raw)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	default:
		// a scalar in YAML ("path: .") is a one-element list
		if s, ok := raw.(string); ok {
			return StringsValue(s), nil
		}
		items, err := cast.ToStringSliceE(raw)
		if err != nil {
			return Value{}, err
		}
		return StringsValue(items...), nil
	}
}
