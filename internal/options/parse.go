package options

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

// ValidationError reports a bad, missing or unknown option. It is always
// detected before any process is started.
type ValidationError struct {
	Option string // internal name, empty when the offending flag is unknown
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Option == "" {
		return "invalid options: " + e.Reason
	}
	return fmt.Sprintf("invalid option --%s: %s", FlagName(e.Option), e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Register adds one flag per spec to fs. Repeated options use StringArray so
// values containing commas are passed through untouched.
func (c *Catalog) Register(fs *pflag.FlagSet) {
	for _, s := range c.specs {
		switch s.Kind {
		case KindBool:
			fs.Bool(s.Flag(), false, s.Usage)
		case KindString:
			fs.String(s.Flag(), "", s.Usage)
		case KindInt:
			fs.Int(s.Flag(), 0, s.Usage)
		case KindStrings:
			fs.StringArray(s.Flag(), nil, s.Usage)
		}
	}
}

// FlagSet returns a fresh, silent flag set with the catalog registered.
func (c *Catalog) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)
	c.Register(fs)
	return fs
}

// Parse parses raw arguments against the catalog. It returns a builder so
// config defaults can still be applied before Build, plus any positional
// arguments.
func Parse(c *Catalog, args []string) (*Builder, []string, error) {
	fs := c.FlagSet("scan")
	if err := fs.Parse(args); err != nil {
		return nil, nil, FlagError(err)
	}
	b, err := FromFlags(c, fs)
	if err != nil {
		return nil, nil, err
	}
	return b, fs.Args(), nil
}

// FromFlags reads every changed catalog flag from an already parsed flag set.
// A boolean flag explicitly set to false is absent but still assigned, so
// config defaults cannot turn it back on.
func FromFlags(c *Catalog, fs *pflag.FlagSet) (*Builder, error) {
	b := NewBuilder(c)
	for _, s := range c.specs {
		f := fs.Lookup(s.Flag())
		if f == nil || !f.Changed {
			continue
		}

		var (
			v   Value
			err error
		)
		switch s.Kind {
		case KindBool:
			var on bool
			on, err = fs.GetBool(s.Flag())
			v = Value{kind: KindBool}
			if on {
				v = BoolValue()
			}
		case KindString:
			var str string
			str, err = fs.GetString(s.Flag())
			v = StringValue(str)
		case KindInt:
			var n int
			n, err = fs.GetInt(s.Flag())
			v = IntValue(n)
		case KindStrings:
			var items []string
			items, err = fs.GetStringArray(s.Flag())
			v = StringsValue(items...)
		}
		if err != nil {
			return nil, &ValidationError{Option: s.Name, Reason: err.Error()}
		}
		if err := b.Set(s.Name, v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

var invalidArgRe = regexp.MustCompile(`^invalid argument "(.*)" for "(?:-\w, )?--([^"]+)" flag`)

// FlagError converts a pflag parse error into a *ValidationError naming the
// offending option where pflag reports one.
func FlagError(err error) error {
	if err == nil || IsValidationError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		return &ValidationError{Option: SpecName(strings.TrimPrefix(msg, "unknown flag: ")), Reason: "unknown flag"}
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		return &ValidationError{Reason: msg}
	case strings.HasPrefix(msg, "flag needs an argument: --"):
		return &ValidationError{Option: SpecName(strings.TrimPrefix(msg, "flag needs an argument: ")), Reason: "flag needs an argument"}
	}
	if m := invalidArgRe.FindStringSubmatch(msg); m != nil {
		return &ValidationError{Option: SpecName(m[2]), Reason: fmt.Sprintf("invalid value %q", m[1])}
	}
	return &ValidationError{Reason: msg}
}
