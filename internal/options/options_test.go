package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/wiz-iac/internal/options"
)

func testCatalog(t *testing.T) *options.Catalog {
	t.Helper()
	c, err := options.NewCatalog(
		options.Spec{Name: "path", Kind: options.KindStrings, Required: true},
		options.Spec{Name: "policy", Kind: options.KindStrings},
		options.Spec{Name: "format", Kind: options.KindString},
		options.Spec{Name: "dir_traversal_workers", Kind: options.KindInt},
		options.Spec{Name: "no_color", Kind: options.KindBool},
		options.Spec{Name: "secrets", Kind: options.KindBool},
	)
	require.NoError(t, err)
	return c
}

func parse(t *testing.T, c *options.Catalog, args ...string) *options.Set {
	t.Helper()
	b, _, err := options.Parse(c, args)
	require.NoError(t, err)
	set, err := b.Build()
	require.NoError(t, err)
	return set
}

func TestNewCatalog(t *testing.T) {
	t.Run("rejects flag collisions", func(t *testing.T) {
		_, err := options.NewCatalog(
			options.Spec{Name: "no_color", Kind: options.KindBool},
			options.Spec{Name: "no_color", Kind: options.KindString},
		)
		require.ErrorIs(t, err, options.ErrDuplicateName)
	})

	t.Run("rejects names that are not snake case", func(t *testing.T) {
		for _, name := range []string{"", "no-color", "NoColor", "1st", "a b"} {
			_, err := options.NewCatalog(options.Spec{Name: name, Kind: options.KindBool})
			require.ErrorIs(t, err, options.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := options.NewCatalog(options.Spec{Name: "x", Kind: options.Kind(42)})
		require.Error(t, err)
	})

	t.Run("keeps declaration order", func(t *testing.T) {
		c := testCatalog(t)
		var names []string
		for _, s := range c.Specs() {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"path", "policy", "format", "dir_traversal_workers", "no_color", "secrets"}, names)
		assert.Equal(t, 6, c.Len())
	})
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "max-cloudformation-intrinsics-depth", options.FlagName("max_cloudformation_intrinsics_depth"))
	assert.Equal(t, "path", options.FlagName("path"))
	assert.Equal(t, "parameter_files", options.SpecName("--parameter-files"))
	assert.Equal(t, "no_color", options.SpecName("no-color"))
}

func TestIaCScanCatalog(t *testing.T) {
	spec, ok := options.IaCScan.Lookup("path")
	require.True(t, ok)
	assert.True(t, spec.Required)
	assert.Equal(t, options.KindStrings, spec.Kind)

	for name, kind := range map[string]options.Kind{
		"secrets":                             options.KindBool,
		"no_color":                            options.KindBool,
		"ignore_comments":                     options.KindBool,
		"format":                              options.KindString,
		"project":                             options.KindString,
		"timeout":                             options.KindString,
		"dir_traversal_workers":               options.KindInt,
		"rule_evaluation_workers":             options.KindInt,
		"max_cloudformation_intrinsics_depth": options.KindInt,
		"policy":                              options.KindStrings,
		"application":                         options.KindStrings,
		"output":                              options.KindStrings,
		"tag":                                 options.KindStrings,
		"types":                               options.KindStrings,
		"parameter_files":                     options.KindStrings,
	} {
		spec, ok := options.IaCScan.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, kind, spec.Kind, name)
	}
}

func TestParse(t *testing.T) {
	c := testCatalog(t)

	t.Run("all kinds", func(t *testing.T) {
		set := parse(t, c,
			"--path", "a", "--secrets", "--format", "json",
			"--dir-traversal-workers", "4", "--path", "b,c",
		)
		assert.Equal(t, []string{"a", "b,c"}, set.Get("path").Strings())
		assert.True(t, set.Has("secrets"))
		assert.False(t, set.Has("no_color"))
		assert.Equal(t, "json", set.Get("format").String())
		assert.Equal(t, 4, set.Get("dir_traversal_workers").Int())
		assert.Equal(t, []string{"path", "format", "dir_traversal_workers", "secrets"}, set.Names())
	})

	t.Run("explicit false is absent", func(t *testing.T) {
		b, _, err := options.Parse(c, []string{"--path", ".", "--secrets=false"})
		require.NoError(t, err)
		assert.False(t, b.Has("secrets"))
		assert.True(t, b.Assigned("secrets"))
		assert.False(t, b.Assigned("no_color"))

		set, err := b.Build()
		require.NoError(t, err)
		assert.False(t, set.Has("secrets"))
		assert.Equal(t, []string{"--path", "."}, options.Translate(set))
	})

	t.Run("positional arguments are returned", func(t *testing.T) {
		_, rest, err := options.Parse(c, []string{"main.tf", "--path", ".", "vars.tf"})
		require.NoError(t, err)
		assert.Equal(t, []string{"main.tf", "vars.tf"}, rest)
	})

	tests := []struct {
		name   string
		args   []string
		option string
	}{
		{name: "unknown flag", args: []string{"--path", ".", "--bogus"}, option: "bogus"},
		{name: "bad integer", args: []string{"--path", ".", "--dir-traversal-workers", "many"}, option: "dir_traversal_workers"},
		{name: "bad boolean", args: []string{"--path", ".", "--secrets=maybe"}, option: "secrets"},
		{name: "missing value", args: []string{"--path"}, option: "path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := options.Parse(c, tt.args)
			require.Error(t, err)
			var ve *options.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.option, ve.Option)
		})
	}

	t.Run("required option missing", func(t *testing.T) {
		b, _, err := options.Parse(c, []string{"--policy", "default"})
		require.NoError(t, err)
		_, err = b.Build()
		var ve *options.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "path", ve.Option)
		assert.EqualError(t, err, "invalid option --path: required option is missing")
	})
}

func TestBuilderRejectsWrongKind(t *testing.T) {
	b := options.NewBuilder(testCatalog(t))
	err := b.Set("format", options.IntValue(3))
	require.True(t, options.IsValidationError(err))
	err = b.Set("nope", options.BoolValue())
	require.True(t, options.IsValidationError(err))
}

func TestTranslate(t *testing.T) {
	c := testCatalog(t)

	t.Run("example", func(t *testing.T) {
		set := parse(t, c, "--path", "./infra", "--policy", "default")
		assert.Equal(t, []string{"--path", "./infra", "--policy", "default"}, options.Translate(set))
	})

	t.Run("is deterministic", func(t *testing.T) {
		set := parse(t, c,
			"--secrets", "--policy", "p1", "--path", "x", "--format", "sarif",
			"--policy", "p2", "--dir-traversal-workers", "8", "--no-color",
		)
		first := options.Translate(set)
		for range 10 {
			require.Equal(t, first, options.Translate(set))
		}
		assert.Equal(t, []string{
			"--path", "x",
			"--policy", "p1", "--policy", "p2",
			"--format", "sarif",
			"--dir-traversal-workers", "8",
			"--no-color",
			"--secrets",
		}, first)
	})

	t.Run("booleans", func(t *testing.T) {
		unset := options.Translate(parse(t, c, "--path", "."))
		assert.NotContains(t, unset, "--secrets")

		set := options.Translate(parse(t, c, "--path", ".", "--secrets"))
		count := 0
		for i, tok := range set {
			if tok == "--secrets" {
				count++
				assert.Equal(t, len(set)-1, i, "no value may follow a boolean flag")
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("repeated values keep order", func(t *testing.T) {
		args := []string{"--path", "."}
		want := []string{"--path", "."}
		for _, p := range []string{"z", "a", "m", "a"} {
			args = append(args, "--policy", p)
			want = append(want, "--policy", p)
		}
		assert.Equal(t, want, options.Translate(parse(t, c, args...)))
	})
}

func TestApplyDefaults(t *testing.T) {
	c := testCatalog(t)

	t.Run("fills unset options", func(t *testing.T) {
		b, _, err := options.Parse(c, []string{"--format", "json"})
		require.NoError(t, err)
		err = options.ApplyDefaults(b, map[string]any{
			"path":                  ".",
			"format":                "sarif",
			"dir-traversal-workers": "6",
			"secrets":               true,
			"no_color":              false,
			"policy":                []any{"a", "b"},
		})
		require.NoError(t, err)
		set, err := b.Build()
		require.NoError(t, err)

		assert.Equal(t, []string{
			"--path", ".",
			"--policy", "a", "--policy", "b",
			"--format", "json",
			"--dir-traversal-workers", "6",
			"--secrets",
		}, options.Translate(set))
	})

	t.Run("command line wins for repeated options", func(t *testing.T) {
		b, _, err := options.Parse(c, []string{"--path", "cli"})
		require.NoError(t, err)
		require.NoError(t, options.ApplyDefaults(b, map[string]any{"path": []string{"cfg1", "cfg2"}}))
		set, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"cli"}, set.Get("path").Strings())
	})

	t.Run("command line false beats config true", func(t *testing.T) {
		b, _, err := options.Parse(c, []string{"--path", ".", "--secrets=false", "--no-color"})
		require.NoError(t, err)
		require.NoError(t, options.ApplyDefaults(b, map[string]any{
			"secrets":  true,
			"no_color": false,
			"format":   "json",
		}))
		set, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"--path", ".", "--format", "json", "--no-color"}, options.Translate(set))
	})

	t.Run("unknown key", func(t *testing.T) {
		b := options.NewBuilder(c)
		err := options.ApplyDefaults(b, map[string]any{"paht": "."})
		var ve *options.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "paht", ve.Option)
	})

	t.Run("uncoercible value", func(t *testing.T) {
		b := options.NewBuilder(c)
		err := options.ApplyDefaults(b, map[string]any{"dir_traversal_workers": "lots"})
		var ve *options.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "dir_traversal_workers", ve.Option)
	})
}
