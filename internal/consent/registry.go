package consent

import "fmt"

// Expectation describes the cookies a given execution environment should
// carry after consent has been granted. Entries are "name@domain" strings.
// Required cookies gate validity; optional cookies are counted for coverage
// diagnostics only.
type Expectation struct {
	Required []string `mapstructure:"required" json:"required"`
	Optional []string `mapstructure:"optional" json:"optional,omitempty"`
}

// defaultExpectations is the built-in expectation table for the booking
// site's execution matrix. Keys are environment identifiers as chosen by the
// runner's profile set. Desktop and mobile profiles diverge because some ad
// vendors skip mobile emulated devices.
var defaultExpectations = map[string]Expectation{
	"chromium-desktop": {
		Required: []string{
			"cookieyes-consent@www.fernweh.travel",
			"_ga@.fernweh.travel",
			"_gid@.fernweh.travel",
		},
		Optional: []string{
			"_gcl_au@.fernweh.travel",
			"_fbp@.fernweh.travel",
			"IDE@.doubleclick.net",
			"test_cookie@.doubleclick.net",
			"NID@.google.com",
		},
	},
	"chromium-mobile": {
		Required: []string{
			"cookieyes-consent@www.fernweh.travel",
			"_ga@.fernweh.travel",
		},
		Optional: []string{
			"_gid@.fernweh.travel",
			"_gcl_au@.fernweh.travel",
			"_fbp@.fernweh.travel",
		},
	},
	"chromium-tablet": {
		Required: []string{
			"cookieyes-consent@www.fernweh.travel",
			"_ga@.fernweh.travel",
		},
		Optional: []string{
			"_gid@.fernweh.travel",
			"IDE@.doubleclick.net",
		},
	},
}

// Registry is the immutable per-environment expectation lookup. It is built
// once at process start; a missing environment is not an error, since new
// profiles join the execution matrix before expectations are authored for
// them.
type Registry struct {
	expectations map[string]Expectation
}

// NewRegistry builds a registry from the built-in table merged with optional
// config-file overrides. An override replaces the whole entry for its
// environment; overrides may also introduce environments the built-in table
// does not know.
func NewRegistry(overrides map[string]Expectation) (*Registry, error) {
	merged := make(map[string]Expectation, len(defaultExpectations)+len(overrides))
	for env, exp := range defaultExpectations {
		merged[env] = exp
	}
	for env, exp := range overrides {
		merged[env] = exp
	}
	return NewRegistryFromTable(merged)
}

// NewRegistryFromTable builds a registry over exactly the given table,
// without the built-in defaults. Every entry must have required cookies.
func NewRegistryFromTable(table map[string]Expectation) (*Registry, error) {
	expectations := make(map[string]Expectation, len(table))
	for env, exp := range table {
		if len(exp.Required) == 0 {
			return nil, fmt.Errorf("expectation for environment %q has no required cookies", env)
		}
		expectations[env] = exp
	}
	return &Registry{expectations: expectations}, nil
}

// DefaultRegistry returns a registry over the built-in table alone. The
// built-in table always satisfies the non-empty-required invariant.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the expectation for the given environment identifier. The
// second return is false when the environment is unknown; callers should log
// a warning and skip validation rather than fail.
func (r *Registry) Lookup(envID string) (Expectation, bool) {
	exp, ok := r.expectations[envID]
	return exp, ok
}

// Environments returns the identifiers known to the registry, in no
// particular order.
func (r *Registry) Environments() []string {
	envs := make([]string, 0, len(r.expectations))
	for env := range r.expectations {
		envs = append(envs, env)
	}
	return envs
}
