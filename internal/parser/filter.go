package parser

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/jujuviz/core/internal/models"
)

// Filter selects services by name. Exclude is applied first, include then
// narrows down what is left.
type Filter struct {
	Exclude *regexp.Regexp
	Include *regexp.Regexp
}

// NewFilter compiles the exclude and include patterns. Each pattern matches
// anywhere in a service name, so "hapro" drops "haproxy". Empty patterns
// disable the corresponding filter.
func NewFilter(exclude, include string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.Exclude, err = compilePattern(exclude); err != nil {
		return nil, errors.Wrap(err, "invalid exclude pattern")
	}
	if f.Include, err = compilePattern(include); err != nil {
		return nil, errors.Wrap(err, "invalid include pattern")
	}
	return f, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile("(" + pattern + ")")
}

func (f *Filter) Apply(services map[string]models.ServiceStatus) map[string]models.ServiceStatus {
	return filterMap(f, services)
}

// ApplyRaw filters untyped service entries by the same rules as Apply.
func (f *Filter) ApplyRaw(services map[string]any) map[string]any {
	return filterMap(f, services)
}

func filterMap[V any](f *Filter, services map[string]V) map[string]V {
	out := make(map[string]V, len(services))
	for name, svc := range services {
		if f.Keep(name) {
			out[name] = svc
		}
	}
	return out
}

func (f *Filter) Keep(name string) bool {
	if f == nil {
		return true
	}
	if f.Exclude != nil && f.Exclude.MatchString(name) {
		return false
	}
	if f.Include != nil && !f.Include.MatchString(name) {
		return false
	}
	return true
}
