// Package linkurl maps components to the base URL of their published
// javadoc.
package linkurl

import (
	"strings"

	"github.com/jcdickinson/doclinks/internal/component"
)

// DefaultTemplate points at javadoc.io, which hosts javadoc for every
// artifact published to Maven Central.
const DefaultTemplate = "https://javadoc.io/doc/{group}/{name}/{version}/"

// Resolver returns the documentation base URL of a component. It must be
// total and free of side effects.
type Resolver func(component.ID) string

// Default resolves against DefaultTemplate.
var Default = Template(DefaultTemplate)

// Template returns a Resolver that substitutes {group}, {name} and
// {version} in tmpl. The result always ends with a slash.
func Template(tmpl string) Resolver {
	return func(id component.ID) string {
		r := strings.NewReplacer(
			"{group}", id.Group,
			"{name}", id.Name,
			"{version}", id.Version,
		)
		return withSlash(r.Replace(tmpl))
	}
}

// Rule maps a group to a URL template. Group matches exactly, or by prefix
// when it ends in ".*". An empty group matches everything.
type Rule struct {
	Group    string `mapstructure:"group"`
	Template string `mapstructure:"template"`
}

func (r Rule) matches(group string) bool {
	switch {
	case r.Group == "" || r.Group == "*":
		return true
	case strings.HasSuffix(r.Group, ".*"):
		prefix := strings.TrimSuffix(r.Group, "*")
		return group+"." == prefix || strings.HasPrefix(group, prefix)
	default:
		return r.Group == group
	}
}

// Rules returns a Resolver that applies the first matching rule and falls
// back to fallback (Default when nil).
func Rules(rules []Rule, fallback Resolver) Resolver {
	if fallback == nil {
		fallback = Default
	}
	compiled := make([]Resolver, len(rules))
	for i, r := range rules {
		compiled[i] = Template(r.Template)
	}
	return func(id component.ID) string {
		for i, r := range rules {
			if r.matches(id.Group) {
				return compiled[i](id)
			}
		}
		return fallback(id)
	}
}

func withSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}
