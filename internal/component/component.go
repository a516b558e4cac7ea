// Package component models resolved dependency graphs exported by a host
// build system and walks them in a deterministic breadth-first order.
package component

import (
	"fmt"
	"strings"
)

// ID identifies one resolved component (a dependency or the build itself).
// It is comparable and used directly as a map key.
type ID struct {
	Group   string `json:"group" yaml:"group"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// String renders the id as group:name:version.
func (id ID) String() string {
	return id.Group + ":" + id.Name + ":" + id.Version
}

// ParseID parses group:name:version notation.
func ParseID(s string) (ID, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return ID{}, fmt.Errorf("invalid component id %q: need group:name:version", s)
	}
	for _, p := range parts {
		if p == "" {
			return ID{}, fmt.Errorf("invalid component id %q: empty segment", s)
		}
	}
	return ID{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
}

// Edge is a dependency edge. Unresolved edges keep the requested notation
// and the reason the host could not resolve them.
type Edge struct {
	Target    ID
	Resolved  bool
	Requested string
	Reason    string
}

// Resolved returns a resolved edge to id.
func Resolved(id ID) Edge {
	return Edge{Target: id, Resolved: true}
}

// Unresolved returns an edge the host failed to resolve.
func Unresolved(requested, reason string) Edge {
	return Edge{Requested: requested, Reason: reason}
}

func (e Edge) String() string {
	if e.Resolved {
		return e.Target.String()
	}
	if e.Reason == "" {
		return e.Requested + " (unresolved)"
	}
	return e.Requested + " (" + e.Reason + ")"
}

// Graph is an already conflict-resolved dependency graph. Nodes maps each
// component to its ordered outgoing edges. A component without an entry in
// Nodes has no dependencies.
type Graph struct {
	Root  ID
	Nodes map[ID][]Edge
}

// GraphResolutionError reports an unresolved edge in the input graph.
type GraphResolutionError struct {
	From ID
	Edge Edge
}

func (e *GraphResolutionError) Error() string {
	return fmt.Sprintf("can not create javadoc link for unresolved dependency %s of %s", e.Edge, e.From)
}
