package component

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is a graph exported by a host build system. JSON exports parse as
// well since YAML is a superset of JSON.
type File struct {
	Root       string          `yaml:"root"`
	Toolchain  string          `yaml:"toolchain"`
	Components []FileComponent `yaml:"components"`
}

// FileComponent is one node of an exported graph.
type FileComponent struct {
	ID           string    `yaml:"id"`
	Archive      string    `yaml:"archive"`
	Skip         bool      `yaml:"skip"`
	Dependencies []FileDep `yaml:"dependencies"`
}

// FileDep is an edge; it may be written as a bare "g:n:v" string.
type FileDep struct {
	ID         string `yaml:"id"`
	Requested  string `yaml:"requested"`
	Unresolved string `yaml:"unresolved"`
}

func (d *FileDep) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.ID = node.Value
		return nil
	}
	type plain FileDep
	return node.Decode((*plain)(d))
}

// Loaded is a parsed graph file along with the per-component documentation
// archive locations it declares.
type Loaded struct {
	Graph     Graph
	Toolchain string
	Archives  map[ID]string
	Skipped   map[ID]bool
}

// LoadFile reads and parses a graph file. Relative archive paths are
// resolved against the file's directory.
func LoadFile(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing graph file %s: %w", path, err)
	}
	return f.Resolve(filepath.Dir(path))
}

// Resolve converts the file form into a Graph.
func (f *File) Resolve(baseDir string) (*Loaded, error) {
	root, err := ParseID(f.Root)
	if err != nil {
		return nil, fmt.Errorf("graph root: %w", err)
	}

	l := &Loaded{
		Graph:     Graph{Root: root, Nodes: make(map[ID][]Edge, len(f.Components))},
		Toolchain: f.Toolchain,
		Archives:  make(map[ID]string),
		Skipped:   make(map[ID]bool),
	}
	for _, c := range f.Components {
		id, err := ParseID(c.ID)
		if err != nil {
			return nil, fmt.Errorf("graph component: %w", err)
		}
		if _, dup := l.Graph.Nodes[id]; dup {
			return nil, fmt.Errorf("graph component %s declared twice", id)
		}
		edges := make([]Edge, 0, len(c.Dependencies))
		for _, dep := range c.Dependencies {
			if dep.Unresolved != "" || dep.ID == "" {
				requested := dep.Requested
				if requested == "" {
					requested = dep.ID
				}
				edges = append(edges, Unresolved(requested, dep.Unresolved))
				continue
			}
			target, err := ParseID(dep.ID)
			if err != nil {
				return nil, fmt.Errorf("dependency of %s: %w", id, err)
			}
			edges = append(edges, Resolved(target))
		}
		l.Graph.Nodes[id] = edges

		if c.Skip {
			l.Skipped[id] = true
		}
		if c.Archive != "" {
			archive := c.Archive
			if !filepath.IsAbs(archive) {
				archive = filepath.Join(baseDir, archive)
			}
			l.Archives[id] = archive
		}
	}
	return l, nil
}
