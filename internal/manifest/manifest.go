// Package manifest builds the javadoc link options for a dependency graph
// and writes them as an options file.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcdickinson/doclinks/internal/index"
)

// Kind selects the javadoc option a Directive renders to.
type Kind int

const (
	// Link renders as "-link <url>".
	Link Kind = iota
	// LinkOffline renders as "-linkoffline <url> <slot>".
	LinkOffline
)

// Directive is one javadoc link option.
type Directive struct {
	Kind Kind
	URL  string
	Slot string
}

// String renders the directive as a javadoc options line.
func (d Directive) String() string {
	if d.Kind == LinkOffline {
		return "-linkoffline " + d.URL + " " + d.Slot
	}
	return "-link " + d.URL
}

// Manifest is the ordered list of directives, standard library first, then
// components in walk order.
type Manifest struct {
	Directives []Directive
	Warnings   []*index.Warning
}

// Lines renders every directive.
func (m *Manifest) Lines() []string {
	lines := make([]string, len(m.Directives))
	for i, d := range m.Directives {
		lines[i] = d.String()
	}
	return lines
}

// WriteTo writes the options, one directive per line.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(m.Lines(), "\n"))
	return int64(n), err
}

// WriteFile writes the options file at path, replacing it atomically.
func (m *Manifest) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating options directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating options file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := m.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing options file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing options file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing options file: %w", err)
	}
	return nil
}

// Summary describes the manifest for humans.
func (m *Manifest) Summary() string {
	online, offline := 0, 0
	for _, d := range m.Directives {
		if d.Kind == LinkOffline {
			offline++
		} else {
			online++
		}
	}
	return fmt.Sprintf("%d links (%d online, %d offline), %d warnings", len(m.Directives), online, offline, len(m.Warnings))
}
