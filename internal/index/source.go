package index

import (
	"fmt"

	"github.com/jcdickinson/doclinks/internal/component"
)

// SourceKind discriminates Source.
type SourceKind int

const (
	// SourceNone means no documentation is available for the component.
	SourceNone SourceKind = iota
	// SourceArchive is a local javadoc archive (jar, zip or tarball).
	SourceArchive
	// SourceRemote is a documentation site serving the index files.
	SourceRemote
)

func (k SourceKind) String() string {
	switch k {
	case SourceArchive:
		return "archive"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// Source is where the index files of a component come from. The zero
// value is SourceNone.
type Source struct {
	Kind    SourceKind
	Path    string
	BaseURL string
}

// ArchiveSource returns a Source reading from a local archive.
func ArchiveSource(path string) Source {
	return Source{Kind: SourceArchive, Path: path}
}

// RemoteSource returns a Source downloading from baseURL.
func RemoteSource(baseURL string) Source {
	return Source{Kind: SourceRemote, BaseURL: baseURL}
}

func (s Source) String() string {
	switch s.Kind {
	case SourceArchive:
		return s.Path
	case SourceRemote:
		return s.BaseURL
	default:
		return "no source"
	}
}

// Warning is a non-fatal failure to obtain the index of one component.
// The component still gets an offline link to its (empty) slot.
type Warning struct {
	ID     component.ID
	Source Source
	Err    error
}

func (w *Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.ID, w.Err)
}

func (w *Warning) Unwrap() error {
	return w.Err
}
