package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/index"
	"github.com/jcdickinson/doclinks/internal/linkurl"
	"github.com/jcdickinson/doclinks/internal/toolchain"
)

// SourceLookup reports where the host has documentation for id. ok=false
// means the component has no documentation at all and is left out. A
// SourceNone result with ok=true means "no local archive": the index is
// downloaded from the component's documentation URL.
type SourceLookup func(id component.ID) (src index.Source, ok bool)

// NoLocalSources downloads every index from its documentation URL.
func NoLocalSources(component.ID) (index.Source, bool) {
	return index.Source{}, true
}

// FileSources looks up the archives and skip markers of a graph file.
func FileSources(l *component.Loaded) SourceLookup {
	return func(id component.ID) (index.Source, bool) {
		if l.Skipped[id] {
			return index.Source{}, false
		}
		if path, ok := l.Archives[id]; ok {
			return index.ArchiveSource(path), true
		}
		return index.Source{}, true
	}
}

// Builder turns a resolved graph into a Manifest.
type Builder struct {
	Policy   toolchain.Policy
	Resolver linkurl.Resolver
	Sources  SourceLookup
	Acquirer *index.Acquirer
	Logger   *slog.Logger
}

// Build walks g and returns its manifest. The walk is completed before any
// index is acquired, so a broken graph leaves the cache untouched. Missing
// documentation for single components only produces warnings; a component
// whose coordinates can not name a cache slot is left out. A cancelled ctx
// fails the build.
func (b *Builder) Build(ctx context.Context, g component.Graph) (*Manifest, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolve := b.Resolver
	if resolve == nil {
		resolve = linkurl.Default
	}
	lookup := b.Sources
	if lookup == nil {
		lookup = NoLocalSources
	}
	offline := b.Policy.UsesOfflineLinking()
	if offline && b.Acquirer == nil {
		return nil, errors.New("offline linking requires an index acquirer")
	}

	ids, err := component.Collect(g)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Directives: make([]Directive, 0, len(ids)+1),
	}
	m.Directives = append(m.Directives, Directive{Kind: Link, URL: b.Policy.StdlibLink()})

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("building javadoc links: %w", err)
		}

		url := resolve(id)
		if !offline {
			m.Directives = append(m.Directives, Directive{Kind: Link, URL: url})
			continue
		}

		src, ok := lookup(id)
		if !ok {
			logger.Debug("no documentation for component, skipping", "component", id.String())
			continue
		}
		if src.Kind == index.SourceNone {
			src = index.RemoteSource(url)
		}

		slot, warn := b.Acquirer.Ensure(ctx, id, src)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("building javadoc links: %w", err)
		}
		if warn != nil {
			logger.Warn("no javadoc index for component", "component", id.String(), "source", src.String(), "error", warn.Err)
			m.Warnings = append(m.Warnings, warn)
			if errors.Is(warn, index.ErrInvalidSlot) {
				continue
			}
		}
		m.Directives = append(m.Directives, Directive{Kind: LinkOffline, URL: url, Slot: slot})
	}

	logger.Info("built javadoc links",
		"toolchain", b.Policy.Major,
		"offline", offline,
		"components", len(ids),
		"directives", len(m.Directives),
		"warnings", len(m.Warnings),
	)
	return m, nil
}
