package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jcdickinson/doclinks/internal/component"
	"golang.org/x/sync/singleflight"
)

// ErrNoIndex is wrapped by warnings for components whose source did not
// provide either index file.
var ErrNoIndex = errors.New("neither element-list nor package-list found")

type result struct {
	slot string
	warn *Warning
	// interrupted results come from a cancelled context and are not kept.
	interrupted bool
}

// Acquirer fills cache slots, at most once per component per Acquirer.
type Acquirer struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger

	mu    sync.Mutex
	done  map[component.ID]result
	group singleflight.Group
}

// NewAcquirer returns an Acquirer writing into store. A nil logger uses
// slog.Default().
func NewAcquirer(store Store, fetcher Fetcher, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Acquirer{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		done:    make(map[component.ID]result),
	}
}

// Store returns the cache layout the Acquirer writes to.
func (a *Acquirer) Store() Store {
	return a.store
}

// Ensure makes sure the slot of id holds both index files, obtaining them
// from src if needed, and returns the slot path. Failures are reported as a
// Warning; the slot path is returned regardless. Repeated calls for the same
// id return the first outcome without touching disk or network, and
// concurrent calls share one acquisition.
//
// When ctx ends during the acquisition the Warning wraps ctx.Err() and
// nothing is remembered, so a later call tries again.
func (a *Acquirer) Ensure(ctx context.Context, id component.ID, src Source) (string, *Warning) {
	for {
		a.mu.Lock()
		r, ok := a.done[id]
		a.mu.Unlock()
		if ok {
			return r.slot, r.warn
		}

		v, _, _ := a.group.Do(id.String(), func() (interface{}, error) {
			a.mu.Lock()
			if r, ok := a.done[id]; ok {
				a.mu.Unlock()
				return r, nil
			}
			a.mu.Unlock()

			r := a.acquire(ctx, id, src)
			if !r.interrupted {
				a.mu.Lock()
				a.done[id] = r
				a.mu.Unlock()
			}
			return r, nil
		})
		r = v.(result)

		// Another caller's context ended the shared acquisition.
		if r.interrupted && ctx.Err() == nil {
			continue
		}
		return r.slot, r.warn
	}
}

func (a *Acquirer) acquire(ctx context.Context, id component.ID, src Source) result {
	slot := a.store.SlotPath(id)
	warn := func(err error) result {
		return result{
			slot:        slot,
			warn:        &Warning{ID: id, Source: src, Err: err},
			interrupted: ctx.Err() != nil,
		}
	}

	if err := validSlot(id); err != nil {
		return warn(err)
	}
	if err := ctx.Err(); err != nil {
		return warn(err)
	}
	if a.store.Complete(id) {
		a.logger.Debug("index already cached", "component", id.String(), "slot", slot)
		return result{slot: slot}
	}
	if err := os.MkdirAll(slot, 0755); err != nil {
		return warn(fmt.Errorf("creating cache slot: %w", err))
	}

	// A slot holding one file from an earlier run only needs its twin.
	element, pkg := a.store.Has(id)
	if !element && !pkg {
		var err error
		switch src.Kind {
		case SourceArchive:
			err = a.extract(id, src.Path, slot)
		case SourceRemote:
			err = a.download(ctx, id, src.BaseURL, slot)
		default:
			err = errors.New("no documentation source")
		}
		if err != nil {
			return warn(err)
		}
	}

	found, err := completeTwins(slot)
	if err != nil {
		return warn(err)
	}
	if !found {
		return warn(fmt.Errorf("%w in %s", ErrNoIndex, src))
	}
	return result{slot: slot}
}

func (a *Acquirer) extract(id component.ID, archivePath, slot string) error {
	names, err := extract(archivePath, slot)
	if err != nil {
		return err
	}
	a.logger.Debug("extracted index", "component", id.String(), "archive", archivePath, "files", names)
	return nil
}

// download tries the canonical name first and the legacy name second.
// Failed attempts are only logged; the caller notices the empty slot. A
// cancelled ctx stops the attempts and is returned.
func (a *Acquirer) download(ctx context.Context, id component.ID, baseURL, slot string) error {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	for _, name := range Names {
		url := baseURL + name
		data, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.logger.Debug("index download failed", "component", id.String(), "url", url, "error", err)
			continue
		}
		if err := writeFile(slot, name, data); err != nil {
			return err
		}
		a.logger.Debug("downloaded index", "component", id.String(), "url", url)
		return nil
	}
	return nil
}
