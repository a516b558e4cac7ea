package manifest

import (
	"context"
	"log/slog"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/index"
	"github.com/jcdickinson/doclinks/internal/toolchain"
)

// NewAcquirer opens the configured cache root with a fetcher built from the
// download settings.
func NewAcquirer(cfg *config.Config, logger *slog.Logger) (*index.Acquirer, error) {
	store, err := index.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	fetcher := index.NewHTTPFetcher(
		index.WithTimeout(cfg.Timeout()),
		index.WithUserAgent(cfg.Fetch.UserAgent),
		index.WithRateLimit(cfg.Fetch.RequestsPerSecond),
	)
	return index.NewAcquirer(store, fetcher, logger), nil
}

// NewBuilder wires a Builder from configuration. A nil acq gets a fresh
// Acquirer from NewAcquirer. Sources is left for the caller.
func NewBuilder(cfg *config.Config, policy toolchain.Policy, acq *index.Acquirer, logger *slog.Logger) (*Builder, error) {
	if acq == nil {
		var err error
		if acq, err = NewAcquirer(cfg, logger); err != nil {
			return nil, err
		}
	}
	return &Builder{
		Policy:   policy,
		Resolver: cfg.Resolver(),
		Acquirer: acq,
		Logger:   logger,
	}, nil
}

// BuildFile loads the graph file at path and builds its manifest. The
// toolchain is taken from override, then from the file, then from cfg.
// Callers running several builds against one cache share acq; nil uses a
// fresh one.
func BuildFile(ctx context.Context, cfg *config.Config, acq *index.Acquirer, path, override string, logger *slog.Logger) (*Manifest, error) {
	loaded, err := component.LoadFile(path)
	if err != nil {
		return nil, err
	}

	raw := cfg.Toolchain
	switch {
	case override != "":
		raw = override
	case loaded.Toolchain != "":
		raw = loaded.Toolchain
	}
	policy, err := toolchain.NewPolicy(raw)
	if err != nil {
		return nil, err
	}

	b, err := NewBuilder(cfg, policy, acq, logger)
	if err != nil {
		return nil, err
	}
	b.Sources = FileSources(loaded)
	return b.Build(ctx, loaded.Graph)
}
