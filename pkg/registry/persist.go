package registry

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/khalid-nowaf/searchtree/pkg/searchtree"
)

// persisted form of a registry; the segmenter is needed to turn paths back into keys
type snapshot struct {
	Segmenter string                             `json:"segmenter" yaml:"segmenter"`
	Tree      *searchtree.Dump[string, *Record] `json:"tree"      yaml:"tree"`
}

// Save writes the registry to w. Only registries using a built-in segmenter
// can be saved.
func (r *Registry) Save(w io.Writer, format searchtree.Format) error {
	if _, err := SegmenterByName(r.segmenter.Name()); err != nil {
		return fmt.Errorf("can not save registry: %w", err)
	}

	snap := snapshot{
		Segmenter: r.segmenter.Name(),
		Tree:      r.tree.Snapshot(),
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case searchtree.FormatJSON:
		data, err = json.MarshalIndent(snap, "", "  ")
	case searchtree.FormatYAML:
		data, err = yaml.Marshal(snap)
	default:
		return fmt.Errorf("unsupported registry format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Load reads a registry written by Save. The segmenter stored with the
// registry replaces any given through opts.
func Load(reader io.Reader, format searchtree.Format, opts ...Option) (*Registry, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var snap snapshot
	switch format {
	case searchtree.FormatJSON:
		err = json.Unmarshal(data, &snap)
	case searchtree.FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		return nil, fmt.Errorf("unsupported registry format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", searchtree.ErrMalformedDump, err)
	}

	segmenter, err := SegmenterByName(snap.Segmenter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", searchtree.ErrMalformedDump, err)
	}

	registry := DefaultOptions()
	for _, opt := range opts {
		registry = opt(registry)
	}
	registry.segmenter = segmenter

	tree, err := searchtree.Restore(snap.Tree, registry.treeOpts...)
	if err != nil {
		return nil, err
	}
	registry.tree = tree
	if err := registry.reindex(); err != nil {
		return nil, fmt.Errorf("%w: %w", searchtree.ErrMalformedDump, err)
	}

	registry.logger.Debug().
		Str("segmenter", segmenter.Name()).
		Int("records", registry.Len()).
		Msg("Loaded registry")

	return registry, nil
}
