package registry

import (
	"github.com/rs/zerolog"

	"github.com/khalid-nowaf/searchtree/pkg/searchtree"
)

// IDConflictPolicy decides what happens when a record is inserted under a
// key while its ID is already stored under another key.
type IDConflictPolicy int

const (
	// MoveOnDuplicate removes the record from its old key before inserting it.
	MoveOnDuplicate IDConflictPolicy = iota
	// IgnoreOnDuplicate keeps the existing record and drops the new one.
	IgnoreOnDuplicate
)

type Option func(*Registry) *Registry

func DefaultOptions() *Registry {
	return &Registry{
		segmenter: RuneSegmenter,
		logger:    zerolog.Nop(),
		idPolicy:  MoveOnDuplicate,
		ids:       map[string][]string{},
	}
}

func WithSegmenter(segmenter Segmenter) Option {
	return func(r *Registry) *Registry {
		r.segmenter = segmenter
		return r
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) *Registry {
		r.logger = logger
		return r
	}
}

// WithCascadePrune removes structural keys left empty by a removal.
func WithCascadePrune() Option {
	return func(r *Registry) *Registry {
		r.treeOpts = append(r.treeOpts, searchtree.WithCascadePrune())
		return r
	}
}

func WithIDConflictPolicy(policy IDConflictPolicy) Option {
	return func(r *Registry) *Registry {
		r.idPolicy = policy
		return r
	}
}
