package registry

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/khalid-nowaf/searchtree/pkg/searchtree"
)

// Record is the payload stored under a key. ID discriminates records, it is
// what Locate searches for.
type Record struct {
	ID         string            `json:"id"                   yaml:"id"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// construct a Record with an empty attribute set
func NewRecord(id string) *Record {
	return &Record{
		ID:         id,
		Attributes: map[string]string{},
	}
}

// Key makes Record usable with searchtree.DFS.
func (r *Record) Key() string {
	return r.ID
}

// RecordTree is the tree a Registry stores its records in.
type RecordTree = searchtree.Tree[string, *Record]

// KeyedRecord is a record together with the key it is stored under.
type KeyedRecord struct {
	Key    string   `json:"key"    yaml:"key"`    // key as produced by the segmenter's Join
	Path   []string `json:"path"   yaml:"path"`   // edge symbols of Key
	Record *Record  `json:"record" yaml:"record"` // nil for a key without a record
}

// LookupResult is the outcome of a successful Lookup or LongestMatch.
type LookupResult struct {
	Record *Record `json:"record"` // nil when the matched key only routes to longer keys
	Exact  bool    `json:"exact"`  // false when the record belongs to a prefix of the key
}

// Registry indexes records by string keys. Keys are split into edge symbols
// by a Segmenter, so keys sharing a prefix share a branch of the tree.
type Registry struct {
	tree      *RecordTree
	segmenter Segmenter
	logger    zerolog.Logger
	idPolicy  IDConflictPolicy
	treeOpts  []searchtree.Option

	// record ID -> path it is stored under, maintained by the actions
	ids map[string][]string
}

// initializes a new, empty registry.
//
// Returns:
//   - A pointer to a newly initialized Registry, using the rune segmenter unless told otherwise.
func New(opts ...Option) *Registry {
	registry := DefaultOptions()
	for _, opt := range opts {
		registry = opt(registry)
	}
	registry.tree = searchtree.New[string, *Record](registry.treeOpts...)
	return registry
}

func (r *Registry) Segmenter() Segmenter {
	return r.segmenter
}

// Tree gives access to the underlying search tree.
func (r *Registry) Tree() *RecordTree {
	return r.tree
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	return r.tree.Len()
}

func (r *Registry) keyed(path []string, record *Record) *KeyedRecord {
	return &KeyedRecord{
		Key:    r.segmenter.Join(path),
		Path:   append([]string{}, path...),
		Record: record,
	}
}

func (r *Registry) indexRecord(path []string, record *Record) {
	r.ids[record.ID] = append([]string{}, path...)
}

// drops the ID only if it still points at path
func (r *Registry) unindexRecord(path []string, record *Record) {
	if indexed, ok := r.ids[record.ID]; ok && slices.Equal(indexed, path) {
		delete(r.ids, record.ID)
	}
}

// reindex rebuilds the ID index from the tree. When IDs repeat, the first
// one in walk order wins, as it does for Locate. A key holding a nil record
// is an error, records are never nil.
func (r *Registry) reindex() error {
	r.ids = map[string][]string{}
	var err error
	r.tree.Walk(func(path []string, record *Record) bool {
		if record == nil {
			err = fmt.Errorf("key %q holds no record", r.segmenter.Join(path))
			return false
		}
		if _, seen := r.ids[record.ID]; !seen {
			r.indexRecord(path, record)
		}
		return true
	})
	return err
}

// returns the record stored exactly at path, or nil
func (r *Registry) recordAt(path []string) *Record {
	match, err := r.tree.Search(path, false)
	if err != nil || match == nil || !match.HasPayload {
		return nil
	}
	return match.Payload
}

// Insert stores record under key, resolving conflicts with what is already
// stored.
//
// Parameters:
//   - key: the key, split into edge symbols by the registry's segmenter.
//   - record: the record to store, must not be nil.
//
// Conflicts:
//   - EqualKey: key already holds a record, it is overwritten.
//   - DuplicateID: the record's ID is stored under another key. By default the
//     old entry is removed first, with IgnoreOnDuplicate the insertion is dropped.
//
// Returns an InsertionResult describing the conflict and every action taken.
func (r *Registry) Insert(key string, record *Record) *InsertionResult {
	if record == nil {
		panic("[BUG] Insert: record must not be nil")
	}

	incoming := r.keyed(r.segmenter.Split(key), record)
	result := &InsertionResult{
		Key:    incoming.Key,
		Record: record,
	}

	conflictType, existing := r.detectConflict(incoming)
	result.ConflictType = conflictType

	// every conflict type has a resolution plan, even NoConflict
	plan := conflictType.Resolve(r, existing, incoming)
	result.ConflictedWith = append(result.ConflictedWith, plan.Conflicts...)

	for _, step := range plan.Steps {
		actionResult := step.Action.Execute(r, step.Target)
		r.logger.Debug().
			Str("key", step.Target.Key).
			Str("id", record.ID).
			Str("action", step.Action.String()).
			Msg("Executed registry action")
		result.Actions = append(result.Actions, actionResult)
	}

	return result
}

// Remove deletes the record stored under key. A key that only routes to
// longer keys, or no key at all, is ignored.
//
// Returns an error wrapping searchtree.ErrEmptyTree when nothing was ever
// inserted.
func (r *Registry) Remove(key string) (*ActionResult, error) {
	target := r.keyed(r.segmenter.Split(key), nil)

	match, err := r.tree.Search(target.Path, false)
	if err != nil {
		return nil, fmt.Errorf("remove %q: %w", key, err)
	}

	var action Action = IgnoreRemoval{}
	if match != nil && match.HasPayload {
		target.Record = match.Payload
		action = RemoveExistingEntry{}
	}

	result := action.Execute(r, target)
	r.logger.Debug().
		Str("key", target.Key).
		Str("action", action.String()).
		Stringer("removal", result.Removal).
		Msg("Executed registry action")

	return result, nil
}

// Lookup finds the record stored under key. With allowPrefix set, a key that
// is not stored falls back to the deepest stored prefix reached, which may be
// a key without record.
//
// Returns nil without error when nothing matches.
func (r *Registry) Lookup(key string, allowPrefix bool) (*LookupResult, error) {
	match, err := r.tree.Search(r.segmenter.Split(key), allowPrefix)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", key, err)
	}
	return toLookupResult(match), nil
}

// LongestMatch returns the record under the longest prefix of key that has
// one.
func (r *Registry) LongestMatch(key string) (*LookupResult, error) {
	match, err := r.tree.LongestPrefix(r.segmenter.Split(key))
	if err != nil {
		return nil, fmt.Errorf("longest match %q: %w", key, err)
	}
	return toLookupResult(match), nil
}

func toLookupResult(match *searchtree.Match[*Record]) *LookupResult {
	if match == nil {
		return nil
	}
	result := &LookupResult{Exact: match.MatchedFully}
	if match.HasPayload {
		result.Record = match.Payload
	}
	return result
}

// Locate finds the record with the given ID and the key it is stored under.
func (r *Registry) Locate(id string) (*KeyedRecord, bool) {
	found := searchtree.DFS(r.tree, id)
	if !found.Found() {
		return nil, false
	}
	record, _ := found.Node.Payload()
	return r.keyed(found.Path, record), true
}

// Records returns every stored record with its key, in stable order.
func (r *Registry) Records() []*KeyedRecord {
	records := []*KeyedRecord{}
	r.tree.Walk(func(path []string, record *Record) bool {
		records = append(records, r.keyed(path, record))
		return true
	})
	return records
}

// Keys returns the key of every stored record.
func (r *Registry) Keys() []string {
	keys := []string{}
	for _, record := range r.Records() {
		keys = append(keys, record.Key)
	}
	return keys
}
