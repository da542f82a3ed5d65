package registry

import "slices"

type ConflictType interface {
	String() string
	Resolve(registry *Registry, existing *KeyedRecord, incoming *KeyedRecord) *ResolutionPlan
}

type (
	NoConflict  struct{} // there is no conflict
	EqualKey    struct{} // the key already holds a record
	DuplicateID struct{} // the record ID is already stored under another key
)

func (NoConflict) Resolve(_ *Registry, _ *KeyedRecord, incoming *KeyedRecord) *ResolutionPlan {
	plan := &ResolutionPlan{}
	plan.AddAction(InsertNewEntry{}, incoming)
	return plan
}

func (NoConflict) String() string {
	return "No Conflict"
}

func (EqualKey) Resolve(_ *Registry, existing *KeyedRecord, incoming *KeyedRecord) *ResolutionPlan {
	plan := &ResolutionPlan{}
	plan.Conflicts = append(plan.Conflicts, existing)
	plan.AddAction(OverwriteEntry{}, incoming)
	return plan
}

func (EqualKey) String() string {
	return "Equal Key"
}

func (DuplicateID) Resolve(registry *Registry, existing *KeyedRecord, incoming *KeyedRecord) *ResolutionPlan {
	plan := &ResolutionPlan{}
	plan.Conflicts = append(plan.Conflicts, existing)

	if registry.idPolicy == IgnoreOnDuplicate {
		plan.AddAction(IgnoreInsertion{}, incoming)
		return plan
	}

	// keep IDs unique so Locate stays unambiguous
	plan.AddAction(RemoveExistingEntry{}, existing)
	plan.AddAction(InsertNewEntry{}, incoming)
	return plan
}

func (DuplicateID) String() string {
	return "Duplicate ID"
}

// detectConflict checks the incoming record against the registry. A duplicate
// ID under another key takes precedence over an occupied key. IDs are looked
// up in the index, so detection does not walk the tree.
func (r *Registry) detectConflict(incoming *KeyedRecord) (ConflictType, *KeyedRecord) {
	if r.tree.IsEmpty() {
		return NoConflict{}, nil
	}

	if path, found := r.ids[incoming.Record.ID]; found && !slices.Equal(path, incoming.Path) {
		return DuplicateID{}, r.keyed(path, r.recordAt(path))
	}

	if existing := r.recordAt(incoming.Path); existing != nil {
		return EqualKey{}, r.keyed(incoming.Path, existing)
	}

	return NoConflict{}, nil
}
