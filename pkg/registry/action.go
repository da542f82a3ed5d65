package registry

type Action interface {
	Execute(registry *Registry, target *KeyedRecord) *ActionResult
	String() string
}

type (
	IgnoreInsertion     struct{} // no op Action
	InsertNewEntry      struct{} // store the target record under its key
	OverwriteEntry      struct{} // replace the record already stored under the key
	RemoveExistingEntry struct{} // remove the target record from its key
	IgnoreRemoval       struct{} // the key holds no record, no op
)

func (action IgnoreInsertion) Execute(_ *Registry, _ *KeyedRecord) *ActionResult {
	return &ActionResult{
		Action: action,
	}
}

func (IgnoreInsertion) String() string {
	return "Ignore Insertion"
}

func (action InsertNewEntry) Execute(registry *Registry, target *KeyedRecord) *ActionResult {
	return put(action, registry, target)
}

func (InsertNewEntry) String() string {
	return "Insert New Entry"
}

func (action OverwriteEntry) Execute(registry *Registry, target *KeyedRecord) *ActionResult {
	return put(action, registry, target)
}

func (OverwriteEntry) String() string {
	return "Overwrite Entry"
}

// put stores the target and records whatever it replaced
func put(action Action, registry *Registry, target *KeyedRecord) *ActionResult {
	if target.Record == nil {
		panic("[BUG] Action[" + action.String() + "].Execute:: target record must not be nil")
	}

	actionResult := &ActionResult{
		Action: action,
	}

	if replaced := registry.recordAt(target.Path); replaced != nil {
		registry.unindexRecord(target.Path, replaced)
		actionResult.appendRemoved(registry.keyed(target.Path, replaced))
	}

	registry.tree.Insert(target.Path, target.Record)
	registry.indexRecord(target.Path, target.Record)
	actionResult.appendAdded(target)
	return actionResult
}

func (action RemoveExistingEntry) Execute(registry *Registry, target *KeyedRecord) *ActionResult {
	actionResult := &ActionResult{
		Action: action,
	}

	removal, err := registry.tree.Remove(target.Path)
	if err != nil {
		panic("[BUG] Action[RemoveExistingEntry].Execute:: can not remove from an empty tree: " + err.Error())
	}

	registry.unindexRecord(target.Path, target.Record)
	actionResult.Removal = removal
	actionResult.appendRemoved(target)
	return actionResult
}

func (RemoveExistingEntry) String() string {
	return "Remove Existing Entry"
}

func (action IgnoreRemoval) Execute(_ *Registry, _ *KeyedRecord) *ActionResult {
	return &ActionResult{
		Action: action,
	}
}

func (IgnoreRemoval) String() string {
	return "Ignore Removal"
}
