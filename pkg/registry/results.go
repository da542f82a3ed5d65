package registry

import (
	"fmt"

	"github.com/khalid-nowaf/searchtree/pkg/searchtree"
)

// records the outcome of attempting to insert a record for reporting
type InsertionResult struct {
	Key            string          // key the record was attempted to be inserted under
	Record         *Record         // the record itself
	Actions        []*ActionResult // the result of each action taken
	ConflictedWith []*KeyedRecord  // entries the record conflicted with
	ConflictType                   // the type of the conflict
}

// Inserted reports whether the record ended up in the registry.
func (ir *InsertionResult) Inserted() bool {
	for _, action := range ir.Actions {
		if len(action.AddedEntries) > 0 {
			return true
		}
	}
	return false
}

func (ir *InsertionResult) String() string {
	str := ""

	if _, ok := ir.ConflictType.(NoConflict); !ok {
		str += fmt.Sprintf("Detect %s conflict | ", ir.ConflictType)
		str += fmt.Sprintf("New entry %q (id %s) conflicted with [", ir.Key, ir.Record.ID)
		for i, conflicted := range ir.ConflictedWith {
			if i > 0 {
				str += " "
			}
			str += fmt.Sprintf("%q", conflicted.Key)
		}
		str += "] | "
	}

	for i, action := range ir.Actions {
		if i > 0 {
			str += " | "
		}
		str += action.String()
	}

	return str
}

type ActionResult struct {
	Action         Action
	AddedEntries   []*KeyedRecord
	RemovedEntries []*KeyedRecord
	// what the tree did with the removed key, only set by removals
	Removal searchtree.Removal
}

func (ar ActionResult) String() string {
	added := []string{}
	removed := []string{}

	for _, entry := range ar.AddedEntries {
		added = append(added, entry.Key)
	}

	for _, entry := range ar.RemovedEntries {
		removed = append(removed, entry.Key)
	}

	str := fmt.Sprintf("Action Taken: %s, Added: %q, Removed: %q", ar.Action, added, removed)
	if ar.Removal != searchtree.RemovalNone {
		str += fmt.Sprintf(" (%s)", ar.Removal)
	}
	return str
}

// to keep track of all the added entries of an action.
func (ar *ActionResult) appendAdded(entry *KeyedRecord) {
	ar.AddedEntries = append(ar.AddedEntries, entry)
}

// to keep track of all the removed entries of an action.
func (ar *ActionResult) appendRemoved(entry *KeyedRecord) {
	ar.RemovedEntries = append(ar.RemovedEntries, entry)
}
