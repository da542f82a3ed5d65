package searchtree

// Tree maps sequences of edge symbols to payloads. It owns the root node,
// which is created lazily by the first insertion.
//
// A Tree is not safe for concurrent use; callers sharing one must serialize
// access themselves.
type Tree[S comparable, P any] struct {
	root *Node[S, P]
	// number of root creation events, not the number of nodes
	nodeCount int
	opts      options
}

// Match is the outcome of a successful Search.
type Match[P any] struct {
	Payload      P
	HasPayload   bool // false when the matched node is a structural one
	MatchedFully bool // false when the result comes from a prefix of the path
}

// Entry is a payload together with the full path leading to it.
type Entry[S comparable, P any] struct {
	Path    []S
	Payload P
}

// New creates an empty tree.
func New[S comparable, P any](opts ...Option) *Tree[S, P] {
	t := &Tree[S, P]{}
	for _, opt := range opts {
		opt(&t.opts)
	}
	return t
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[S, P]) Root() *Node[S, P] {
	return t.root
}

// IsEmpty reports whether the tree has no root.
func (t *Tree[S, P]) IsEmpty() bool {
	return t.root == nil
}

// NodeCount returns how many times a root has been created since the tree
// was made or last destroyed. It does not count descendants; use Len for
// the number of stored payloads.
func (t *Tree[S, P]) NodeCount() int {
	return t.nodeCount
}

// Insert stores payload at path, creating structural nodes along the way.
// An existing payload at path is overwritten. The empty path addresses the
// root itself.
func (t *Tree[S, P]) Insert(path []S, payload P) {
	if t.root == nil {
		t.nodeCount++
		if len(path) == 0 {
			t.root = newNodeWithPayload[S](payload)
			return
		}
		t.root = newNode[S, P]()
	}

	if len(path) == 0 {
		t.root.setPayload(payload)
		return
	}

	t.root.insert(path, 0, payload)
}

// Remove deletes the payload stored at path. Leaf nodes are removed from the
// tree, nodes that still route to descendants only lose their payload.
// Removing a path that does not exist changes nothing.
//
// Returns:
//   - what happened to the node at path
//   - ErrEmptyTree if the tree has no root
func (t *Tree[S, P]) Remove(path []S) (Removal, error) {
	if t.root == nil {
		return RemovalNone, ErrEmptyTree
	}

	// the root is never destroyed by a removal
	if len(path) == 0 {
		if !t.root.hasPayload {
			return RemovalNone, nil
		}
		t.root.clearPayload()
		return RemovalCleared, nil
	}

	return t.root.remove(path, 0, t.opts.cascadePrune), nil
}

// Destroy drops the whole tree and resets the node count.
func (t *Tree[S, P]) Destroy() {
	t.root = nil
	t.nodeCount = 0
}

// Search walks path from the root.
//
// If every symbol of path is found, the payload of the final node is
// returned with MatchedFully set. When a symbol is missing and allowPrefix
// is true, the payload of the deepest node reached is returned instead;
// when allowPrefix is false the result is nil.
//
// Search returns ErrEmptyTree if the tree has no root.
func (t *Tree[S, P]) Search(path []S, allowPrefix bool) (*Match[P], error) {
	if t.root == nil {
		return nil, ErrEmptyTree
	}

	current := t.root
	for _, e := range path {
		child, exists := current.children[e]
		if !exists {
			if allowPrefix {
				return current.match(false), nil
			}
			return nil, nil
		}
		current = child
	}

	return current.match(true), nil
}

// LongestPrefix returns the payload of the deepest node along path that
// carries one, skipping structural nodes. MatchedFully is set when that node
// is the one addressed by the whole path. The result is nil when no node on
// the path, the root included, has a payload.
func (t *Tree[S, P]) LongestPrefix(path []S) (*Match[P], error) {
	if t.root == nil {
		return nil, ErrEmptyTree
	}

	var best *Match[P]
	current := t.root
	depth := 0
	for {
		if current.hasPayload {
			best = current.match(depth == len(path))
		}
		if depth == len(path) {
			break
		}
		child, exists := current.children[path[depth]]
		if !exists {
			break
		}
		current = child
		depth++
	}

	return best, nil
}

func (n *Node[S, P]) match(fully bool) *Match[P] {
	return &Match[P]{
		Payload:      n.payload,
		HasPayload:   n.hasPayload,
		MatchedFully: fully,
	}
}

// Walk calls f for every stored payload with the path leading to it, the
// root first and then depth first in stable order. Walking stops when f
// returns false. The path slice must not be retained by f.
func (t *Tree[S, P]) Walk(f func(path []S, payload P) bool) {
	if t.root == nil {
		return
	}
	if t.root.hasPayload && !f([]S{}, t.root.payload) {
		return
	}

	stopped := false
	t.root.ForEachStepDown(func(path []S, node *Node[S, P]) {
		if stopped || !node.hasPayload {
			return
		}
		stopped = !f(path, node.payload)
	}, func(*Node[S, P]) bool {
		return !stopped
	})
}

// Entries returns every stored payload with its path.
func (t *Tree[S, P]) Entries() []Entry[S, P] {
	entries := []Entry[S, P]{}
	t.Walk(func(path []S, payload P) bool {
		entries = append(entries, Entry[S, P]{
			Path:    append([]S{}, path...),
			Payload: payload,
		})
		return true
	})
	return entries
}

// Len returns the number of stored payloads.
func (t *Tree[S, P]) Len() int {
	count := 0
	t.Walk(func([]S, P) bool {
		count++
		return true
	})
	return count
}
