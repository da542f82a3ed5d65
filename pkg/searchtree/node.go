package searchtree

// Node is a single point in the path space of a Tree. It owns its children
// exclusively, so releasing a node releases its whole subtree.
type Node[S comparable, P any] struct {
	payload    P
	hasPayload bool

	children map[S]*Node[S, P] // edge symbol -> child
	keys     []S               // edge symbols in first insertion order
	// cached number of children, updated on every add and delete
	childCount int
}

// Removal tells what happened to the addressed node during a removal.
type Removal int

const (
	RemovalNone    Removal = iota // path not present, nothing changed
	RemovalCleared                // node kept for its descendants, payload cleared
	RemovalPruned                 // leaf node deleted
)

func (r Removal) String() string {
	switch r {
	case RemovalCleared:
		return "cleared"
	case RemovalPruned:
		return "pruned"
	default:
		return "none"
	}
}

func newNode[S comparable, P any]() *Node[S, P] {
	return &Node[S, P]{}
}

func newNodeWithPayload[S comparable, P any](payload P) *Node[S, P] {
	return &Node[S, P]{payload: payload, hasPayload: true}
}

// Payload returns the payload held by the node. The boolean is false for
// structural nodes that only route to descendants.
func (n *Node[S, P]) Payload() (P, bool) {
	return n.payload, n.hasPayload
}

// HasPayload reports whether the node carries a payload.
func (n *Node[S, P]) HasPayload() bool {
	return n.hasPayload
}

// ChildCount returns the cached number of children.
func (n *Node[S, P]) ChildCount() int {
	return n.childCount
}

// IsLeaf checks if the node has no children.
func (n *Node[S, P]) IsLeaf() bool {
	return n.childCount == 0
}

// Child returns the child reached through edge s, or nil.
func (n *Node[S, P]) Child(s S) *Node[S, P] {
	return n.children[s]
}

// Edges returns the edge symbols of the node's children in stable order.
func (n *Node[S, P]) Edges() []S {
	edges := make([]S, len(n.keys))
	copy(edges, n.keys)
	return edges
}

// Children returns the immediate children. The order is unspecified but
// stable for as long as the node's children do not change.
func (n *Node[S, P]) Children() []*Node[S, P] {
	children := make([]*Node[S, P], 0, n.childCount)
	for _, k := range n.keys {
		children = append(children, n.children[k])
	}
	return children
}

func (n *Node[S, P]) setPayload(payload P) {
	n.payload = payload
	n.hasPayload = true
}

func (n *Node[S, P]) clearPayload() {
	var zero P
	n.payload = zero
	n.hasPayload = false
}

// attaches child under edge s; s must not be present yet
func (n *Node[S, P]) addChild(s S, child *Node[S, P]) *Node[S, P] {
	if n.children == nil {
		n.children = make(map[S]*Node[S, P])
	}
	if _, exists := n.children[s]; exists {
		panic("[BUG] addChild: edge already present, use Child to reuse it")
	}
	n.children[s] = child
	n.keys = append(n.keys, s)
	n.childCount++
	return child
}

func (n *Node[S, P]) deleteChild(s S) {
	if _, exists := n.children[s]; !exists {
		return
	}
	delete(n.children, s)
	for i, k := range n.keys {
		if k == s {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	n.childCount--
}

// insert consumes path[pos] and stores payload at the end of path.
// path must have at least one symbol left at pos.
func (n *Node[S, P]) insert(path []S, pos int, payload P) {
	e := path[pos]
	child := n.children[e]

	// last symbol: overwrite or create the terminal node
	if pos == len(path)-1 {
		if child != nil {
			child.setPayload(payload)
		} else {
			n.addChild(e, newNodeWithPayload[S](payload))
		}
		return
	}

	if child == nil {
		child = n.addChild(e, newNode[S, P]())
	}
	child.insert(path, pos+1, payload)
}

// remove consumes path[pos]. A non-leaf target only loses its payload, a
// leaf target is deleted. Missing edges are ignored.
// With cascade set, ancestors left without payload and children are pruned
// on the way back up.
func (n *Node[S, P]) remove(path []S, pos int, cascade bool) Removal {
	e := path[pos]
	child, exists := n.children[e]
	if !exists {
		return RemovalNone
	}

	if pos == len(path)-1 {
		if child.childCount > 0 {
			child.clearPayload()
			return RemovalCleared
		}
		n.deleteChild(e)
		return RemovalPruned
	}

	result := child.remove(path, pos+1, cascade)
	if cascade && result != RemovalNone && child.childCount == 0 && !child.hasPayload {
		n.deleteChild(e)
	}
	return result
}

// ForEachChild applies f to each child together with the edge leading to it.
// will return the original node n
func (n *Node[S, P]) ForEachChild(f func(edge S, child *Node[S, P])) *Node[S, P] {
	for _, k := range n.keys {
		f(k, n.children[k])
	}
	return n
}

// ForEachStepDown recursively applies f to each descendant in pre-order,
// passing the path from n to the descendant. The path slice is reused
// between calls, copy it if you need to keep it.
// while is checked on the parent before descending into its children; pass
// nil to visit everything.
// will return the original node n
func (n *Node[S, P]) ForEachStepDown(f func(path []S, node *Node[S, P]), while func(node *Node[S, P]) bool) *Node[S, P] {
	n.forEachStepDown(make([]S, 0, 8), f, while)
	return n
}

func (n *Node[S, P]) forEachStepDown(path []S, f func([]S, *Node[S, P]), while func(*Node[S, P]) bool) {
	if while != nil && !while(n) {
		return
	}
	for _, k := range n.keys {
		child := n.children[k]
		childPath := append(path, k)
		f(childPath, child)
		child.forEachStepDown(childPath, f, while)
	}
}

// Leafs returns all descendants without children.
func (n *Node[S, P]) Leafs() []*Node[S, P] {
	leafs := []*Node[S, P]{}
	n.ForEachStepDown(func(_ []S, node *Node[S, P]) {
		if node.IsLeaf() {
			leafs = append(leafs, node)
		}
	}, nil)
	return leafs
}

// LeafsPaths returns the path from n to every leaf, unique by definition.
func (n *Node[S, P]) LeafsPaths() [][]S {
	paths := [][]S{}
	n.ForEachStepDown(func(path []S, node *Node[S, P]) {
		if node.IsLeaf() {
			paths = append(paths, append([]S(nil), path...))
		}
	}, nil)
	return paths
}
