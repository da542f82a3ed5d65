package searchtree

import (
	"slices"

	"github.com/dolthub/swiss"
)

// Keyed is implemented by payloads that expose a discriminator DFS can
// compare against.
type Keyed[K comparable] interface {
	Key() K
}

// SearchResult is the outcome of a depth-first search. Node is nil and Path
// is empty when nothing matched.
type SearchResult[S comparable, P any] struct {
	Node *Node[S, P]
	Path []S
}

// Found reports whether the search matched a node.
func (r SearchResult[S, P]) Found() bool {
	return r.Node != nil
}

// the edge used to enter a node and the node it was entered from
type predecessor[S comparable, P any] struct {
	edge   S
	parent *Node[S, P]
}

// DFS searches the tree depth first for the first payload whose key equals
// target and returns the node together with the edges leading to it from the
// root.
//
// Siblings are visited in insertion order. When several payloads share the
// same key, which one is returned is not part of the contract.
func DFS[S comparable, K comparable, P Keyed[K]](t *Tree[S, P], target K) SearchResult[S, P] {
	return t.Find(func(payload P) bool {
		return payload.Key() == target
	})
}

// Find is the predicate form of DFS: it returns the first node, in pre-order,
// whose payload satisfies match. Structural nodes are never matched.
func (t *Tree[S, P]) Find(match func(payload P) bool) SearchResult[S, P] {
	result := SearchResult[S, P]{Path: []S{}}
	if t.root == nil {
		return result
	}

	// child -> (edge, parent), recorded for every entered child
	predecessors := swiss.NewMap[*Node[S, P], predecessor[S, P]](16)

	found := dfsRecurse(t.root, match, predecessors)
	if found == nil {
		return result
	}

	result.Node = found
	result.Path = backtrackEdges(predecessors, found)
	return result
}

func dfsRecurse[S comparable, P any](current *Node[S, P], match func(P) bool, predecessors *swiss.Map[*Node[S, P], predecessor[S, P]]) *Node[S, P] {
	if current.hasPayload && match(current.payload) {
		return current
	}

	for _, e := range current.keys {
		child := current.children[e]
		predecessors.Put(child, predecessor[S, P]{edge: e, parent: current})
		if found := dfsRecurse(child, match, predecessors); found != nil {
			return found
		}
	}
	return nil
}

// backtrackEdges follows the predecessors from node up to the root and
// returns the edges in root to node order.
func backtrackEdges[S comparable, P any](predecessors *swiss.Map[*Node[S, P], predecessor[S, P]], node *Node[S, P]) []S {
	edges := []S{}
	for p, ok := predecessors.Get(node); ok; p, ok = predecessors.Get(p.parent) {
		edges = append(edges, p.edge)
	}
	slices.Reverse(edges)
	return edges
}
