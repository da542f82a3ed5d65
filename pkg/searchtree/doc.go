// ## Overview
// Package searchtree implements a labeled-edge search tree: a trie whose edges
// can be any comparable type, mapping a sequence of edge symbols to a payload.
// The tree supports insertion, exact and prefix lookup, removal with leaf
// pruning, a depth-first search that rebuilds the path to a payload, and a
// structural dump in JSON or YAML.
//
// Nodes along a path that carry no payload are structural: they only route to
// their descendants. Removing a path whose node still has children only clears
// its payload, removing a leaf deletes the node.
//
// ## Example usage:
//
//	tree := searchtree.New[rune, int]()
//	tree.Insert([]rune("cat"), 1)
//	tree.Insert([]rune("car"), 2)
//	tree.Insert([]rune("cart"), 3)
//
//	match, _ := tree.Search([]rune("cat"), false)
//	fmt.Println(match.Payload, match.MatchedFully) // Output: 1 true
//
//	tree.Remove([]rune("cart"))
//	match, _ = tree.Search([]rune("cart"), true)
//	fmt.Println(match.Payload, match.MatchedFully) // Output: 2 false
//
//	data, _ := tree.Serialize(searchtree.FormatJSON)
//	restored, _ := searchtree.Deserialize[rune, int](data, searchtree.FormatJSON)
//
// Payloads that implement Keyed can be located with DFS, which returns the
// node and the edges from the root to it.
//
// A Tree is not safe for concurrent use.
package searchtree
