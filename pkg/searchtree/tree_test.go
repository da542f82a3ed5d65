package searchtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTree verifies that a new tree is empty and has no root.
func TestNewTree(t *testing.T) {
	tree := New[rune, int]()
	assert.True(t, tree.IsEmpty(), "Tree should be empty upon creation")
	assert.Nil(t, tree.Root(), "Root should not exist before the first insert")
	assert.Equal(t, 0, tree.NodeCount())
	assert.Equal(t, 0, tree.Len())
}

// TestInsertThenSearch verifies an exact search returns the inserted payload.
func TestInsertThenSearch(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("cat"), 1)

	match, err := tree.Search([]rune("cat"), false)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 1, match.Payload)
	assert.True(t, match.HasPayload)
	assert.True(t, match.MatchedFully)
}

// TestInsertCreatesStructuralNodes checks intermediate nodes carry no payload.
func TestInsertCreatesStructuralNodes(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("abc"), 7)

	root := tree.Root()
	require.NotNil(t, root)
	assert.False(t, root.HasPayload(), "Root created for a non-empty path should be structural")
	assert.Equal(t, 1, root.ChildCount())

	a := root.Child('a')
	require.NotNil(t, a)
	assert.False(t, a.HasPayload())
	assert.Equal(t, 1, a.ChildCount())

	c := a.Child('b').Child('c')
	require.NotNil(t, c)
	payload, ok := c.Payload()
	assert.True(t, ok)
	assert.Equal(t, 7, payload)
	assert.True(t, c.IsLeaf())
}

// TestInsertOverwritesPayload covers both the payload and the structural overwrite.
func TestInsertOverwritesPayload(t *testing.T) {
	tree := New[rune, string]()
	tree.Insert([]rune("ab"), "first")
	tree.Insert([]rune("ab"), "second")
	// 'a' is structural until now
	tree.Insert([]rune("a"), "prefix")

	match, err := tree.Search([]rune("ab"), false)
	require.NoError(t, err)
	assert.Equal(t, "second", match.Payload)

	match, err = tree.Search([]rune("a"), false)
	require.NoError(t, err)
	assert.Equal(t, "prefix", match.Payload)
	assert.Equal(t, 1, tree.Root().ChildCount(), "Overwriting must not add children")
	assert.Equal(t, 2, tree.Len())
}

// TestEmptyPathInsert verifies the degenerate single entry at the root.
func TestEmptyPathInsert(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert(nil, 42)

	assert.Equal(t, 1, tree.NodeCount())
	match, err := tree.Search(nil, false)
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 42, HasPayload: true, MatchedFully: true}, match)

	// once rooted, an empty path overwrites the root payload
	tree.Insert([]rune{}, 43)
	match, err = tree.Search(nil, false)
	require.NoError(t, err)
	assert.Equal(t, 43, match.Payload)
	assert.Equal(t, 1, tree.NodeCount())
}

// TestNodeCountTracksRootCreation verifies the counter only moves when a root is made.
func TestNodeCountTracksRootCreation(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("cat"), 1)
	tree.Insert([]rune("car"), 2)
	tree.Insert([]rune("dog"), 3)
	assert.Equal(t, 1, tree.NodeCount())
	assert.Equal(t, 3, tree.Len())

	tree.Destroy()
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.NodeCount())

	tree.Insert([]rune("x"), 1)
	assert.Equal(t, 1, tree.NodeCount())
}

// TestEmptyTreeErrors verifies search and remove refuse to run without a root.
func TestEmptyTreeErrors(t *testing.T) {
	tree := New[rune, int]()

	_, err := tree.Search([]rune("a"), true)
	assert.ErrorIs(t, err, ErrEmptyTree)

	_, err = tree.LongestPrefix([]rune("a"))
	assert.ErrorIs(t, err, ErrEmptyTree)

	_, err = tree.Remove([]rune("a"))
	assert.ErrorIs(t, err, ErrEmptyTree)
}

// TestSearchSharedPrefix walks through the cat/car/cart scenario.
func TestSearchSharedPrefix(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("cat"), 1)
	tree.Insert([]rune("car"), 2)
	tree.Insert([]rune("cart"), 3)

	match, err := tree.Search([]rune("cat"), false)
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 1, HasPayload: true, MatchedFully: true}, match)

	// "ca" is fully consumed and ends on a structural node
	match, err = tree.Search([]rune("ca"), true)
	require.NoError(t, err)
	assert.False(t, match.HasPayload)
	assert.True(t, match.MatchedFully)

	// falls back to the structural root
	match, err = tree.Search([]rune("dog"), true)
	require.NoError(t, err)
	assert.False(t, match.HasPayload)
	assert.False(t, match.MatchedFully)

	match, err = tree.Search([]rune("dog"), false)
	require.NoError(t, err)
	assert.Nil(t, match)

	removal, err := tree.Remove([]rune("cart"))
	require.NoError(t, err)
	assert.Equal(t, RemovalPruned, removal)

	match, err = tree.Search([]rune("car"), false)
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 2, HasPayload: true, MatchedFully: true}, match)

	match, err = tree.Search([]rune("cart"), true)
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 2, HasPayload: true, MatchedFully: false}, match)
}

// TestSearchPrefixReturnsDeepestNode checks prefix fallback does not skip
// structural nodes, unlike LongestPrefix.
func TestSearchPrefixReturnsDeepestNode(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("a"), 1)
	tree.Insert([]rune("abcd"), 4)

	match, err := tree.Search([]rune("abx"), true)
	require.NoError(t, err)
	assert.False(t, match.HasPayload, "Deepest node reached is the structural 'b'")
	assert.False(t, match.MatchedFully)

	match, err = tree.LongestPrefix([]rune("abx"))
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 1, HasPayload: true, MatchedFully: false}, match)

	match, err = tree.LongestPrefix([]rune("abcd"))
	require.NoError(t, err)
	assert.Equal(t, &Match[int]{Payload: 4, HasPayload: true, MatchedFully: true}, match)

	match, err = tree.LongestPrefix([]rune("xyz"))
	require.NoError(t, err)
	assert.Nil(t, match, "No node on the path carries a payload")
}

// TestLongestPrefixProperty checks that for paths not in the tree the
// longest inserted prefix wins.
func TestLongestPrefixProperty(t *testing.T) {
	tree := New[rune, string]()
	for _, key := range []string{"r", "ro", "rom", "roman", "rub"} {
		tree.Insert([]rune(key), key)
	}

	testCases := []struct {
		path     string
		expected string
	}{
		{"romulus", "rom"},
		{"romanus", "roman"},
		{"rubens", "rub"},
		{"ru", "r"},
		{"rx", "r"},
	}

	for _, tc := range testCases {
		match, err := tree.LongestPrefix([]rune(tc.path))
		require.NoError(t, err)
		require.NotNil(t, match, tc.path)
		assert.Equal(t, tc.expected, match.Payload, tc.path)
		assert.False(t, match.MatchedFully, tc.path)
	}
}

// TestRemoveLeaf verifies a removed leaf is gone and a second removal is a no-op.
func TestRemoveLeaf(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("ab"), 1)
	tree.Insert([]rune("ac"), 2)

	removal, err := tree.Remove([]rune("ab"))
	require.NoError(t, err)
	assert.Equal(t, RemovalPruned, removal)
	assert.Equal(t, 1, tree.Root().Child('a').ChildCount(), "Child count should follow the deletion")

	match, err := tree.Search([]rune("ab"), false)
	require.NoError(t, err)
	assert.Nil(t, match)

	removal, err = tree.Remove([]rune("ab"))
	require.NoError(t, err)
	assert.Equal(t, RemovalNone, removal)

	removal, err = tree.Remove([]rune("zzz"))
	require.NoError(t, err)
	assert.Equal(t, RemovalNone, removal)
	assert.Equal(t, 1, tree.Len())
}

// TestRemoveNonLeafKeepsDescendants verifies a non-leaf only loses its payload.
func TestRemoveNonLeafKeepsDescendants(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("ab"), 1)
	tree.Insert([]rune("abc"), 2)
	tree.Insert([]rune("abd"), 3)

	removal, err := tree.Remove([]rune("ab"))
	require.NoError(t, err)
	assert.Equal(t, RemovalCleared, removal)

	b := tree.Root().Child('a').Child('b')
	require.NotNil(t, b, "Non-leaf node must survive removal")
	assert.False(t, b.HasPayload())
	assert.Equal(t, 2, b.ChildCount())

	for path, expected := range map[string]int{"abc": 2, "abd": 3} {
		match, err := tree.Search([]rune(path), true)
		require.NoError(t, err)
		assert.Equal(t, expected, match.Payload)
		assert.True(t, match.MatchedFully)
	}
}

// TestRemoveKeepsEmptyAncestors documents that removal does not prune upwards by default.
func TestRemoveKeepsEmptyAncestors(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert([]rune("abc"), 1)

	_, err := tree.Remove([]rune("abc"))
	require.NoError(t, err)

	b := tree.Root().Child('a').Child('b')
	require.NotNil(t, b, "Structural ancestors are left in place")
	assert.True(t, b.IsLeaf())
	assert.False(t, b.HasPayload())
	assert.Equal(t, 0, tree.Len())
}

// TestRemoveWithCascadePrune verifies the opt-in upward pruning.
func TestRemoveWithCascadePrune(t *testing.T) {
	tree := New[rune, int](WithCascadePrune())
	tree.Insert([]rune("a"), 1)
	tree.Insert([]rune("abcd"), 4)
	tree.Insert([]rune("xy"), 2)

	removal, err := tree.Remove([]rune("abcd"))
	require.NoError(t, err)
	assert.Equal(t, RemovalPruned, removal)

	a := tree.Root().Child('a')
	require.NotNil(t, a, "Ancestor with a payload must stay")
	assert.True(t, a.IsLeaf(), "Empty structural ancestors 'b' and 'c' should be pruned")

	_, err = tree.Remove([]rune("xy"))
	require.NoError(t, err)
	assert.Nil(t, tree.Root().Child('x'))
	assert.Equal(t, 1, tree.Root().ChildCount())

	_, err = tree.Remove([]rune("a"))
	require.NoError(t, err)
	assert.NotNil(t, tree.Root(), "Root is never pruned")
	assert.Equal(t, 0, tree.Root().ChildCount())
}

// TestRemoveEmptyPath verifies removal at the root clears its payload only.
func TestRemoveEmptyPath(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert(nil, 1)
	tree.Insert([]rune("a"), 2)

	removal, err := tree.Remove(nil)
	require.NoError(t, err)
	assert.Equal(t, RemovalCleared, removal)
	assert.NotNil(t, tree.Root())
	assert.False(t, tree.Root().HasPayload())

	removal, err = tree.Remove(nil)
	require.NoError(t, err)
	assert.Equal(t, RemovalNone, removal)
}

// TestCallerPathIsNotConsumed verifies operations leave the caller's slice untouched.
func TestCallerPathIsNotConsumed(t *testing.T) {
	tree := New[string, int]()
	path := []string{"usr", "local", "bin"}
	tree.Insert(path, 1)
	_, err := tree.Search(path, false)
	require.NoError(t, err)
	_, err = tree.Remove(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"usr", "local", "bin"}, path)
}

// TestChildrenOrderIsStable verifies siblings come back in insertion order.
func TestChildrenOrderIsStable(t *testing.T) {
	tree := New[string, int]()
	for i, edge := range []string{"m", "c", "x", "a"} {
		tree.Insert([]string{edge}, i)
	}
	_, err := tree.Remove([]string{"x"})
	require.NoError(t, err)

	payloads := []int{}
	for _, child := range tree.Root().Children() {
		payload, _ := child.Payload()
		payloads = append(payloads, payload)
	}
	assert.Equal(t, []int{0, 1, 3}, payloads)
	assert.Equal(t, []string{"m", "c", "a"}, tree.Root().Edges())

	edges := []string{}
	root := tree.Root().ForEachChild(func(edge string, child *Node[string, int]) {
		edges = append(edges, edge)
		assert.Same(t, tree.Root().Child(edge), child)
	})
	assert.Equal(t, []string{"m", "c", "a"}, edges)
	assert.Same(t, tree.Root(), root)
}

// TestEntries verifies Walk visits every payload with its full path.
func TestEntries(t *testing.T) {
	tree := New[rune, int]()
	tree.Insert(nil, 0)
	tree.Insert([]rune("ab"), 2)
	tree.Insert([]rune("a"), 1)
	tree.Insert([]rune("b"), 3)

	assert.Equal(t, []Entry[rune, int]{
		{Path: []rune{}, Payload: 0},
		{Path: []rune("a"), Payload: 1},
		{Path: []rune("ab"), Payload: 2},
		{Path: []rune("b"), Payload: 3},
	}, tree.Entries())

	visited := 0
	tree.Walk(func([]rune, int) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited, "Walk should stop once f returns false")
}

// TestGetUniquePaths verifies the leaf paths of the tree.
func TestGetUniquePaths(t *testing.T) {
	tree := New[rune, int]()
	for i, path := range []string{"001", "0010", "1010", "101010", "1111"} {
		tree.Insert([]rune(path), i)
	}

	expectedPaths := [][]rune{
		[]rune("0010"),
		[]rune("101010"),
		[]rune("1111"),
	}
	assert.ElementsMatch(t, expectedPaths, tree.Root().LeafsPaths())
	assert.Len(t, tree.Root().Leafs(), 3)
}

func BenchmarkInsert32SymbolPaths(b *testing.B) {
	paths := generateRandomPaths(b.N, 19, 32)
	tree := New[int, int]()
	b.ResetTimer()

	for i, path := range paths {
		tree.Insert(path, i)
	}
}

func BenchmarkSearch32SymbolPaths(b *testing.B) {
	paths := generateRandomPaths(b.N, 19, 32)
	tree := New[int, int]()
	for i, path := range paths {
		tree.Insert(path, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.Search(paths[rand.Intn(len(paths))], false); err != nil {
			b.Fatal(err)
		}
	}
}

func generateRandomPaths(total int, minDepth int, maxDepth int) [][]int {
	paths := make([][]int, 0, total)
	for i := 0; i < total; i++ {
		depth := rand.Intn(maxDepth-minDepth+1) + minDepth
		path := make([]int, depth)
		for j := range path {
			path[j] = rand.Intn(2)
		}
		paths = append(paths, path)
	}
	return paths
}
