package searchtree

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of a tree dump.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a format name or a file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dump format %q", name)
	}
}

// Dump is the structural form of a whole tree.
//
//	rootNode:            the root node, null for an empty tree
//	numNodes:            root creation counter
//	node.hasPayload:     omitted for structural nodes
//	node.payload:        the payload as is, a nil payload stays nil
//	node.children:       ordered list of {edge, node}
//	node.numChildren:    informational only, recomputed on restore
type Dump[S comparable, P any] struct {
	RootNode *NodeDump[S, P] `json:"rootNode" yaml:"rootNode"`
	NumNodes int             `json:"numNodes" yaml:"numNodes"`
}

// NodeDump keeps presence apart from the payload value, so zero and nil
// payloads survive a round trip.
type NodeDump[S comparable, P any] struct {
	HasPayload  bool             `json:"hasPayload,omitempty" yaml:"hasPayload,omitempty"`
	Payload     P                `json:"payload,omitempty"    yaml:"payload,omitempty"`
	Children    []EdgeDump[S, P] `json:"children,omitempty"   yaml:"children,omitempty"`
	NumChildren int              `json:"numChildren"          yaml:"numChildren"`
}

type EdgeDump[S comparable, P any] struct {
	Edge S               `json:"edge" yaml:"edge"`
	Node *NodeDump[S, P] `json:"node" yaml:"node"`
}

// Snapshot returns the structural form of the tree. Payloads are copied by
// value, so payloads holding references still share them with the tree.
func (t *Tree[S, P]) Snapshot() *Dump[S, P] {
	dump := &Dump[S, P]{NumNodes: t.nodeCount}
	if t.root != nil {
		dump.RootNode = snapshotNode(t.root)
	}
	return dump
}

func snapshotNode[S comparable, P any](n *Node[S, P]) *NodeDump[S, P] {
	d := &NodeDump[S, P]{
		HasPayload:  n.hasPayload,
		Payload:     n.payload,
		NumChildren: n.childCount,
	}
	n.ForEachChild(func(edge S, child *Node[S, P]) {
		d.Children = append(d.Children, EdgeDump[S, P]{
			Edge: edge,
			Node: snapshotNode(child),
		})
	})
	return d
}

// Serialize produces a structural dump of the whole tree.
func (t *Tree[S, P]) Serialize(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(t.Snapshot())
	case FormatYAML:
		return yaml.Marshal(t.Snapshot())
	default:
		return nil, fmt.Errorf("unsupported dump format %q", format)
	}
}

// Deserialize rebuilds a tree from the output of Serialize.
// Any problem with the input is reported as ErrMalformedDump.
func Deserialize[S comparable, P any](data []byte, format Format, opts ...Option) (*Tree[S, P], error) {
	var dump Dump[S, P]

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &dump)
	case FormatYAML:
		err = yaml.Unmarshal(data, &dump)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrMalformedDump, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDump, err)
	}

	return Restore(&dump, opts...)
}

// Restore rebuilds a tree from its structural form. The shape of the dump is
// validated and child counts are recomputed rather than read back.
func Restore[S comparable, P any](dump *Dump[S, P], opts ...Option) (*Tree[S, P], error) {
	if dump == nil {
		return nil, fmt.Errorf("%w: no dump", ErrMalformedDump)
	}

	tree := New[S, P](opts...)

	switch {
	case dump.NumNodes < 0:
		return nil, fmt.Errorf("%w: negative numNodes %d", ErrMalformedDump, dump.NumNodes)
	case dump.RootNode == nil && dump.NumNodes != 0:
		return nil, fmt.Errorf("%w: numNodes is %d but rootNode is missing", ErrMalformedDump, dump.NumNodes)
	case dump.RootNode != nil && dump.NumNodes == 0:
		return nil, fmt.Errorf("%w: rootNode present but numNodes is 0", ErrMalformedDump)
	case dump.RootNode == nil:
		return tree, nil
	}

	root, err := restoreNode(dump.RootNode, "rootNode")
	if err != nil {
		return nil, err
	}
	tree.root = root
	tree.nodeCount = dump.NumNodes

	return tree, nil
}

func restoreNode[S comparable, P any](d *NodeDump[S, P], at string) (*Node[S, P], error) {
	n := newNode[S, P]()
	if d.HasPayload {
		n.setPayload(d.Payload)
	}

	for i, edge := range d.Children {
		childAt := fmt.Sprintf("%s.children[%d]", at, i)
		if edge.Node == nil {
			return nil, fmt.Errorf("%w: %s has no node", ErrMalformedDump, childAt)
		}
		if n.children[edge.Edge] != nil {
			return nil, fmt.Errorf("%w: %s repeats edge %v", ErrMalformedDump, childAt, edge.Edge)
		}
		child, err := restoreNode(edge.Node, childAt)
		if err != nil {
			return nil, err
		}
		// addChild keeps childCount in step with the children map
		n.addChild(edge.Edge, child)
	}

	return n, nil
}
