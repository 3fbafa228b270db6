package meters

import "strings"

// NodeKind tells branches from leaves.
type NodeKind int

const (
	BranchNode NodeKind = iota
	LeafNode
)

// Node is a node of the value tree. Branches map path segments to children
// in insertion order; leaves hold the identifier of one value.
type Node struct {
	Kind       NodeKind
	Identifier string

	keys     []string
	children map[string]*Node
}

// NewBranch returns an empty branch.
func NewBranch() *Node {
	return &Node{Kind: BranchNode, children: make(map[string]*Node)}
}

// NewLeaf returns a leaf for identifier.
func NewLeaf(identifier string) *Node {
	return &Node{Kind: LeafNode, Identifier: identifier}
}

// Keys returns the child segments of a branch in insertion order.
func (n *Node) Keys() []string {
	return n.keys
}

// Child returns the child at key, or nil.
func (n *Node) Child(key string) *Node {
	return n.children[key]
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.keys)
}

// Insert places the leaf of p below n. The last segment maps to the leaf.
func (n *Node) Insert(p Path) error {
	if n.Kind != BranchNode || len(p.Segments) == 0 {
		return &PrefixConflictError{Prefix: "", Path: p.Flat()}
	}

	cur := n
	for i, seg := range p.Segments[:len(p.Segments)-1] {
		next, ok := cur.children[seg]
		if !ok {
			next = NewBranch()
			cur.add(seg, next)
		}
		if next.Kind == LeafNode {
			return &PrefixConflictError{Prefix: strings.Join(p.Segments[:i+1], "."), Path: p.Flat()}
		}
		cur = next
	}

	last := p.Segments[len(p.Segments)-1]
	if existing, ok := cur.children[last]; ok {
		if existing.Kind == LeafNode {
			return &DuplicatePathError{Path: p.Flat(), First: existing.Identifier, Second: p.Leaf}
		}
		return &PrefixConflictError{Prefix: p.Flat(), Path: p.Flat() + "." + existing.firstKey()}
	}
	cur.add(last, NewLeaf(p.Leaf))
	return nil
}

func (n *Node) add(key string, child *Node) {
	n.keys = append(n.keys, key)
	n.children[key] = child
}

func (n *Node) firstKey() string {
	if len(n.keys) == 0 {
		return ""
	}
	return n.keys[0]
}

// BuildTree inserts the paths of values into a new tree.
func BuildTree(values []Value) (*Node, error) {
	root := NewBranch()
	for _, v := range values {
		if err := root.Insert(v.Path); err != nil {
			return nil, err
		}
	}
	return root, nil
}
