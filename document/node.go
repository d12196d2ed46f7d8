// Package document implements colex's flattener and merger: converting a
// document tree to and from a sequence of (path.PathBuf, value bytes)
// pairs.
package document

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// Node is an in-memory document tree: {null, bool, int, float, string,
// array, object}.
type Node struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Flt    float64
	Str    string
	Array  []*Node
	Object map[string]*Node
	// Keys preserves object insertion order for callers that care; Flatten
	// always visits Object in sorted key order regardless of Keys, per
	// flattening.
	Keys []string
}

func Null() *Node           { return &Node{Kind: KindNull} }
func Bool(b bool) *Node     { return &Node{Kind: KindBool, Bool: b} }
func Int(n int64) *Node     { return &Node{Kind: KindInt, Int: n} }
func Float(f float64) *Node { return &Node{Kind: KindFloat, Flt: f} }
func String(s string) *Node { return &Node{Kind: KindString, Str: s} }
func Array(items ...*Node) *Node {
	return &Node{Kind: KindArray, Array: items}
}

// NewObject creates an empty Object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, Object: map[string]*Node{}}
}

// Set inserts or replaces a field on an Object node, tracking insertion
// order in Keys.
func (n *Node) Set(key string, child *Node) {
	if _, exists := n.Object[key]; !exists {
		n.Keys = append(n.Keys, key)
	}
	n.Object[key] = child
}

// Delete removes a field from an Object node.
func (n *Node) Delete(key string) {
	if _, exists := n.Object[key]; !exists {
		return
	}
	delete(n.Object, key)
	for i, k := range n.Keys {
		if k == key {
			n.Keys = append(n.Keys[:i], n.Keys[i+1:]...)
			break
		}
	}
}
