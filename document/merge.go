package document

import (
	"fmt"

	"github.com/kosmix/colex/errs"
	"github.com/kosmix/colex/path"
	"github.com/kosmix/colex/value"
)

// Merge reconstructs a document tree from a sequence of flattened entries.
// Entries need not be in path order, but each chunk-continuation entry for
// a given string must carry an offset no larger than the length assembled
// so far, since each splice extends or replaces the tail of what has been
// assembled.
func Merge(entries []Entry) (*Node, error) {
	root := Null()
	for _, e := range entries {
		segs, err := e.Path.Segments()
		if err != nil {
			return nil, err
		}
		if err := mergeEntry(root, segs, e.Value); err != nil {
			return nil, fmt.Errorf("merge %s: %w", e.Path.String(), err)
		}
	}
	return root, nil
}

func mergeEntry(root *Node, segs []path.Segment, val []byte) error {
	if isChunk(segs) {
		offset := segs[len(segs)-2].Index
		leafSegs := segs[:len(segs)-2]

		if len(leafSegs) == 0 {
			return spliceRootString(root, offset, val)
		}

		container, sel, err := navigate(root, leafSegs)
		if err != nil {
			return err
		}
		return applyChunk(container, sel, offset, val)
	}

	if len(segs) == 0 {
		return setScalar(root, val)
	}

	container, sel, err := navigate(root, segs)
	if err != nil {
		return err
	}
	return applyScalar(container, sel, val)
}

func isChunk(segs []path.Segment) bool {
	return len(segs) >= 2 &&
		segs[len(segs)-1].Kind == path.KindCont &&
		segs[len(segs)-2].Kind == path.KindIndex
}

// navigate walks segs[:len-1] from root, materializing object/array
// containers on demand, and returns the final container together with the
// last segment (the selector to apply within it).
func navigate(root *Node, segs []path.Segment) (*Node, path.Segment, error) {
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		switch seg.Kind {
		case path.KindKey:
			if cur.Kind == KindNull {
				materializeObject(cur)
			}
			if cur.Kind != KindObject {
				return nil, path.Segment{}, fmt.Errorf("path selects key %q on a non-object node", seg.Key)
			}
			child, ok := cur.Object[seg.Key]
			if !ok {
				child = Null()
				cur.Set(seg.Key, child)
			}
			cur = child

		case path.KindIndex:
			if cur.Kind == KindNull {
				materializeArray(cur)
			}
			if cur.Kind != KindArray {
				return nil, path.Segment{}, fmt.Errorf("path selects index %d on a non-array node", seg.Index)
			}
			idx := int(seg.Index)
			growArray(cur, idx+1)
			if cur.Array[idx] == nil {
				cur.Array[idx] = Null()
			}
			cur = cur.Array[idx]

		default:
			return nil, path.Segment{}, fmt.Errorf("unexpected continuation segment mid-path")
		}
	}
	return cur, segs[len(segs)-1], nil
}

func materializeObject(n *Node) {
	n.Kind = KindObject
	n.Object = map[string]*Node{}
}

func materializeArray(n *Node) {
	n.Kind = KindArray
}

func growArray(n *Node, size int) {
	for len(n.Array) < size {
		n.Array = append(n.Array, Null())
	}
}

func nodeFromValue(v value.Value) *Node {
	switch v.Kind {
	case value.KindBool:
		return Bool(v.Bool)
	case value.KindInt:
		return Int(v.Int)
	case value.KindFloat:
		return Float(v.Flt)
	case value.KindString:
		return String(v.Str)
	default:
		return Null()
	}
}

func applyScalar(container *Node, sel path.Segment, valBytes []byte) error {
	v, _, err := value.Decode(valBytes)
	if err != nil {
		return err
	}

	if v.Kind == value.KindNull {
		return applyNull(container, sel)
	}

	return setAt(container, sel, nodeFromValue(v))
}

func setAt(container *Node, sel path.Segment, leaf *Node) error {
	switch sel.Kind {
	case path.KindKey:
		if container.Kind == KindNull {
			materializeObject(container)
		}
		if container.Kind != KindObject {
			return fmt.Errorf("path sets key %q on a non-object node", sel.Key)
		}
		container.Set(sel.Key, leaf)
		return nil

	case path.KindIndex:
		if container.Kind == KindNull {
			materializeArray(container)
		}
		if container.Kind != KindArray {
			return fmt.Errorf("path sets index %d on a non-array node", sel.Index)
		}
		idx := int(sel.Index)
		growArray(container, idx+1)
		container.Array[idx] = leaf
		return nil

	default:
		return fmt.Errorf("unexpected selector kind")
	}
}

// applyNull implements the null-merge semantics:
// a null at an object key removes the key; at the last array index it pops
// the element; at any other existing array index it overwrites with null.
// A null at a path that does not yet exist is a no-op.
func applyNull(container *Node, sel path.Segment) error {
	switch sel.Kind {
	case path.KindKey:
		if container.Kind != KindObject {
			return nil
		}
		container.Delete(sel.Key)
		return nil

	case path.KindIndex:
		if container.Kind != KindArray {
			return nil
		}
		idx := int(sel.Index)
		if idx >= len(container.Array) {
			return nil
		}
		if idx == len(container.Array)-1 {
			container.Array = container.Array[:idx]
			return nil
		}
		container.Array[idx] = Null()
		return nil

	default:
		return fmt.Errorf("unexpected selector kind")
	}
}

func applyChunk(container *Node, sel path.Segment, offset uint64, chunk []byte) error {
	var leaf *Node

	switch sel.Kind {
	case path.KindKey:
		if container.Kind == KindNull {
			materializeObject(container)
		}
		if container.Kind != KindObject {
			return fmt.Errorf("chunk continuation selects key %q on a non-object node", sel.Key)
		}
		leaf = container.Object[sel.Key]
		if leaf == nil {
			leaf = String("")
			container.Set(sel.Key, leaf)
		}

	case path.KindIndex:
		if container.Kind == KindNull {
			materializeArray(container)
		}
		if container.Kind != KindArray {
			return fmt.Errorf("chunk continuation selects index %d on a non-array node", sel.Index)
		}
		idx := int(sel.Index)
		growArray(container, idx+1)
		if container.Array[idx].Kind == KindNull {
			container.Array[idx] = String("")
		}
		leaf = container.Array[idx]

	default:
		return fmt.Errorf("unexpected selector kind")
	}

	if leaf.Kind != KindString {
		return fmt.Errorf("chunk continuation target is not a string")
	}

	spliced, err := spliceString(leaf.Str, int(offset), chunk)
	if err != nil {
		return err
	}
	leaf.Str = spliced
	return nil
}

func spliceRootString(root *Node, offset uint64, chunk []byte) error {
	if root.Kind == KindNull {
		root.Kind = KindString
		root.Str = ""
	}
	if root.Kind != KindString {
		return fmt.Errorf("chunk continuation target is not a string")
	}

	spliced, err := spliceString(root.Str, int(offset), chunk)
	if err != nil {
		return err
	}
	root.Str = spliced
	return nil
}

func setScalar(root *Node, valBytes []byte) error {
	v, _, err := value.Decode(valBytes)
	if err != nil {
		return err
	}
	leaf := nodeFromValue(v)
	*root = *leaf
	return nil
}

// spliceString extends or overwrites the tail of existing at offset,
// matching the chunk-reassembly rule: offset == len(existing)
// appends, offset < len(existing) replaces the tail, and offset >
// len(existing) is an error.
func spliceString(existing string, offset int, chunk []byte) (string, error) {
	cur := []byte(existing)

	switch {
	case offset == len(cur):
		cur = append(cur, chunk...)
	case offset < len(cur):
		cur = append(cur[:offset], chunk...)
	default:
		return "", fmt.Errorf("%w: offset %d > current length %d", errs.ErrOffsetMismatch, offset, len(cur))
	}

	return string(cur), nil
}
