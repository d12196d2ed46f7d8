package document

import (
	"fmt"
	"sort"

	"github.com/kosmix/colex/internal/options"
	"github.com/kosmix/colex/path"
	"github.com/kosmix/colex/value"
)

// DefaultChunkSize is used when Flatten is called without a ChunkSize
// option. It is sized comfortably larger than most scalar values while
// still bounding a single stream record.
const DefaultChunkSize = 4096

// minChunkSize is the smallest chunk size Flatten accepts; below this, the
// per-chunk overhead (path + 6-byte record header) can exceed the budget
// for any non-trivial path.
const minChunkSize = 64

type config struct {
	chunkSize  int
	noChunking bool
}

// Option configures Flatten.
type Option = options.Option[*config]

// ChunkSize sets the maximum encoded size of a single string chunk's
// record. Strings longer than this are split across
// multiple (Index(offset), Cont) records.
func ChunkSize(n int) Option {
	return options.New(func(c *config) error {
		if n < minChunkSize {
			return fmt.Errorf("document: chunk size %d below minimum %d", n, minChunkSize)
		}
		c.chunkSize = n
		return nil
	})
}

// NoChunking disables string splitting entirely: every string is emitted
// as a single entry regardless of length. Useful for callers that know
// their documents hold no oversized strings and want to skip the
// chunk-boundary bookkeeping.
func NoChunking() Option {
	return options.NoError(func(c *config) {
		c.noChunking = true
	})
}

// Entry is one flattened (path, value bytes) pair.
type Entry struct {
	Path  path.Path
	Value []byte
}

// Flatten performs a depth-first traversal of root, producing one Entry
// per leaf value (or per chunk, for strings longer than the configured
// chunk size). Objects are visited in sorted key order so the output is in
// encoded-path byte-lexicographic order.
func Flatten(root *Node, opts ...Option) ([]Entry, error) {
	cfg := config{chunkSize: DefaultChunkSize}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	chunkSize := cfg.chunkSize
	if cfg.noChunking {
		chunkSize = -1
	}

	var acc []Entry
	if err := flattenInto(chunkSize, root, path.NewPathBuf(), &acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func flattenInto(chunkSize int, node *Node, p *path.PathBuf, acc *[]Entry) error {
	switch node.Kind {
	case KindNull:
		return emitTagged(p, value.Null(), acc)

	case KindBool:
		return emitTagged(p, value.Bool(node.Bool), acc)

	case KindInt:
		return emitTagged(p, value.Int(node.Int), acc)

	case KindFloat:
		return emitTagged(p, value.Float(node.Flt), acc)

	case KindString:
		return flattenString(chunkSize, node.Str, p, acc)

	case KindArray:
		for i, child := range node.Array {
			childPath := p.Clone()
			if err := childPath.PushIndex(uint64(i)); err != nil {
				return err
			}
			if err := flattenInto(chunkSize, child, childPath, acc); err != nil {
				return err
			}
		}
		return nil

	case KindObject:
		keys := make([]string, 0, len(node.Object))
		for k := range node.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := p.Clone()
			if err := childPath.PushKey(k); err != nil {
				return err
			}
			if err := flattenInto(chunkSize, node.Object[k], childPath, acc); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("document: unknown node kind %d", node.Kind)
	}
}

func emitTagged(p *path.PathBuf, v value.Value, acc *[]Entry) error {
	buf, err := value.Encode(nil, v)
	if err != nil {
		return err
	}
	*acc = append(*acc, Entry{Path: p.View().Clone(), Value: buf})
	return nil
}

func flattenString(chunkSize int, s string, p *path.PathBuf, acc *[]Entry) error {
	bytes := []byte(s)
	if chunkSize < 0 || len(bytes) <= chunkSize {
		return emitTagged(p, value.String(s), acc)
	}

	index := 0
	for index < len(bytes) {
		chunkPath := p.Clone()
		if err := chunkPath.PushIndex(uint64(index)); err != nil {
			return err
		}
		if err := chunkPath.PushContinued(); err != nil {
			return err
		}

		pathLen := chunkPath.Len()
		chunkLen := chunkSize - pathLen - 6
		if remaining := len(bytes) - index; chunkLen > remaining {
			chunkLen = remaining
		}
		if chunkLen <= 0 {
			return fmt.Errorf("document: chunk size %d too small for path of length %d", chunkSize, pathLen)
		}

		chunk := bytes[index : index+chunkLen]
		raw := make([]byte, len(chunk))
		copy(raw, chunk)
		*acc = append(*acc, Entry{Path: chunkPath.View().Clone(), Value: raw})

		index += chunkLen
	}

	return nil
}
