package router

import (
	"fmt"
	"sort"
)

// tree is a prefix tree keyed by path segments. Static children live in a
// per-node map while parameter and wildcard children occupy dedicated
// single-slot edges, keeping lookup O(depth) regardless of branching factor.
// The tree is generic over its payload so the mux can instantiate it for
// HTTP handlers and WebSocket handlers alike.
type tree[T any] struct {
	root *node[T]

	// rootAlias is set when a sole-wildcard route ("/*") also populated the
	// root handler, so removal can undo both registrations together.
	rootAlias bool
}

type node[T any] struct {
	// key is the literal segment text for static nodes and the bind name
	// for parameter nodes.
	key string

	// pattern is the original route path that created this node, kept for
	// conflict reporting and introspection.
	pattern string

	handler *T

	static   map[string]*node[T]
	param    *node[T]
	wildcard *node[T]
}

func newTree[T any]() *tree[T] {
	return &tree[T]{root: &node[T]{}}
}

// insert registers a handler at the node reached by walking (and creating)
// nodes for each segment. An empty segment list targets the root node.
// Registration fails with ErrRouteConflict when the target node already
// holds a handler, when a parameter child with a different bind name exists
// at the same position, or when a wildcard child is already present.
func (t *tree[T]) insert(pattern string, segs []Segment, h T) error {
	n := t.root
	for _, seg := range segs {
		switch seg.Kind {
		case SegmentParam:
			if n.param != nil {
				if n.param.key != seg.Name {
					return fmt.Errorf("%w: '%s' conflicts with '%s'", ErrRouteConflict, pattern, n.param.pattern)
				}
				n = n.param
				continue
			}
			child := &node[T]{key: seg.Name, pattern: pattern}
			n.param = child
			n = child

		case SegmentWildcard:
			if n.wildcard != nil {
				return fmt.Errorf("%w: '%s' conflicts with '%s'", ErrRouteConflict, pattern, n.wildcard.pattern)
			}
			child := &node[T]{pattern: pattern}
			n.wildcard = child
			n = child

		default:
			child, ok := n.static[seg.Name]
			if !ok {
				if n.static == nil {
					n.static = make(map[string]*node[T])
				}
				child = &node[T]{key: seg.Name, pattern: pattern}
				n.static[seg.Name] = child
			}
			n = child
		}
	}

	if n.handler != nil {
		return fmt.Errorf("%w: '%s' conflicts with '%s'", ErrRouteConflict, pattern, n.pattern)
	}
	n.handler = &h
	n.pattern = pattern

	// A sole wildcard segment also answers the root path, so "/*" matches "/".
	if len(segs) == 1 && segs[0].Kind == SegmentWildcard && t.root.handler == nil {
		t.root.handler = &h
		t.root.pattern = pattern
		t.rootAlias = true
	}
	return nil
}

// match is the result of a successful lookup.
type match[T any] struct {
	handler  T
	pattern  string
	params   map[string]string
	wildcard string
}

// find walks the tree segment by segment, preferring an exact static child,
// then the parameter child (binding the decoded segment text), then the
// wildcard child. When the walk dead-ends, the most recently passed wildcard
// edge wins with the slash-joined tail as its remainder; otherwise the
// lookup is a miss. A miss is an ordinary outcome, not an error.
func (t *tree[T]) find(segs []Segment) (match[T], bool) {
	n := t.root
	var params map[string]string
	var wcNode *node[T]
	wcDepth := 0

	for i, seg := range segs {
		if n.wildcard != nil {
			wcNode, wcDepth = n.wildcard, i
		}

		if child, ok := n.static[seg.Name]; ok {
			n = child
			continue
		}
		if n.param != nil {
			if params == nil {
				params = make(map[string]string)
			}
			params[n.param.key] = decodeSegment(seg.Name)
			n = n.param
			continue
		}

		return t.wildcardMatch(wcNode, segs, wcDepth, params)
	}

	if n.handler != nil {
		return match[T]{handler: *n.handler, pattern: n.pattern, params: params}, true
	}
	return t.wildcardMatch(wcNode, segs, wcDepth, params)
}

func (t *tree[T]) wildcardMatch(wcNode *node[T], segs []Segment, wcDepth int, params map[string]string) (match[T], bool) {
	if wcNode == nil || wcNode.handler == nil {
		return match[T]{}, false
	}
	return match[T]{
		handler:  *wcNode.handler,
		pattern:  wcNode.pattern,
		params:   params,
		wildcard: joinSegments(segs[wcDepth:]),
	}, true
}

// remove clears the handler at the node addressed by segs and prunes any
// ancestor chain of now-childless, handler-less nodes. It reports false when
// the node or its handler does not exist.
func (t *tree[T]) remove(segs []Segment) bool {
	chain := make([]*node[T], 1, len(segs)+1)
	chain[0] = t.root

	n := t.root
	for _, seg := range segs {
		switch seg.Kind {
		case SegmentParam:
			if n.param == nil || n.param.key != seg.Name {
				return false
			}
			n = n.param
		case SegmentWildcard:
			if n.wildcard == nil {
				return false
			}
			n = n.wildcard
		default:
			child, ok := n.static[seg.Name]
			if !ok {
				return false
			}
			n = child
		}
		chain = append(chain, n)
	}

	if n.handler == nil {
		return false
	}
	n.handler = nil

	// Undo the root alias installed by a sole-wildcard route.
	if t.rootAlias && len(segs) == 1 && segs[0].Kind == SegmentWildcard {
		t.root.handler = nil
		t.root.pattern = ""
		t.rootAlias = false
	}

	for i := len(chain) - 1; i >= 1; i-- {
		c := chain[i]
		if c.handler != nil || len(c.static) > 0 || c.param != nil || c.wildcard != nil {
			break
		}
		parent := chain[i-1]
		switch segs[i-1].Kind {
		case SegmentParam:
			parent.param = nil
		case SegmentWildcard:
			parent.wildcard = nil
		default:
			delete(parent.static, segs[i-1].Name)
		}
	}
	return true
}

// walk traverses the tree depth-first and invokes fn with the reconstructed
// normalized path for every node holding a handler. Static children are
// visited in lexical order so the output is deterministic.
func (t *tree[T]) walk(fn func(pattern string, h T)) {
	if t.root.handler != nil && !t.rootAlias {
		fn("/", *t.root.handler)
	}
	t.root.walkChildren("", fn)
}

func (n *node[T]) walkChildren(prefix string, fn func(pattern string, h T)) {
	if len(n.static) > 0 {
		keys := make([]string, 0, len(n.static))
		for k := range n.static {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n.static[k].visit(prefix+"/"+k, fn)
		}
	}
	if n.param != nil {
		n.param.visit(prefix+"/:"+n.param.key, fn)
	}
	if n.wildcard != nil {
		n.wildcard.visit(prefix+"/*", fn)
	}
}

func (n *node[T]) visit(path string, fn func(pattern string, h T)) {
	if n.handler != nil {
		fn(path, *n.handler)
	}
	n.walkChildren(path, fn)
}
