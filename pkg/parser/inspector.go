package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Lineage is the ordered sequence of ancestors from the tree root down
// to (but excluding) the node currently being visited. It is transient:
// the slice is only valid for the duration of a single visit callback
// and must not be retained.
type Lineage []*sitter.Node

// NearestAncestor returns the closest enclosing ancestor of the given
// kind, scanning the lineage from its tail (nearest ancestor) toward
// its head (root). Returns nil when the lineage is empty, the kind is
// empty, or no ancestor matches.
func NearestAncestor(lineage Lineage, kind string) *sitter.Node {
	if kind == "" {
		return nil
	}
	for i := len(lineage) - 1; i >= 0; i-- {
		if lineage[i] != nil && lineage[i].Type() == kind {
			return lineage[i]
		}
	}
	return nil
}

// NearestAncestorOf is like NearestAncestor but accepts several kinds,
// returning the closest ancestor matching any of them.
func NearestAncestorOf(lineage Lineage, kinds ...string) *sitter.Node {
	if len(kinds) == 0 {
		return nil
	}
	for i := len(lineage) - 1; i >= 0; i-- {
		node := lineage[i]
		if node == nil {
			continue
		}
		t := node.Type()
		for _, kind := range kinds {
			if kind != "" && t == kind {
				return node
			}
		}
	}
	return nil
}

// Visitor is invoked once per matching node during an inspection. The
// lineage runs root to parent, excluding the node itself, and is only
// valid until the visitor returns.
type Visitor func(node *sitter.Node, lineage Lineage)

// Inspector dispatches registered visitors during a single depth-first
// pre-order traversal, supplying each visitor the full lineage of the
// visited node. Traversal order is stable for a given tree: a visitor
// registered for kind K fires exactly once per kind-K node, in document
// order. Nodes with no registered visitor are skipped silently.
//
// Visitors must not mutate the tree. The inspector itself holds no
// per-walk state, so one Inspector may be reused across trees.
type Inspector struct {
	visitors map[string][]Visitor
}

// NewInspector creates an empty inspector.
func NewInspector() *Inspector {
	return &Inspector{
		visitors: make(map[string][]Visitor),
	}
}

// Register subscribes a visitor to a node kind. Multiple visitors may
// subscribe to the same kind; they fire in registration order.
func (in *Inspector) Register(kind string, v Visitor) *Inspector {
	if kind == "" || v == nil {
		return in
	}
	in.visitors[kind] = append(in.visitors[kind], v)
	return in
}

// Inspect walks every node reachable from root, invoking registered
// visitors. The root must not be nil; callers are responsible for
// checking presence before walking (a failed parse never reaches here).
func (in *Inspector) Inspect(root *sitter.Node) {
	if len(in.visitors) == 0 {
		return
	}
	lineage := make(Lineage, 0, 32)
	in.walk(root, lineage)
}

// InspectTree is a convenience wrapper that tolerates an absent tree,
// degrading to a no-op so detectors can be invoked defensively.
func (in *Inspector) InspectTree(tree *sitter.Tree) {
	if tree == nil {
		return
	}
	root := tree.RootNode()
	if root == nil {
		return
	}
	in.Inspect(root)
}

func (in *Inspector) walk(node *sitter.Node, lineage Lineage) {
	if vs, ok := in.visitors[node.Type()]; ok {
		for _, v := range vs {
			v(node, lineage)
		}
	}

	lineage = append(lineage, node)
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if child != nil {
			in.walk(child, lineage)
		}
	}
}
