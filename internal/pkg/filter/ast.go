package filter

import "strings"

// expr is a compiled boolean expression node.
type expr interface {
	eval(ctx Context) bool
}

// operand is a string-valued node. The second return value reports whether
// the operand could be resolved, a literal always resolves, a variable only
// when present in the context.
type operand interface {
	value(ctx Context) (string, bool)
}

type literalNode struct {
	val string
}

func (n literalNode) value(Context) (string, bool) {
	return n.val, true
}

type variableNode struct {
	name string
}

func (n variableNode) value(ctx Context) (string, bool) {
	v, ok := ctx[n.name]
	return v, ok
}

// containsNode implements `needle in haystack` and `needle not in haystack`.
// An unresolved operand makes the node false regardless of negation, so that
// heterogeneous resources missing a field are tolerated.
type containsNode struct {
	needle   operand
	haystack operand
	negate   bool
}

func (n containsNode) eval(ctx Context) bool {
	needle, ok := n.needle.value(ctx)
	if !ok {
		return false
	}
	haystack, ok := n.haystack.value(ctx)
	if !ok {
		return false
	}

	contains := strings.Contains(haystack, needle)
	if n.negate {
		return !contains
	}
	return contains
}

// equalsNode implements `==` and `!=`, with the same missing-field tolerance
// as containsNode.
type equalsNode struct {
	left   operand
	right  operand
	negate bool
}

func (n equalsNode) eval(ctx Context) bool {
	left, ok := n.left.value(ctx)
	if !ok {
		return false
	}
	right, ok := n.right.value(ctx)
	if !ok {
		return false
	}

	equal := left == right
	if n.negate {
		return !equal
	}
	return equal
}

type andNode struct {
	left, right expr
}

func (n andNode) eval(ctx Context) bool {
	return n.left.eval(ctx) && n.right.eval(ctx)
}

type orNode struct {
	left, right expr
}

func (n orNode) eval(ctx Context) bool {
	return n.left.eval(ctx) || n.right.eval(ctx)
}

type notNode struct {
	inner expr
}

func (n notNode) eval(ctx Context) bool {
	return !n.inner.eval(ctx)
}
