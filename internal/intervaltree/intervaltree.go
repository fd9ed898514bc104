// Package intervaltree implements an ordered, height-balanced interval
// index: an AVL tree of disjoint [Lo, Hi] ranges supporting
// overlap-checked insertion, logarithmic point lookup, and removal. It
// is a direct, idiomatic-Go transliteration of the avl_* link algorithms
// in vanitygen.c, generalized from raw pointer/container_of tricks to a
// single Node type carrying both the interval payload and the tree
// linkage.
//
// Tree functions here are pure algorithms on links; concurrency is the
// caller's responsibility.
package intervaltree

import "math/big"

type balance int8

const (
	balLeft  balance = -1
	balCent  balance = 0
	balRight balance = 1
)

// Node is both an interval and its AVL tree linkage. The zero value is
// not usable; construct with NewNode.
type Node struct {
	Lo, Hi  *big.Int
	Pattern string

	// Sibling forms a circular linked list of every Node derived from
	// the same logical user pattern. The interval tree itself
	// never reads or mutates Sibling; it exists purely for callers
	// (the prefix context) to retire a whole pattern atomically.
	Sibling *Node

	left, right, parent *Node
	bal                 balance
}

// NewNode constructs a tree node for the half-open... actually closed
// range [lo, hi]. lo must be strictly less than hi.
func NewNode(lo, hi *big.Int, pattern string) *Node {
	return &Node{Lo: lo, Hi: hi, Pattern: pattern}
}

// Tree is an AVL tree of disjoint Nodes ordered by Lo.
type Tree struct {
	root *Node
	size int
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{}
}

// Len reports the number of intervals currently in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Empty reports whether the tree holds no intervals.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Lookup returns the unique interval containing target, or nil if none
// does.
func (t *Tree) Lookup(target *big.Int) *Node {
	n := t.root
	for n != nil {
		switch {
		case n.Lo.Cmp(target) > 0:
			n = n.left
		case n.Hi.Cmp(target) < 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Insert adds n to the tree. If n overlaps an existing interval, the
// insert is aborted and the conflicting node is returned with ok=false;
// n is left unattached to the tree in that case.
func (t *Tree) Insert(n *Node) (conflict *Node, ok bool) {
	var parent *Node
	link := &t.root
	for *link != nil {
		cur := *link
		switch {
		case cur.Lo.Cmp(n.Hi) > 0:
			parent = cur
			link = &cur.left
		case cur.Hi.Cmp(n.Lo) < 0:
			parent = cur
			link = &cur.right
		default:
			return cur, false
		}
	}

	n.left, n.right, n.bal = nil, nil, balCent
	n.parent = parent
	*link = n
	t.size++
	insertFix(t, n)
	return nil, true
}

// Remove deletes n from the tree. n must currently be a member of t.
func (t *Tree) Remove(n *Node) {
	t.size--

	if n.left == nil || n.right == nil {
		parent := n.parent
		replacement := n.left
		if replacement == nil {
			replacement = n.right
		}
		if replacement != nil {
			replacement.parent = parent
		}
		if parent == nil {
			t.root = replacement
			return
		}
		if parent.left == n {
			parent.left = replacement
		} else {
			parent.right = replacement
		}
		deleteFix(t, replacement, parent)
		return
	}

	// Two children: splice in the in-order successor.
	succ := next(n)
	replacement := succ.right

	succ.left = n.left
	if succ.left != nil {
		succ.left.parent = succ
	}

	if n.parent == nil {
		t.root = succ
	} else if n.parent.left == n {
		n.parent.left = succ
	} else {
		n.parent.right = succ
	}

	var fixParent *Node
	if succ.parent.left == succ {
		succ.parent.left = replacement
		fixParent = succ.parent
		if replacement != nil {
			replacement.parent = succ.parent
		}
		succ.right = n.right
	} else {
		succ.right = replacement
		fixParent = succ
	}
	if succ.right != nil {
		succ.right.parent = succ
	}
	succ.parent = n.parent
	succ.bal = n.bal

	deleteFix(t, replacement, fixParent)
}

// InOrder returns every node in the tree in ascending Lo order. Intended
// for tests verifying AVL invariants, not for the hot search path.
func (t *Tree) InOrder() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// AssertInvariants verifies the AVL balance invariant (every node's
// balance factor is in {-1,0,+1} and consistent with its subtree
// heights) and that an in-order walk yields strictly increasing,
// non-overlapping ranges. It panics on violation: a corrupt tree is a
// programming error, not a reportable user error.
func (t *Tree) AssertInvariants() {
	height(t.root, true)
	nodes := t.InOrder()
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].Hi.Cmp(nodes[i].Lo) >= 0 {
			panic("intervaltree: overlapping or out-of-order intervals")
		}
	}
}

// height returns the subtree height rooted at n (0 for nil), panicking
// if any node's stored balance factor disagrees with its children's
// actual heights.
func height(n *Node, assert bool) int {
	if n == nil {
		return 0
	}
	lh := height(n.left, assert)
	rh := height(n.right, assert)
	diff := rh - lh
	if diff < -1 || diff > 1 {
		panic("intervaltree: AVL balance invariant violated")
	}
	if assert {
		var want balance
		switch {
		case diff < 0:
			want = balLeft
		case diff > 0:
			want = balRight
		default:
			want = balCent
		}
		if n.bal != want {
			panic("intervaltree: stored balance factor disagrees with subtree heights")
		}
	}
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func next(n *Node) *Node {
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left
		}
		return n
	}
	for n.parent != nil && n == n.parent.right {
		n = n.parent
	}
	return n.parent
}

func rotateLL(t *Tree, n *Node) {
	tmp := n.left
	n.left = tmp.right
	if n.left != nil {
		n.left.parent = n
	}
	tmp.right = n

	reparent(t, n, tmp)
}

func rotateRR(t *Tree, n *Node) {
	tmp := n.right
	n.right = tmp.left
	if n.right != nil {
		n.right.parent = n
	}
	tmp.left = n

	reparent(t, n, tmp)
}

func rotateLR(t *Tree, n *Node) *Node {
	left := n.left
	leftRight := left.right

	reparentTo(t, n, leftRight)

	left.right = leftRight.left
	if left.right != nil {
		left.right.parent = left
	}
	n.left = leftRight.right
	if n.left != nil {
		n.left.parent = n
	}
	leftRight.left = left
	leftRight.right = n
	left.parent = leftRight
	n.parent = leftRight
	return leftRight
}

func rotateRL(t *Tree, n *Node) *Node {
	right := n.right
	rightLeft := right.left

	reparentTo(t, n, rightLeft)

	right.left = rightLeft.right
	if right.left != nil {
		right.left.parent = right
	}
	n.right = rightLeft.left
	if n.right != nil {
		n.right.parent = n
	}
	rightLeft.right = right
	rightLeft.left = n
	right.parent = rightLeft
	n.parent = rightLeft
	return rightLeft
}

// reparent rewires n's old parent to point at newChild, used by the
// simple (non-double) rotations.
func reparent(t *Tree, n, newChild *Node) {
	newChild.parent = n.parent
	if n.parent == nil {
		t.root = newChild
	} else if n.parent.left == n {
		n.parent.left = newChild
	} else {
		n.parent.right = newChild
	}
	n.parent = newChild
}

// reparentTo rewires n's old parent to point at newChild directly,
// without assigning newChild.parent (the double rotations finish that
// wiring themselves).
func reparentTo(t *Tree, n, newChild *Node) {
	if n.parent == nil {
		t.root = newChild
	} else if n.parent.left == n {
		n.parent.left = newChild
	} else {
		n.parent.right = newChild
	}
}

// insertFix rebalances the tree from a freshly-inserted node up to the
// root, following vanitygen.c's avl_insert_fix.
func insertFix(t *Tree, item *Node) {
	parent := item.parent
	for parent != nil {
		if item == parent.left {
			switch parent.bal {
			case balLeft:
				if item.bal == balLeft {
					rotateLL(t, parent)
					item.bal, parent.bal = balCent, balCent
				} else {
					child := item.right
					newTop := rotateLR(t, parent)
					item.bal, parent.bal = balCent, balCent
					if child.bal == balRight {
						item.bal = balLeft
					}
					if child.bal == balLeft {
						parent.bal = balRight
					}
					child.bal = balCent
					_ = newTop
				}
				return
			case balCent:
				parent.bal = balLeft
			default:
				parent.bal = balCent
				return
			}
		} else {
			switch parent.bal {
			case balRight:
				if item.bal == balRight {
					rotateRR(t, parent)
					item.bal, parent.bal = balCent, balCent
				} else {
					child := item.left
					newTop := rotateRL(t, parent)
					item.bal, parent.bal = balCent, balCent
					if child.bal == balRight {
						parent.bal = balLeft
					}
					if child.bal == balLeft {
						item.bal = balRight
					}
					child.bal = balCent
					_ = newTop
				}
				return
			case balCent:
				parent.bal = balRight
			default:
				parent.bal = balCent
				return
			}
		}
		item = parent
		parent = item.parent
	}
}

// deleteFix rebalances the tree after a node has been spliced out,
// following vanitygen.c's avl_delete_fix. item is the child that took
// the removed node's place under parent (possibly nil); parent is never
// nil on entry.
func deleteFix(t *Tree, item, parent *Node) {
	if parent.left == nil && parent.right == nil {
		parent.bal = balCent
		item = parent
		parent = item.parent
	}

	for parent != nil {
		if item == parent.right {
			item = parent.left
			switch parent.bal {
			case balLeft:
				switch item.bal {
				case balLeft:
					rotateLL(t, parent)
					item.bal, parent.bal = balCent, balCent
					parent = item
				case balCent:
					rotateLL(t, parent)
					item.bal, parent.bal = balRight, balLeft
					return
				default:
					child := item.right
					newTop := rotateLR(t, parent)
					item.bal, parent.bal = balCent, balCent
					if child.bal == balRight {
						item.bal = balLeft
					}
					if child.bal == balLeft {
						parent.bal = balRight
					}
					child.bal = balCent
					parent = newTop
				}
			case balCent:
				parent.bal = balLeft
				return
			default:
				parent.bal = balCent
			}
		} else {
			item = parent.right
			switch parent.bal {
			case balRight:
				switch item.bal {
				case balRight:
					rotateRR(t, parent)
					item.bal, parent.bal = balCent, balCent
					parent = item
				case balCent:
					rotateRR(t, parent)
					item.bal, parent.bal = balLeft, balRight
					return
				default:
					child := item.left
					newTop := rotateRL(t, parent)
					item.bal, parent.bal = balCent, balCent
					if child.bal == balRight {
						parent.bal = balLeft
					}
					if child.bal == balLeft {
						item.bal = balRight
					}
					child.bal = balCent
					parent = newTop
				}
			case balCent:
				parent.bal = balRight
				return
			default:
				parent.bal = balCent
			}
		}

		item = parent
		parent = item.parent
	}
}
