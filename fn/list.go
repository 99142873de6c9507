package fn

// Node is a single element of a List. It exposes Next/Prev accessors rather
// than exported pointer fields so a caller can't splice the list's internal
// links directly.
type Node[T any] struct {
	Value T

	next, prev *Node[T]
	list       *List[T]
}

// Next returns the next node in the list, or nil if n is the last node.
func (n *Node[T]) Next() *Node[T] {
	if nx := n.next; n.list != nil && nx != &n.list.root {
		return nx
	}

	return nil
}

// Prev returns the previous node in the list, or nil if n is the first node.
func (n *Node[T]) Prev() *Node[T] {
	if pv := n.prev; n.list != nil && pv != &n.list.root {
		return pv
	}

	return nil
}

// List is a generic doubly-linked list, a drop-in generic replacement for
// container/list's interface{}-typed Element/List pair. The zero value is
// not ready to use; construct one with NewList.
type List[T any] struct {
	root Node[T]
	len  int
}

// NewList creates an empty, ready-to-use list.
func NewList[T any]() *List[T] {
	l := &List[T]{}
	l.root.next = &l.root
	l.root.prev = &l.root

	return l
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the first node of the list, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.len == 0 {
		return nil
	}

	return l.root.next
}

// Back returns the last node of the list, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.len == 0 {
		return nil
	}

	return l.root.prev
}

// insert inserts n immediately after at, sets n's owning list, and bumps the
// length. Caller must not already have n attached to any list.
func (l *List[T]) insert(n, at *Node[T]) *Node[T] {
	n.prev = at
	n.next = at.next
	n.prev.next = n
	n.next.prev = n
	n.list = l
	l.len++

	return n
}

// insertValue wraps v in a new Node and inserts it after at.
func (l *List[T]) insertValue(v T, at *Node[T]) *Node[T] {
	return l.insert(&Node[T]{Value: v}, at)
}

// remove unlinks n from the list it belongs to and decrements the length.
// Caller must hold a node that genuinely belongs to l.
func (l *List[T]) remove(n *Node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
	n.list = nil
	l.len--
}

// move relocates n to immediately after at, a no-op if n is already there.
func (l *List[T]) move(n, at *Node[T]) {
	if n == at {
		return
	}

	n.prev.next = n.next
	n.next.prev = n.prev

	n.prev = at
	n.next = at.next
	n.prev.next = n
	n.next.prev = n
}

// Remove removes n from the list, provided n belongs to l. A nil or
// foreign node is ignored.
func (l *List[T]) Remove(n *Node[T]) {
	if n == nil || n.list != l {
		return
	}

	l.remove(n)
}

// PushFront inserts a new node carrying v at the front of the list and
// returns it.
func (l *List[T]) PushFront(v T) *Node[T] {
	return l.insertValue(v, &l.root)
}

// PushBack inserts a new node carrying v at the back of the list and
// returns it.
func (l *List[T]) PushBack(v T) *Node[T] {
	return l.insertValue(v, l.root.prev)
}

// InsertBefore inserts a new node carrying v immediately before mark and
// returns it. mark must belong to l.
func (l *List[T]) InsertBefore(v T, mark *Node[T]) *Node[T] {
	if mark == nil || mark.list != l {
		return nil
	}

	return l.insertValue(v, mark.prev)
}

// InsertAfter inserts a new node carrying v immediately after mark and
// returns it. mark must belong to l.
func (l *List[T]) InsertAfter(v T, mark *Node[T]) *Node[T] {
	if mark == nil || mark.list != l {
		return nil
	}

	return l.insertValue(v, mark)
}

// MoveToFront moves n to the front of the list. n must belong to l.
func (l *List[T]) MoveToFront(n *Node[T]) {
	if n == nil || n.list != l || l.root.next == n {
		return
	}

	l.move(n, &l.root)
}

// MoveToBack moves n to the back of the list. n must belong to l.
func (l *List[T]) MoveToBack(n *Node[T]) {
	if n == nil || n.list != l || l.root.prev == n {
		return
	}

	l.move(n, l.root.prev)
}

// MoveBefore moves n to immediately before mark. Both must belong to l.
func (l *List[T]) MoveBefore(n, mark *Node[T]) {
	if n == nil || mark == nil || n == mark || n.list != l || mark.list != l {
		return
	}

	l.move(n, mark.prev)
}

// MoveAfter moves n to immediately after mark. Both must belong to l.
func (l *List[T]) MoveAfter(n, mark *Node[T]) {
	if n == nil || mark == nil || n == mark || n.list != l || mark.list != l {
		return
	}

	l.move(n, mark)
}

// PushBackList appends a copy of other's elements to the back of l. other is
// left unmodified, even if other == l.
func (l *List[T]) PushBackList(other *List[T]) {
	for i, n := other.Len(), other.Front(); i > 0; i, n = i-1, n.Next() {
		l.PushBack(n.Value)
	}
}

// PushFrontList prepends a copy of other's elements, in other's original
// order, to the front of l. other is left unmodified, even if other == l.
func (l *List[T]) PushFrontList(other *List[T]) {
	for i, n := other.Len(), other.Back(); i > 0; i, n = i-1, n.Prev() {
		l.PushFront(n.Value)
	}
}
