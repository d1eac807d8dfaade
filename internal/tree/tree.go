package tree

import "fmt"

// CapacityFunc - derives the capacity of a new node from the capacity of its parent.
type CapacityFunc func(parentCapacity int) int

// Option - configures a Tree.
type Option func(*Tree)

// WithChildCapacity - overrides the default "one board slot consumed per move" convention.
func WithChildCapacity(fn CapacityFunc) Option {
	return func(that *Tree) {
		that.childCapacity = fn
	}
}

// DecrementCapacity - each move takes one empty cell, so a child can have one child less than its parent.
func DecrementCapacity(parentCapacity int) int {
	return max(parentCapacity-1, 0)
}

// Tree - game configurations reached so far plus a cursor pointing at the current position.
type Tree struct {
	nodes   []*Node
	root    NodeID
	current NodeID

	childCapacity CapacityFunc
}

// New - creates a tree whose root can hold rootCapacity children. The cursor starts at the root.
func New(rootCapacity int, opts ...Option) (*Tree, error) {
	root, err := NewNode(rootCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create root: %w", err)
	}

	that := &Tree{
		root:          0,
		current:       0,
		childCapacity: DecrementCapacity,
	}

	for _, opt := range opts {
		opt(that)
	}

	root.ID = that.root
	that.nodes = append(that.nodes, root)

	return that, nil
}

func (that *Tree) Root() *Node {
	return that.nodes[that.root]
}

func (that *Tree) CurrentNode() *Node {
	return that.nodes[that.current]
}

// Node - returns the node with the given id or nil when the tree has no such node.
func (that *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(that.nodes) {
		return nil
	}

	return that.nodes[id]
}

// Size - number of nodes in the tree, root included.
func (that *Tree) Size() int {
	return len(that.nodes)
}

// AddChild - attaches a detached node as the last child of parentID.
// Nothing is changed when the parent is already full.
func (that *Tree) AddChild(parentID NodeID, node *Node) (NodeID, error) {
	parent := that.Node(parentID)
	if parent == nil {
		return NoNode, fmt.Errorf("%w: id %d", ErrNodeNotFound, parentID)
	}

	if node.ID != NoNode || node.Parent != NoNode {
		return NoNode, fmt.Errorf("%w: %s", ErrNodeAttached, node)
	}

	if parent.IsFull() {
		return NoNode, fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, parent.Capacity)
	}

	node.ID = NodeID(len(that.nodes))
	node.Parent = parent.ID
	node.Level = parent.Level + 1

	that.nodes = append(that.nodes, node)
	parent.Children = append(parent.Children, node.ID)

	return node.ID, nil
}

// AddNode - adds a new child at the given board position to the current node and moves the cursor to it.
func (that *Tree) AddNode(position int) error {
	node, err := NewNode(that.childCapacity(that.CurrentNode().Capacity))
	if err != nil {
		return fmt.Errorf("failed to create node: %w", err)
	}

	node.Position = position

	id, err := that.AddChild(that.current, node)
	if err != nil {
		return fmt.Errorf("failed to add node at position %d: %w", position, err)
	}

	that.current = id

	return nil
}

func (that *Tree) MoveToRoot() {
	that.current = that.root
}

// MoveToParent - moves the cursor one level up, staying in place at the root.
func (that *Tree) MoveToParent() {
	if parent := that.CurrentNode().Parent; parent != NoNode {
		that.current = parent
	}
}

// FindChildNodeWithGivenPosition - returns the first child of the current node at the given board position.
func (that *Tree) FindChildNodeWithGivenPosition(position int) (NodeID, bool) {
	for _, id := range that.CurrentNode().Children {
		if that.nodes[id].Position == position {
			return id, true
		}
	}

	return NoNode, false
}

// MoveToChild - moves the cursor to id, which must be a direct child of the current node.
func (that *Tree) MoveToChild(id NodeID) error {
	for _, child := range that.CurrentNode().Children {
		if child == id {
			that.current = id
			return nil
		}
	}

	return fmt.Errorf("%w: id %d", ErrChildNodeNotFound, id)
}

// UpdateTreeStatus - propagates the status of the current node towards the root.
// Call it when the game is over, after the current node status has been set.
// A child's win is a loss for its parent; a parent wins only when every possible child loses,
// and draws when every possible child is resolved without a win. Unexplored children count as unresolved.
// Statuses are written once: ascent stops at the first node that cannot be resolved or is already resolved.
func (that *Tree) UpdateTreeStatus() error {
	current := that.CurrentNode()
	if current.Status == StatusUnknown {
		return fmt.Errorf("%w: %s", ErrIllegalStatus, current)
	}

	for !current.IsRoot() {
		that.current = current.Parent
		current = that.CurrentNode()

		status := that.resolve(current)
		if status == StatusUnknown || current.Status != StatusUnknown {
			return nil
		}

		current.Status = status
	}

	return nil
}

// resolve - derives the status of a node from its children.
func (that *Tree) resolve(node *Node) Status {
	losers, draws := 0, 0
	allResolved := len(node.Children) == node.Capacity

	for _, id := range node.Children {
		switch that.nodes[id].Status {
		case StatusWin:
			return StatusLose
		case StatusLose:
			losers++
		case StatusDraw:
			draws++
		default:
			allResolved = false
		}
	}

	switch {
	case losers == node.Capacity:
		return StatusWin
	case draws == node.Capacity || allResolved:
		return StatusDraw
	default:
		return StatusUnknown
	}
}
