package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID - index of a node inside the tree arena.
type NodeID int

// NoNode - marks a missing parent or an unsuccessful lookup.
const NoNode NodeID = -1

// MaxCapacity - upper bound of children per node, a 32x32 board.
const MaxCapacity = 1024

// Node - one board configuration. Links to other nodes are arena indices owned by the Tree.
type Node struct {
	ID       NodeID
	UID      uuid.UUID
	Status   Status
	Position int // position on the game board
	Weight   int // optimisation parameter, not used by back-propagation
	Level    int // depth in the tree, root is 0
	Capacity int // max number of children, fixed at construction
	Parent   NodeID
	Children []NodeID
}

// NewNode - builds a detached node able to hold up to capacity children.
func NewNode(capacity int) (*Node, error) {
	if capacity < 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Node{
		ID:       NoNode,
		UID:      uuid.New(),
		Status:   StatusUnknown,
		Capacity: capacity,
		Parent:   NoNode,
		Children: make([]NodeID, 0, capacity),
	}, nil
}

// Child - returns the id of the child with the given insertion index.
func (that *Node) Child(index int) (NodeID, error) {
	if index < 0 || index >= len(that.Children) {
		return NoNode, fmt.Errorf("%w: index %d", ErrChildNotFound, index)
	}

	return that.Children[index], nil
}

func (that *Node) IsFull() bool {
	return len(that.Children) >= that.Capacity
}

func (that *Node) IsRoot() bool {
	return that.Parent == NoNode
}

// Equal - nodes are the same node when their unique identifiers match.
func (that *Node) Equal(other *Node) bool {
	if that == nil || other == nil {
		return that == other
	}

	return that.UID == other.UID
}

func (that *Node) String() string {
	return fmt.Sprintf("Node, UID=%s, status=%s, level=%d, position=%d, parent=%d, capacity=%d, children=%d",
		that.UID, that.Status, that.Level, that.Position, that.Parent, that.Capacity, len(that.Children))
}
