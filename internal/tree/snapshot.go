package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// Snapshot - serialisable form of a tree. Node i of Nodes has id i; the root is node 0.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
}

type SnapshotNode struct {
	UID      uuid.UUID `json:"uid"`
	Status   Status    `json:"status"`
	Position int       `json:"position"`
	Weight   int       `json:"weight,omitempty"`
	Level    int       `json:"level"`
	Capacity int       `json:"capacity"`
	Parent   NodeID    `json:"parent"`
	Children []NodeID  `json:"children,omitempty"`
}

// Snapshot - exports every node of the tree. The cursor is not part of the snapshot.
func (that *Tree) Snapshot() *Snapshot {
	snapshot := &Snapshot{Nodes: make([]SnapshotNode, 0, len(that.nodes))}

	for _, node := range that.nodes {
		snapshot.Nodes = append(snapshot.Nodes, SnapshotNode{
			UID:      node.UID,
			Status:   node.Status,
			Position: node.Position,
			Weight:   node.Weight,
			Level:    node.Level,
			Capacity: node.Capacity,
			Parent:   node.Parent,
			Children: append([]NodeID(nil), node.Children...),
		})
	}

	return snapshot
}

// Restore - rebuilds a tree from a snapshot, checking the structural invariants. The cursor is at the root.
func Restore(snapshot *Snapshot, opts ...Option) (*Tree, error) {
	if snapshot == nil || len(snapshot.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidSnapshot)
	}

	that := &Tree{
		nodes:         make([]*Node, 0, len(snapshot.Nodes)),
		childCapacity: DecrementCapacity,
	}

	for _, opt := range opts {
		opt(that)
	}

	for i, raw := range snapshot.Nodes {
		if err := validateNode(snapshot, NodeID(i)); err != nil {
			return nil, err
		}

		that.nodes = append(that.nodes, &Node{
			ID:       NodeID(i),
			UID:      raw.UID,
			Status:   raw.Status,
			Position: raw.Position,
			Weight:   raw.Weight,
			Level:    raw.Level,
			Capacity: raw.Capacity,
			Parent:   raw.Parent,
			Children: append(make([]NodeID, 0, raw.Capacity), raw.Children...),
		})
	}

	listed := make([]bool, len(that.nodes))
	for _, node := range that.nodes {
		for _, child := range node.Children {
			if listed[child] {
				return nil, fmt.Errorf("%w: node %d is listed twice", ErrInvalidSnapshot, child)
			}
			listed[child] = true
		}
	}

	for _, node := range that.nodes[1:] {
		if !listed[node.ID] {
			return nil, fmt.Errorf("%w: node %d is not listed by its parent", ErrInvalidSnapshot, node.ID)
		}
	}

	return that, nil
}

func validateNode(snapshot *Snapshot, id NodeID) error {
	count := NodeID(len(snapshot.Nodes))
	node := snapshot.Nodes[id]

	switch {
	case node.Capacity < 0 || node.Capacity > MaxCapacity:
		return fmt.Errorf("%w: node %d: %w", ErrInvalidSnapshot, id, ErrInvalidCapacity)
	case len(node.Children) > node.Capacity:
		return fmt.Errorf("%w: node %d: %w", ErrInvalidSnapshot, id, ErrCapacityExceeded)
	case !node.Status.IsValid():
		return fmt.Errorf("%w: node %d has status %q", ErrInvalidSnapshot, id, node.Status)
	case id == 0 && (node.Parent != NoNode || node.Level != 0):
		return fmt.Errorf("%w: root must have no parent and level 0", ErrInvalidSnapshot)
	case id != 0 && (node.Parent < 0 || node.Parent >= id):
		return fmt.Errorf("%w: node %d has parent %d", ErrInvalidSnapshot, id, node.Parent)
	}

	if id != 0 && node.Level != snapshot.Nodes[node.Parent].Level+1 {
		return fmt.Errorf("%w: node %d has level %d", ErrInvalidSnapshot, id, node.Level)
	}

	for _, child := range node.Children {
		if child <= id || child >= count || snapshot.Nodes[child].Parent != id {
			return fmt.Errorf("%w: node %d has foreign child %d", ErrInvalidSnapshot, id, child)
		}
	}

	return nil
}
