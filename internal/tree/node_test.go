package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	t.Run("Creates an empty unknown node for a valid capacity", func(t *testing.T) {
		for _, capacity := range []int{0, 1, 9} {
			// When: a node is created
			node, err := NewNode(capacity)

			// Then: it has no children, unknown status and level 0
			require.NoError(t, err)
			assert.Empty(t, node.Children)
			assert.Equal(t, StatusUnknown, node.Status)
			assert.Equal(t, 0, node.Level)
			assert.Equal(t, 0, node.Position)
			assert.Equal(t, 0, node.Weight)
			assert.Equal(t, capacity, node.Capacity)
			assert.Equal(t, NoNode, node.Parent)
		}
	})

	t.Run("Fails with ErrInvalidCapacity for a negative capacity", func(t *testing.T) {
		// When: a node is created with capacity -1
		node, err := NewNode(-1)

		// Then: ErrInvalidCapacity is returned
		require.ErrorIs(t, err, ErrInvalidCapacity)
		assert.Nil(t, node)
	})

	t.Run("Fails with ErrInvalidCapacity above MaxCapacity", func(t *testing.T) {
		node, err := NewNode(MaxCapacity + 1)

		require.ErrorIs(t, err, ErrInvalidCapacity)
		assert.Nil(t, node)
	})

	t.Run("Assigns unique identifiers", func(t *testing.T) {
		// Given: two nodes with the same attributes
		a, err := NewNode(1)
		require.NoError(t, err)
		b, err := NewNode(1)
		require.NoError(t, err)

		// Then: they are different nodes
		assert.False(t, a.Equal(b))
		assert.True(t, a.Equal(a))
	})
}

func TestNode_Child(t *testing.T) {
	tree, err := New(2)
	require.NoError(t, err)
	require.NoError(t, tree.AddNode(5))

	root := tree.Root()

	t.Run("Returns the child at a valid index", func(t *testing.T) {
		// When: the first child is requested
		id, err := root.Child(0)

		// Then: it is the node added at position 5
		require.NoError(t, err)
		assert.Equal(t, 5, tree.Node(id).Position)
	})

	t.Run("Fails with ErrChildNotFound out of range", func(t *testing.T) {
		for _, index := range []int{-1, 1, 2} {
			// When: a missing child is requested
			id, err := root.Child(index)

			// Then: ErrChildNotFound is returned
			require.ErrorIs(t, err, ErrChildNotFound)
			assert.Equal(t, NoNode, id)
		}
	})
}

func TestTree_AddChild(t *testing.T) {
	t.Run("Sets parent and level and keeps insertion order", func(t *testing.T) {
		// Given: a tree with a root of capacity 2
		tree, err := New(2)
		require.NoError(t, err)

		first, err := NewNode(1)
		require.NoError(t, err)
		second, err := NewNode(1)
		require.NoError(t, err)

		// When: two children are attached
		firstID, err := tree.AddChild(tree.Root().ID, first)
		require.NoError(t, err)
		secondID, err := tree.AddChild(tree.Root().ID, second)
		require.NoError(t, err)

		// Then: both point back to the root one level down, in order
		assert.Equal(t, []NodeID{firstID, secondID}, tree.Root().Children)
		assert.Equal(t, tree.Root().ID, first.Parent)
		assert.Equal(t, 1, first.Level)
		assert.Equal(t, 1, second.Level)
	})

	t.Run("Fails with ErrCapacityExceeded and leaves children unchanged", func(t *testing.T) {
		// Given: a root of capacity 1 that already has a child
		tree, err := New(1)
		require.NoError(t, err)
		require.NoError(t, tree.AddNode(0))

		extra, err := NewNode(0)
		require.NoError(t, err)

		// When: another child is attached
		_, err = tree.AddChild(tree.Root().ID, extra)

		// Then: ErrCapacityExceeded is returned and nothing changes
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Len(t, tree.Root().Children, 1)
		assert.Equal(t, 2, tree.Size())
		assert.Equal(t, NoNode, extra.Parent)
	})

	t.Run("Rejects a node attached twice", func(t *testing.T) {
		// Given: a node already attached to the root
		tree, err := New(3)
		require.NoError(t, err)
		node, err := NewNode(2)
		require.NoError(t, err)
		_, err = tree.AddChild(tree.Root().ID, node)
		require.NoError(t, err)

		// When: it is attached again
		_, err = tree.AddChild(tree.Root().ID, node)

		// Then: ErrNodeAttached is returned
		require.ErrorIs(t, err, ErrNodeAttached)
		assert.Len(t, tree.Root().Children, 1)
	})
}
