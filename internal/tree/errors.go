package tree

import "errors"

var (
	ErrInvalidCapacity   = errors.New("children collection size is < 0")
	ErrCapacityExceeded  = errors.New("the children collection is full")
	ErrChildNotFound     = errors.New("child node with given index does not exist")
	ErrChildNodeNotFound = errors.New("given child node is not found")
	ErrIllegalStatus     = errors.New("the node status has 'unknown' value, it should be changed before updating the tree status")
	ErrInvalidSnapshot   = errors.New("invalid tree snapshot")
)

var (
	ErrNodeNotFound = errors.New("node does not belong to the tree")
	ErrNodeAttached = errors.New("node is already attached to a tree")
)
