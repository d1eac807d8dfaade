package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/tree"
)

// KnowledgeRepository - stores learned game trees, one per board size.
type KnowledgeRepository interface {
	CreateOrUpdate(ctx context.Context, boardSize string, snapshot *tree.Snapshot) error
	GetByBoardSize(ctx context.Context, boardSize string) (*tree.Snapshot, error)
	DeleteByBoardSize(ctx context.Context, boardSize string) error
}

type dbKnowledge struct {
	client    *redis.Client
	keyPrefix string
}

func NewKnowledgeRepository(client *redis.Client, keyPrefix string) KnowledgeRepository {
	return &dbKnowledge{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (that *dbKnowledge) key(boardSize string) string {
	return that.keyPrefix + "tree:" + boardSize
}

func (that *dbKnowledge) CreateOrUpdate(ctx context.Context, boardSize string, snapshot *tree.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal tree: %w", err)
	}

	if err = that.client.Set(ctx, that.key(boardSize), snapshotJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set tree: %w", err)
	}

	return nil
}

func (that *dbKnowledge) GetByBoardSize(ctx context.Context, boardSize string) (*tree.Snapshot, error) {
	response, err := that.client.Get(ctx, that.key(boardSize)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrKnowledgeNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get tree by board size: %w", err)
	}

	var snapshot tree.Snapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}

	return &snapshot, nil
}

func (that *dbKnowledge) DeleteByBoardSize(ctx context.Context, boardSize string) error {
	deleted, err := that.client.Del(ctx, that.key(boardSize)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete tree by board size: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrKnowledgeNotFound
	}

	return nil
}
