package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bacembenhfayehd/manarja-sub001/internal/relation"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

func (s *Store) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id)
}

func (s *Store) TaskProject(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID

	err := s.db.QueryRowContext(ctx, `SELECT project_id FROM tasks WHERE id = $1`, id).Scan(&projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, &relation.NotFoundError{Kind: relation.KindTask, ID: id}
		}

		return uuid.Nil, fmt.Errorf("getting task project: %w", err)
	}

	return projectID, nil
}

func (s *Store) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking existence: %w", err)
	}

	return exists, nil
}
