package relation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// EntityKind names the referenced entity class in a NotFoundError.
type EntityKind string

const (
	KindUser    EntityKind = "user"
	KindProject EntityKind = "project"
	KindTask    EntityKind = "task"
)

// NotFoundError reports a reference to a missing entity.
type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ErrInvalidRelation means the task does not belong to the stated project.
var ErrInvalidRelation = errors.New("task does not belong to project")

//go:generate mockgen -source=validator.go -destination=registry_mock.go -package=relation
type Registry interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
	// TaskProject returns the owning project of a task, or a
	// NotFoundError if the task does not exist.
	TaskProject(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// Validator checks that a (user, project?, task?) reference triple
// points at existing entities and that the task, when given together
// with a project, belongs to it.
type Validator struct {
	registry Registry
}

func NewValidator(registry Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate runs the independent existence lookups concurrently and
// returns the first failure. The containment check runs after the task
// lookup since it needs the task's owning project.
func (v *Validator) Validate(ctx context.Context, userID uuid.UUID, projectID, taskID *uuid.UUID) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exists, err := v.registry.UserExists(ctx, userID)
		if err != nil {
			return fmt.Errorf("looking up user: %w", err)
		}

		if !exists {
			return &NotFoundError{Kind: KindUser, ID: userID}
		}

		return nil
	})

	if projectID != nil {
		g.Go(func() error {
			exists, err := v.registry.ProjectExists(ctx, *projectID)
			if err != nil {
				return fmt.Errorf("looking up project: %w", err)
			}

			if !exists {
				return &NotFoundError{Kind: KindProject, ID: *projectID}
			}

			return nil
		})
	}

	if taskID != nil {
		g.Go(func() error {
			owner, err := v.registry.TaskProject(ctx, *taskID)
			if err != nil {
				var nf *NotFoundError
				if errors.As(err, &nf) {
					return err
				}

				return fmt.Errorf("looking up task: %w", err)
			}

			if projectID != nil && owner != *projectID {
				return ErrInvalidRelation
			}

			return nil
		})
	}

	return g.Wait()
}
