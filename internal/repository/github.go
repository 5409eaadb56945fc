package repository

import (
	"context"
	"errors"
)

// ErrVariableNotFound is returned when a repository variable does not exist.
var ErrVariableNotFound = errors.New("repository variable not found")

// VariableRepository defines the interface for repository-scoped variables.
type VariableRepository interface {
	GetVariable(ctx context.Context, name string) (string, error)
	CreateVariable(ctx context.Context, name, value string) error
	UpdateVariable(ctx context.Context, name, value string) error
}
