package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/upstream-sync/internal/repository"
)

// PublishVariableUseCase upserts the matched tag into a repository variable.
type PublishVariableUseCase struct {
	VariableRepo repository.VariableRepository
	Name         string
}

// Execute reads the variable first; a missing variable is created, an
// existing one updated. It reports whether the variable was created.
func (uc *PublishVariableUseCase) Execute(ctx context.Context, value string) (bool, error) {
	_, err := uc.VariableRepo.GetVariable(ctx, uc.Name)
	if errors.Is(err, repository.ErrVariableNotFound) {
		if err := uc.VariableRepo.CreateVariable(ctx, uc.Name, value); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read variable %s: %w", uc.Name, err)
	}
	if err := uc.VariableRepo.UpdateVariable(ctx, uc.Name, value); err != nil {
		return false, err
	}
	return false, nil
}
