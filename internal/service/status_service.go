package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskmasterhq/taskmaster/internal/models"
	"github.com/taskmasterhq/taskmaster/internal/repository"
)

// StatusService records client liveness pings.
type StatusService struct {
	repo repository.StatusCheckRepository
}

func NewStatusService(repo repository.StatusCheckRepository) *StatusService {
	return &StatusService{repo: repo}
}

func (s *StatusService) Record(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, &ValidationError{Field: "client_name", Reason: "must not be empty"}
	}

	check := &models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("record status check: %w", err)
	}
	return check, nil
}

func (s *StatusService) List(ctx context.Context) ([]*models.StatusCheck, error) {
	checks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	return checks, nil
}
