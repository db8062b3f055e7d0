package service

import (
	"context"
	"fmt"

	"github.com/mrqz-remodeling/console-api/internal/domain"
	"github.com/mrqz-remodeling/console-api/internal/mapper"
	"github.com/mrqz-remodeling/console-api/internal/report"
	"github.com/mrqz-remodeling/console-api/internal/repository"
	"go.uber.org/zap"
)

// RecentDraftLimit is how many drafts the dashboard lists
const RecentDraftLimit = 5

// DashboardService aggregates statistics over every project
type DashboardService struct {
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewDashboardService(projectRepo *repository.ProjectRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Get builds the report over all projects plus the most recent drafts
func (s *DashboardService) Get(ctx context.Context) (*domain.DashboardDTO, error) {
	projects, err := s.projectRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	drafts, err := s.projectRepo.ListDrafts(ctx, RecentDraftLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	summary := report.Build(projects)
	s.logger.Debug("dashboard built",
		zap.Int("projects", summary.TotalProjects),
		zap.Int("drafts", len(drafts)))

	dto := mapper.ToDashboardDTO(summary, drafts)
	return &dto, nil
}
