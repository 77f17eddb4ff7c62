package stats

import (
	"context"

	"github.com/keyxmakerx/examboard/internal/apperror"
	"github.com/keyxmakerx/examboard/internal/plugins/answersheets"
)

// StatsService assembles the dashboard summary.
type StatsService interface {
	Summary(ctx context.Context) (*Summary, error)
}

type statsService struct {
	repo StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	counts := []struct {
		table string
		dst   *int
	}{
		{"schools", &sum.Schools},
		{"subjects", &sum.Subjects},
		{"examiners", &sum.Examiners},
		{"students", &sum.Students},
	}
	for _, c := range counts {
		n, err := s.repo.Count(ctx, c.table)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		*c.dst = n
	}

	byStatus, err := s.repo.AnswerSheetsByStatus(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	// Every status is reported, including those with no sheets yet.
	sum.AnswerSheets = map[string]int{
		string(answersheets.StatusPending):   byStatus[string(answersheets.StatusPending)],
		string(answersheets.StatusEvaluated): byStatus[string(answersheets.StatusEvaluated)],
	}

	sum.Invigilation, err = s.repo.AssignmentsByDate(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if sum.Invigilation == nil {
		sum.Invigilation = []DateCount{}
	}
	return &sum, nil
}
