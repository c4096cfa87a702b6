package services

import (
	"context"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
)

type membershipCounter interface {
	CountByMembershipType(ctx context.Context) (map[string]int, error)
}

type StatsService struct {
	memberRepo membershipCounter
	timeout    time.Duration
}

func NewStatsService(memberRepo membershipCounter, timeout time.Duration) *StatsService {
	return &StatsService{memberRepo: memberRepo, timeout: timeout}
}

// MembershipDistribution aggregates non-admin members by tier.
func (s *StatsService) MembershipDistribution(ctx context.Context) (*models.MembershipStats, error) {
	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	counts, err := s.memberRepo.CountByMembershipType(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.MembershipStats{
		Full:    counts[MembershipFull],
		Partial: counts[MembershipPartial],
	}
	stats.Total = stats.Full + stats.Partial
	return stats, nil
}
