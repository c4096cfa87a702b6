package services

import (
	"context"
	"errors"
	"testing"
)

type stubMembershipCounter struct {
	counts map[string]int
	err    error
}

func (c *stubMembershipCounter) CountByMembershipType(_ context.Context) (map[string]int, error) {
	return c.counts, c.err
}

func TestStatsServiceMembershipDistribution(t *testing.T) {
	service := &StatsService{memberRepo: &stubMembershipCounter{
		counts: map[string]int{MembershipFull: 3, MembershipPartial: 2},
	}}

	stats, err := service.MembershipDistribution(context.Background())
	if err != nil {
		t.Fatalf("MembershipDistribution: %v", err)
	}
	if stats.Full != 3 || stats.Partial != 2 || stats.Total != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStatsServiceMembershipDistributionEmpty(t *testing.T) {
	service := &StatsService{memberRepo: &stubMembershipCounter{counts: map[string]int{}}}

	stats, err := service.MembershipDistribution(context.Background())
	if err != nil {
		t.Fatalf("MembershipDistribution: %v", err)
	}
	if stats.Full != 0 || stats.Partial != 0 || stats.Total != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestStatsServiceMembershipDistributionPropagatesError(t *testing.T) {
	storageErr := errors.New("storage down")
	service := &StatsService{memberRepo: &stubMembershipCounter{err: storageErr}}

	if _, err := service.MembershipDistribution(context.Background()); err != storageErr {
		t.Fatalf("expected storage error, got %v", err)
	}
}
