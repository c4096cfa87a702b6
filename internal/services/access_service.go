package services

import (
	"context"
	"errors"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
)

var ErrMembershipRequired = errors.New("membership tier does not include this feature")

const (
	MembershipFull    = "full"
	MembershipPartial = "partial"

	FeatureVideoLibrary = "video_library"
)

// featureTiers maps a gated feature to the tier it requires. Features absent
// from the map carry no restriction.
var featureTiers = map[string]string{
	FeatureVideoLibrary: MembershipFull,
}

var upgradePrompts = map[string]string{
	FeatureVideoLibrary: "Upgrade to a full membership to access the video library",
}

type memberReader interface {
	GetByID(ctx context.Context, id int64) (*models.Member, error)
}

type AccessService struct {
	memberRepo memberReader
	timeout    time.Duration
}

func NewAccessService(memberRepo memberReader, timeout time.Duration) *AccessService {
	return &AccessService{memberRepo: memberRepo, timeout: timeout}
}

// RequireFeature resolves the member's tier and checks it against the
// feature's restriction. Pure read, no side effects.
func (s *AccessService) RequireFeature(ctx context.Context, memberID int64, feature string) error {
	requiredTier, restricted := featureTiers[feature]
	if !restricted {
		return nil
	}

	ctx, cancel := withStorageTimeout(ctx, s.timeout)
	defer cancel()

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.MembershipType != requiredTier {
		return ErrMembershipRequired
	}
	return nil
}

// UpgradePrompt returns the human-readable denial message for a gated
// feature.
func UpgradePrompt(feature string) string {
	if prompt, ok := upgradePrompts[feature]; ok {
		return prompt
	}
	return "Upgrade your membership to access this feature"
}
