package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/db/models"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// OutcomeCreated marks a first vote for the period.
	OutcomeCreated = "created"
	// OutcomeUpdated marks an overwrite of the period's earlier vote.
	OutcomeUpdated = "updated"

	defaultTopLimit = 10
	maxTopLimit     = 50
)

type voteRepository interface {
	FindForPeriod(ctx context.Context, userID, centerID uuid.UUID, year, month int) (*models.ServiceVote, error)
	Create(ctx context.Context, vote *models.ServiceVote) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) error
	MonthlyTop(ctx context.Context, year, month, limit int) ([]CenterRanking, error)
}

type centerChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes monthly voting and the center leaderboard.
type Service interface {
	Vote(ctx context.Context, userID, centerID uuid.UUID, rating int) (*VoteResult, error)
	MonthlyTop(ctx context.Context, year, month, limit int) ([]CenterRanking, error)
}

// ServiceParams bundles the dependencies for the reputation service.
type ServiceParams struct {
	VoteRepo voteRepository
	Centers  centerChecker
	Now      func() time.Time
}

type service struct {
	votes   voteRepository
	centers centerChecker
	now     func() time.Time
}

// NewService builds a reputation service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.VoteRepo == nil {
		return nil, fmt.Errorf("vote repository required")
	}
	if params.Centers == nil {
		return nil, fmt.Errorf("center checker required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		votes:   params.VoteRepo,
		centers: params.Centers,
		now:     now,
	}, nil
}

func (s *service) Vote(ctx context.Context, userID, centerID uuid.UUID, rating int) (*VoteResult, error) {
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	exists, err := s.centers.Exists(ctx, centerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check center")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service center not found")
	}

	now := s.now().UTC()
	year, month := now.Year(), int(now.Month())

	existing, err := s.votes.FindForPeriod(ctx, userID, centerID, year, month)
	switch {
	case err == nil:
		return s.overwrite(ctx, existing, rating)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vote")
	}

	vote := &models.ServiceVote{
		ID:        uuid.New(),
		UserID:    userID,
		CenterID:  centerID,
		VoteYear:  year,
		VoteMonth: month,
		Rating:    rating,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		// A concurrent vote for the same period wins the insert; treat
		// ours as the overwrite the caller intended.
		if db.IsUniqueViolation(err, "service_votes_user_center_period_key") {
			raced, findErr := s.votes.FindForPeriod(ctx, userID, centerID, year, month)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "reload vote")
			}
			return s.overwrite(ctx, raced, rating)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vote")
	}

	return &VoteResult{Vote: voteFromModel(vote), Outcome: OutcomeCreated}, nil
}

func (s *service) overwrite(ctx context.Context, vote *models.ServiceVote, rating int) (*VoteResult, error) {
	if err := s.votes.UpdateRating(ctx, vote.ID, rating); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vote")
	}
	vote.Rating = rating
	return &VoteResult{Vote: voteFromModel(vote), Outcome: OutcomeUpdated}, nil
}

func (s *service) MonthlyTop(ctx context.Context, year, month, limit int) ([]CenterRanking, error) {
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	rankings, err := s.votes.MonthlyTop(ctx, year, month, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate leaderboard")
	}
	return rankings, nil
}
