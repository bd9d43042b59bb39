package reactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reactionRepository interface {
	Find(ctx context.Context, postID, userID uuid.UUID) (*models.PostReaction, error)
	Create(ctx context.Context, reaction *models.PostReaction) error
	UpdateType(ctx context.Context, id uuid.UUID, reactionType enums.ReactionType) error
	Delete(ctx context.Context, postID, userID uuid.UUID) error
	CountByType(ctx context.Context, postID uuid.UUID) (map[enums.ReactionType]int64, error)
	UserReaction(ctx context.Context, postID, userID uuid.UUID) (*enums.ReactionType, error)
}

type postChecker interface {
	PostExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes post reaction operations. Reacting twice replaces the
// earlier reaction; removing an absent one is a no-op.
type Service interface {
	React(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*Summary, error)
	Remove(ctx context.Context, userID, postID uuid.UUID) (*Summary, error)
	Summarize(ctx context.Context, userID, postID uuid.UUID) (*Summary, error)
}

// ServiceParams bundles the dependencies for the reactions service.
type ServiceParams struct {
	Repo  reactionRepository
	Posts postChecker
}

type service struct {
	repo  reactionRepository
	posts postChecker
}

// NewService builds a reactions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reactions repository required")
	}
	if params.Posts == nil {
		return nil, fmt.Errorf("post checker required")
	}
	return &service{repo: params.Repo, posts: params.Posts}, nil
}

func (s *service) React(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*Summary, error) {
	parsed, err := enums.ParseReactionType(reactionType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown reaction type")
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, postID, userID)
	switch {
	case err == nil:
		// Re-reacting with the same type still refreshes updated_at.
		if err := s.repo.UpdateType(ctx, existing.ID, parsed); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reaction")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := &models.PostReaction{
			ID:     uuid.New(),
			PostID: postID,
			UserID: userID,
			Type:   parsed,
		}
		if err := s.repo.Create(ctx, reaction); err != nil {
			// Concurrent reaction from the same user; replace it instead.
			if db.IsUniqueViolation(err, "post_reactions_post_user_key") {
				raced, findErr := s.repo.Find(ctx, postID, userID)
				if findErr != nil {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "reload reaction")
				}
				if updateErr := s.repo.UpdateType(ctx, raced.ID, parsed); updateErr != nil {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, updateErr, "update reaction")
				}
			} else {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reaction")
			}
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reaction")
	}

	return s.buildSummary(ctx, userID, postID)
}

func (s *service) Remove(ctx context.Context, userID, postID uuid.UUID) (*Summary, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, postID, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove reaction")
	}
	return s.buildSummary(ctx, userID, postID)
}

func (s *service) Summarize(ctx context.Context, userID, postID uuid.UUID) (*Summary, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, userID, postID)
}

func (s *service) requirePost(ctx context.Context, postID uuid.UUID) error {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check post")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return nil
}

func (s *service) buildSummary(ctx context.Context, userID, postID uuid.UUID) (*Summary, error) {
	counts, err := s.repo.CountByType(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reactions")
	}
	userReaction, err := s.repo.UserReaction(ctx, postID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user reaction")
	}

	var total int64
	for _, count := range counts {
		total += count
	}
	return &Summary{
		PostID:       postID,
		Counts:       counts,
		Total:        total,
		UserReaction: userReaction,
	}, nil
}
