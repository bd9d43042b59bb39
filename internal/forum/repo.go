package forum

import (
	"context"
	"errors"
	"strings"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/carhub-app/carhub-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes forum persistence for posts and comments.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a forum repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePost inserts a new post row.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindPostByID loads a post by its UUID.
func (r *Repository) FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// PostExists reports whether a post row backs the given id.
func (r *Repository) PostExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Select("id").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListPosts returns a page of posts newest first, optionally filtered by
// category. The second return value is the cursor for the next page, empty
// when this page is the last one.
func (r *Repository) ListPosts(ctx context.Context, category enums.ForumCategory, cursor string, limit int) ([]models.Post, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var posts []models.Post
	if err := query.Limit(pagination.LimitWithBuffer(limit)).Find(&posts).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(posts) > normalizedLimit {
		posts = posts[:normalizedLimit]
		last := posts[len(posts)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return posts, nextCursor, nil
}

// SavePost persists the full post row.
func (r *Repository) SavePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeletePost removes a post with its comments and reactions.
func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PostReaction{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CreateComment inserts a new comment row.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindCommentByID loads a comment by its UUID.
func (r *Repository) FindCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a post's comments oldest first.
func (r *Repository) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// SaveComment persists the full comment row.
func (r *Repository) SaveComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteComment removes a comment row.
func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
