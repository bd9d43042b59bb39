package forum

import (
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
)

// PostDTO is the transport shape for a forum post.
type PostDTO struct {
	ID        uuid.UUID           `json:"id"`
	AuthorID  uuid.UUID           `json:"author_id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Category  enums.ForumCategory `json:"category"`
	Rating    int                 `json:"rating"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// PostPage is one cursor-paginated slice of the post feed.
type PostPage struct {
	Posts      []PostDTO `json:"posts"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CommentDTO is the transport shape for a post comment.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func postFromModel(p *models.Post) *PostDTO {
	if p == nil {
		return nil
	}

	return &PostDTO{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func commentFromModel(c *models.Comment) *CommentDTO {
	if c == nil {
		return nil
	}

	return &CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
