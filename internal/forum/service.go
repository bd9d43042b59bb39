package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type forumRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, category enums.ForumCategory, cursor string, limit int) ([]models.Post, string, error)
	SavePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	CreateComment(ctx context.Context, comment *models.Comment) error
	FindCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	SaveComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// Service exposes the community forum operations.
type Service interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error)
	GetPost(ctx context.Context, id uuid.UUID) (*PostDTO, error)
	ListPosts(ctx context.Context, category, cursor string, limit int) (*PostPage, error)
	UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, postID uuid.UUID, input UpdatePostInput) (*PostDTO, error)
	DeletePost(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, postID uuid.UUID) error
	AddComment(ctx context.Context, authorID, postID uuid.UUID, content string) (*CommentDTO, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]CommentDTO, error)
	UpdateComment(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, commentID uuid.UUID, content string) (*CommentDTO, error)
	DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, commentID uuid.UUID) error
}

// CreatePostInput carries validated controller input for a new post.
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Rating   int
}

// UpdatePostInput describes a partial post edit; nil fields are untouched.
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Category *string
	Rating   *int
}

type service struct {
	repo forumRepository
}

// NewService builds a forum service with the provided repository.
func NewService(repo forumRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("forum repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error) {
	category, err := resolveCategory(input.Category)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: category,
		Rating:   clampRating(input.Rating),
	}
	if post.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return postFromModel(post), nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*PostDTO, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return postFromModel(post), nil
}

func (s *service) ListPosts(ctx context.Context, category, cursor string, limit int) (*PostPage, error) {
	var filter enums.ForumCategory
	if category != "" {
		parsed, err := enums.ParseForumCategory(category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
		}
		filter = parsed
	}
	if _, err := pagination.ParseCursor(cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, nextCursor, err := s.repo.ListPosts(ctx, filter, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	out := make([]PostDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *postFromModel(&rows[i]))
	}
	return &PostPage{Posts: out, NextCursor: nextCursor}, nil
}

func (s *service) UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, postID uuid.UUID, input UpdatePostInput) (*PostDTO, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(post.AuthorID, actorID, actorRole); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if trimmed := strings.TrimSpace(*input.Title); trimmed != "" {
			post.Title = trimmed
		}
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Category != nil {
		category, err := resolveCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		post.Category = category
	}
	if input.Rating != nil {
		post.Rating = clampRating(*input.Rating)
	}

	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
	}
	return postFromModel(post), nil
}

func (s *service) DeletePost(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, postID uuid.UUID) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := requireAuthor(post.AuthorID, actorID, actorRole); err != nil {
		return err
	}

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete post")
	}
	return nil
}

func (s *service) AddComment(ctx context.Context, authorID, postID uuid.UUID, content string) (*CommentDTO, error) {
	if strings.TrimSpace(content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment content is required")
	}
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}
	return commentFromModel(comment), nil
}

func (s *service) ListComments(ctx context.Context, postID uuid.UUID) ([]CommentDTO, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	out := make([]CommentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *commentFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) UpdateComment(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, commentID uuid.UUID, content string) (*CommentDTO, error) {
	if strings.TrimSpace(content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment content is required")
	}

	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(comment.AuthorID, actorID, actorRole); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.repo.SaveComment(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update comment")
	}
	return commentFromModel(comment), nil
}

func (s *service) DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, commentID uuid.UUID) error {
	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := requireAuthor(comment.AuthorID, actorID, actorRole); err != nil {
		return err
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
	}
	return nil
}

func (s *service) loadPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	return post, nil
}

func (s *service) loadComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, err := s.repo.FindCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	return comment, nil
}

func requireAuthor(authorID, actorID uuid.UUID, actorRole enums.Role) error {
	if authorID != actorID && actorRole != enums.RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not the author")
	}
	return nil
}

func resolveCategory(raw string) (enums.ForumCategory, error) {
	if raw == "" {
		return enums.ForumCategoryGeneral, nil
	}
	category, err := enums.ParseForumCategory(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	return category, nil
}

func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
