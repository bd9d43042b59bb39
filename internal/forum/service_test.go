package forum

import (
	"context"
	"testing"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestCreatePostDefaultsCategory(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)

	dto, err := svc.CreatePost(context.Background(), uuid.New(), CreatePostInput{
		Title:   "First service experience",
		Content: "Went well overall.",
		Rating:  4,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if dto.Category != enums.ForumCategoryGeneral {
		t.Fatalf("expected GENERAL default, got %s", dto.Category)
	}
}

func TestCreatePostClampsRating(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)

	dto, err := svc.CreatePost(context.Background(), uuid.New(), CreatePostInput{
		Title:   "Too enthusiastic",
		Content: "Rating beyond the scale.",
		Rating:  9,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if dto.Rating != 5 {
		t.Fatalf("expected rating clamp to 5, got %d", dto.Rating)
	}

	dto, err = svc.CreatePost(context.Background(), uuid.New(), CreatePostInput{
		Title:   "Zero rating",
		Content: "Below the scale.",
		Rating:  0,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if dto.Rating != 1 {
		t.Fatalf("expected rating clamp to 1, got %d", dto.Rating)
	}
}

func TestCreatePostUnknownCategory(t *testing.T) {
	svc := mustService(t, newStubForumRepo())

	_, err := svc.CreatePost(context.Background(), uuid.New(), CreatePostInput{
		Title:    "Bad category",
		Content:  "content",
		Category: "GOSSIP",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListPostsRejectsBadCursor(t *testing.T) {
	svc := mustService(t, newStubForumRepo())

	_, err := svc.ListPosts(context.Background(), "", "not-base64!", 10)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)
	post := seedPost(repo, uuid.New())

	title := "hijacked"
	_, err := svc.UpdatePost(context.Background(), uuid.New(), enums.RoleUser, post.ID, UpdatePostInput{Title: &title})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdatePostAdminOverride(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)
	post := seedPost(repo, uuid.New())

	title := "moderated title"
	dto, err := svc.UpdatePost(context.Background(), uuid.New(), enums.RoleAdmin, post.ID, UpdatePostInput{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if dto.Title != "moderated title" {
		t.Fatalf("expected title update, got %q", dto.Title)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	svc := mustService(t, newStubForumRepo())

	err := svc.DeletePost(context.Background(), uuid.New(), enums.RoleAdmin, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddCommentRequiresPost(t *testing.T) {
	svc := mustService(t, newStubForumRepo())

	_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), "nice write-up")
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddCommentRejectsBlank(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)
	post := seedPost(repo, uuid.New())

	_, err := svc.AddComment(context.Background(), uuid.New(), post.ID, "   ")
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	repo := newStubForumRepo()
	svc := mustService(t, repo)
	post := seedPost(repo, uuid.New())
	authorID := uuid.New()
	comment, err := svc.AddComment(context.Background(), authorID, post.ID, "original")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}

	_, err = svc.UpdateComment(context.Background(), uuid.New(), enums.RoleUser, comment.ID, "edited")
	assertCode(t, err, pkgerrors.CodeForbidden)

	updated, err := svc.UpdateComment(context.Background(), authorID, enums.RoleUser, comment.ID, "edited")
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("expected edited content, got %q", updated.Content)
	}
}

func mustService(t *testing.T, repo forumRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func seedPost(repo *stubForumRepo, authorID uuid.UUID) *models.Post {
	post := &models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    "seed",
		Content:  "seed content",
		Category: enums.ForumCategoryGeneral,
		Rating:   3,
	}
	repo.posts[post.ID] = post
	return post
}

type stubForumRepo struct {
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment
}

func newStubForumRepo() *stubForumRepo {
	return &stubForumRepo{
		posts:    map[uuid.UUID]*models.Post{},
		comments: map[uuid.UUID]*models.Comment{},
	}
}

func (s *stubForumRepo) CreatePost(ctx context.Context, post *models.Post) error {
	s.posts[post.ID] = post
	return nil
}

func (s *stubForumRepo) FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *post
	return &clone, nil
}

func (s *stubForumRepo) ListPosts(ctx context.Context, category enums.ForumCategory, cursor string, limit int) ([]models.Post, string, error) {
	var out []models.Post
	for _, post := range s.posts {
		if category == "" || post.Category == category {
			out = append(out, *post)
		}
	}
	return out, "", nil
}

func (s *stubForumRepo) SavePost(ctx context.Context, post *models.Post) error {
	s.posts[post.ID] = post
	return nil
}

func (s *stubForumRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *stubForumRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *stubForumRepo) FindCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *comment
	return &clone, nil
}

func (s *stubForumRepo) ListComments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *stubForumRepo) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *stubForumRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.comments, id)
	return nil
}
