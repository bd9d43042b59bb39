package forum

import (
	"context"
	"testing"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupForumTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	posts := `
CREATE TABLE IF NOT EXISTS posts (
  id TEXT PRIMARY KEY,
  author_id TEXT NOT NULL,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'GENERAL',
  rating INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	comments := `
CREATE TABLE IF NOT EXISTS comments (
  id TEXT PRIMARY KEY,
  post_id TEXT NOT NULL,
  author_id TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	reactions := `
CREATE TABLE IF NOT EXISTS post_reactions (
  id TEXT PRIMARY KEY,
  post_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT post_reactions_post_user_key UNIQUE (post_id, user_id)
);`
	require.NoError(t, db.Exec("DROP TABLE IF EXISTS post_reactions").Error)
	require.NoError(t, db.Exec("DROP TABLE IF EXISTS comments").Error)
	require.NoError(t, db.Exec("DROP TABLE IF EXISTS posts").Error)
	require.NoError(t, db.Exec(posts).Error)
	require.NoError(t, db.Exec(comments).Error)
	require.NoError(t, db.Exec(reactions).Error)
	return db
}

func seedPostAt(t *testing.T, db *gorm.DB, title string, category enums.ForumCategory, at time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:        uuid.New(),
		AuthorID:  uuid.New(),
		Title:     title,
		Content:   "content",
		Category:  category,
		Rating:    3,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestRepoListPostsPaginatesNewestFirst(t *testing.T) {
	db := setupForumTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"first", "second", "third", "fourth", "fifth"}
	for i, title := range titles {
		seedPostAt(t, db, title, enums.ForumCategoryGeneral, base.Add(time.Duration(i)*time.Hour))
	}

	page1, cursor1, err := repo.ListPosts(ctx, "", "", 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "fifth", page1[0].Title)
	assert.Equal(t, "fourth", page1[1].Title)
	require.NotEmpty(t, cursor1)

	page2, cursor2, err := repo.ListPosts(ctx, "", cursor1, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "third", page2[0].Title)
	assert.Equal(t, "second", page2[1].Title)
	require.NotEmpty(t, cursor2)

	page3, cursor3, err := repo.ListPosts(ctx, "", cursor2, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "first", page3[0].Title)
	assert.Empty(t, cursor3)
}

func TestRepoListPostsFiltersCategory(t *testing.T) {
	db := setupForumTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPostAt(t, db, "general chatter", enums.ForumCategoryGeneral, base)
	seedPostAt(t, db, "brake question", enums.ForumCategoryQuestion, base.Add(time.Hour))

	page, _, err := repo.ListPosts(ctx, enums.ForumCategoryQuestion, "", 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "brake question", page[0].Title)
}

func TestRepoDeletePostRemovesCommentsAndReactions(t *testing.T) {
	db := setupForumTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	post := seedPostAt(t, db, "short lived", enums.ForumCategoryGeneral, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(&models.Comment{
		ID:       uuid.New(),
		PostID:   post.ID,
		AuthorID: uuid.New(),
		Content:  "goodbye",
	}).Error)
	require.NoError(t, db.Create(&models.PostReaction{
		ID:     uuid.New(),
		PostID: post.ID,
		UserID: uuid.New(),
		Type:   enums.ReactionLike,
	}).Error)

	require.NoError(t, repo.DeletePost(ctx, post.ID))

	var commentCount, reactionCount int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&reactionCount).Error)
	assert.Zero(t, commentCount)
	assert.Zero(t, reactionCount)
}
