package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/repository"
	"github.com/akinalp/sitekit/testutil"
)

func boolPtr(b bool) *bool { return &b }

func newTestBlogService(t *testing.T) BlogService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewBlogService(repository.NewSQLiteBlogRepo(db.Conn), nil)
}

func TestBlogService_CreatePublishesByDefault(t *testing.T) {
	svc := newTestBlogService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, &models.CreateBlogPostRequest{Title: "Tips", Author: "Ali", Content: "Bleed radiators."})
	require.NoError(t, err)
	assert.True(t, post.Published)
	assert.Equal(t, models.ImageSizeMedium, post.ImageSize)

	draft, err := svc.Create(ctx, &models.CreateBlogPostRequest{Title: "Soon", Author: "Ali", Content: "WIP", Published: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, draft.Published)

	_, err = svc.Get(ctx, draft.ID, false)
	assert.True(t, errors.Is(err, pkg.ErrNotFound))

	_, err = svc.Create(ctx, &models.CreateBlogPostRequest{Title: "", Author: "Ali", Content: "x"})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestBlogService_ListPaging(t *testing.T) {
	svc := newTestBlogService(t)
	ctx := context.Background()

	for i := range DefaultBlogPageSize + 2 {
		_, err := svc.Create(ctx, &models.CreateBlogPostRequest{
			Title: fmt.Sprintf("Post %d", i), Author: "Ali", Content: "body",
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, models.BlogQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Posts, DefaultBlogPageSize)
	assert.Equal(t, DefaultBlogPageSize+2, page.Total)

	_, err = svc.List(ctx, models.BlogQuery{Limit: MaxBlogPageSize + 1})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	_, err = svc.List(ctx, models.BlogQuery{Offset: -1})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestBlogService_UpdatePublishesDraft(t *testing.T) {
	svc := newTestBlogService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, &models.CreateBlogPostRequest{Title: "Soon", Author: "Ali", Content: "WIP", Published: boolPtr(false)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, draft.ID, &models.UpdateBlogPostRequest{Content: strPtr("Done."), Published: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Done.", updated.Content)
	assert.Equal(t, "Soon", updated.Title)

	got, err := svc.Get(ctx, draft.ID, false)
	require.NoError(t, err)
	assert.True(t, got.Published)

	_, err = svc.Update(ctx, "missing", &models.UpdateBlogPostRequest{Title: strPtr("x")})
	assert.True(t, errors.Is(err, pkg.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, draft.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, draft.ID), pkg.ErrNotFound))
}

func TestAnnouncementService_CurrentOnlyWhenActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAnnouncementService(repository.NewSQLiteAnnouncementRepo(db.Conn), nil)
	ctx := context.Background()

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = svc.Update(ctx, &models.UpdateAnnouncementRequest{Text: "Closed Friday", Type: models.AnnouncementWarning, Active: true})
	require.NoError(t, err)

	current, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Closed Friday", current.Text)

	_, err = svc.Update(ctx, &models.UpdateAnnouncementRequest{Text: "Closed Friday", Active: false})
	require.NoError(t, err)
	current, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Pasif duyuru admin tarafında görünür
	a, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Closed Friday", a.Text)

	_, err = svc.Update(ctx, &models.UpdateAnnouncementRequest{Text: "x", Type: "loud"})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}
