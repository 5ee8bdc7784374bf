package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/testutil"
)

func TestFAQList_SearchAndPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSQLiteFAQRepo(db.Conn)
	ctx := context.Background()

	testutil.InsertFAQ(t, db, "Do you fix leaks?", "Yes, every kind.", 1)
	testutil.InsertFAQ(t, db, "What are your hours?", "8 to 4.", 2)
	testutil.InsertFAQ(t, db, "Is 100% of the work insured?", "Yes, leak repairs included.", 3)

	all, err := repo.List(ctx, models.FAQQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, models.CollectionFAQs, all.Collection)

	leaks, err := repo.List(ctx, models.FAQQuery{Search: "LEAK"})
	require.NoError(t, err)
	require.Len(t, leaks.Items, 2)
	assert.Equal(t, 1, leaks.Items[0].DisplayOrder)
	assert.Equal(t, 3, leaks.Items[1].DisplayOrder)

	pct, err := repo.List(ctx, models.FAQQuery{Search: "100%"})
	require.NoError(t, err)
	assert.Len(t, pct.Items, 1)

	page, err := repo.List(ctx, models.FAQQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "What are your hours?", page.Items[0].Question)

	tail, err := repo.List(ctx, models.FAQQuery{Offset: 2})
	require.NoError(t, err)
	assert.Len(t, tail.Items, 1)
}
