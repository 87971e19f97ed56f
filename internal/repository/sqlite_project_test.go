package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Website", testutil.WithOwner("kim"), testutil.WithProjectDates("2024-02-01", "2024-04-30"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Website", fetched.Name)
	assert.Equal(t, "kim", fetched.Owner)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.Equal(t, "2024-02-01", fetched.StartDate.String())
	assert.Equal(t, "2024-04-30", fetched.EndDate.String())
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProjectRepo_OptionalDatesStayZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Loose")
	proj.StartDate = calendar.Date{}
	proj.EndDate = calendar.Date{}
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, fetched.StartDate.IsZero())
	assert.True(t, fetched.EndDate.IsZero())
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestProject(name)))
	}

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "Zeta", projects[0].Name)
	assert.Equal(t, "Alpha", projects[1].Name)
	assert.Equal(t, "Mid", projects[2].Name)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Draft")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Final"
	proj.Status = domain.ProjectOnHold
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Name)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)

	missing := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Temp")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrNotFound)
}
