package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSubject("Maths", testutil.WithCoefficient(4), testutil.WithGoal(14.5))
	s.Icon = "calculator"
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, fetched)
}

func TestSubjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubjectRepo_ListInCreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	b := testutil.NewTestSubject("Biology")
	a := testutil.NewTestSubject("Art")
	a.CreatedAt = b.CreatedAt
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Same created_at: name breaks the tie.
	assert.Equal(t, "Art", list[0].Name)
	assert.Equal(t, "Biology", list[1].Name)
}

func TestSubjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSubject("Maths")
	require.NoError(t, repo.Create(ctx, s))

	s.Name = "Mathematics"
	s.Goal = 16
	require.NoError(t, repo.Update(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", fetched.Name)
	assert.Equal(t, 16.0, fetched.Goal)

	ghost := testutil.NewTestSubject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
}

func TestSubjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSubject("Maths")
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), ErrNotFound)
}
