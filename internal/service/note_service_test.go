package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(factory *fakeFactory, userId uuid.UUID, title string, createdAt time.Time) *entity.Note {
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		Tags:      []string{},
		UserId:    userId,
		CreatedAt: createdAt,
	}
	factory.store.notes = append(factory.store.notes, note)
	return note
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, "Note not found", appErr.Message)
}

func TestCreateNoteDefaultsTags(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:   "Meeting notes",
		Content: "Discussed roadmap",
	})
	require.NoError(t, err)

	assert.Equal(t, "Meeting notes", res.Title)
	assert.Equal(t, userId, res.UserId)
	assert.NotNil(t, res.Tags)
	assert.Empty(t, res.Tags)
	assert.Nil(t, res.UpdatedAt)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestListReturnsOwnNotesNewestFirst(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	userId := uuid.New()
	otherId := uuid.New()

	base := time.Now()
	seedNote(factory, userId, "oldest", base.Add(-2*time.Hour))
	seedNote(factory, userId, "newest", base)
	seedNote(factory, userId, "middle", base.Add(-time.Hour))
	seedNote(factory, otherId, "foreign", base)

	res, err := svc.List(context.Background(), userId, "")
	require.NoError(t, err)

	require.Len(t, res, 3)
	assert.Equal(t, "newest", res[0].Title)
	assert.Equal(t, "middle", res[1].Title)
	assert.Equal(t, "oldest", res[2].Title)
}

func TestListSearchMatchesTitleCaseInsensitively(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	userId := uuid.New()

	now := time.Now()
	seedNote(factory, userId, "Project plan", now)
	seedNote(factory, userId, "Shopping list", now.Add(-time.Minute))
	seedNote(factory, userId, "my PROJECTIONS", now.Add(-2*time.Minute))

	res, err := svc.List(context.Background(), userId, "proj")
	require.NoError(t, err)

	require.Len(t, res, 2)
	assert.Equal(t, "Project plan", res[0].Title)
	assert.Equal(t, "my PROJECTIONS", res[1].Title)
}

func TestShowCrossUserReadsAsMissing(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	owner := uuid.New()
	note := seedNote(factory, owner, "private", time.Now())

	_, err := svc.Show(context.Background(), uuid.New(), note.Id)
	assertNotFound(t, err)
}

func TestUpdateTagsOnlyLeavesBodyUntouched(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	userId := uuid.New()
	note := seedNote(factory, userId, "Groceries", time.Now())

	tags := []string{"shopping", "weekly"}
	res, err := svc.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:   note.Id,
		Tags: &tags,
	})
	require.NoError(t, err)

	assert.Equal(t, "Groceries", res.Title)
	assert.Equal(t, note.Content, res.Content)
	assert.Equal(t, tags, res.Tags)
	require.NotNil(t, res.UpdatedAt)
}

func TestUpdateMissingNote(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)

	title := "new title"
	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{
		Id:    uuid.New(),
		Title: &title,
	})
	assertNotFound(t, err)
}

func TestDeleteHidesNoteFromReads(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	userId := uuid.New()
	note := seedNote(factory, userId, "ephemeral", time.Now())

	require.NoError(t, svc.Delete(context.Background(), userId, note.Id))

	// Row survives as soft-deleted but no read path sees it.
	require.Len(t, factory.store.notes, 1)
	assert.True(t, factory.store.notes[0].IsDeleted)

	_, err := svc.Show(context.Background(), userId, note.Id)
	assertNotFound(t, err)

	list, err := svc.List(context.Background(), userId, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	// A second delete reads as missing too.
	err = svc.Delete(context.Background(), userId, note.Id)
	assertNotFound(t, err)
}

func TestDeleteCrossUserReadsAsMissing(t *testing.T) {
	factory := newFakeFactory()
	svc := NewNoteService(factory)
	owner := uuid.New()
	note := seedNote(factory, owner, "private", time.Now())

	err := svc.Delete(context.Background(), uuid.New(), note.Id)
	assertNotFound(t, err)
	assert.False(t, factory.store.notes[0].IsDeleted)
}
