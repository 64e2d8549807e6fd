package service

import (
	"context"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/repository/specification"
	"ai-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{
		uowFactory: uowFactory,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if search != "" {
		specs = append(specs, specification.TitleContains{Term: search})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	return responses, nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership is established before deleting so another user's note id
	// reads as missing rather than leaking its existence.
	note, err := s.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return err
	}

	return uow.NoteRepository().Delete(ctx, note.Id)
}

func (s *noteService) findOwnedNote(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Note not found")
	}
	return note, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		UserId:    note.UserId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
