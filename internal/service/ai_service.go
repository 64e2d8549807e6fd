package service

import (
	"context"
	"strings"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/repository/specification"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	summaryPrompt = "You are a helpful assistant that creates concise summaries. Summarize the given text in 2-3 sentences."
	improvePrompt = "You are a helpful writing assistant. Improve the given text for grammar, clarity, and readability while maintaining the original meaning and style. Return only the improved text without any explanations."
	tagsPrompt    = "You are a helpful assistant. Analyze the given text and generate 3-5 relevant tags (single words or short phrases). Return only a comma-separated list of tags, nothing else."
)

type IAIService interface {
	GenerateSummary(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.SummaryResponse, error)
	ImproveNote(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.ImproveResponse, error)
	GenerateTags(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.TagsResponse, error)
}

type aiService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.Provider
}

// NewAIService accepts a nil provider; the endpoints then fail with a
// configuration error instead of the whole server refusing to start.
func NewAIService(uowFactory unitofwork.RepositoryFactory, provider llm.Provider) IAIService {
	return &aiService{
		uowFactory: uowFactory,
		provider:   provider,
	}
}

func (s *aiService) GenerateSummary(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.SummaryResponse, error) {
	summary, err := s.complete(ctx, userId, noteId, summaryPrompt, "Failed to generate summary")
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{Summary: summary}, nil
}

func (s *aiService) ImproveNote(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.ImproveResponse, error) {
	improved, err := s.complete(ctx, userId, noteId, improvePrompt, "Failed to improve note")
	if err != nil {
		return nil, err
	}
	return &dto.ImproveResponse{ImprovedContent: improved}, nil
}

func (s *aiService) GenerateTags(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.TagsResponse, error) {
	raw, err := s.complete(ctx, userId, noteId, tagsPrompt, "Failed to generate tags")
	if err != nil {
		return nil, err
	}

	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &dto.TagsResponse{Tags: tags}, nil
}

// complete loads the caller's note and runs one chat turn against it. The
// note lookup comes first so a missing or foreign note never reaches the
// upstream provider.
func (s *aiService) complete(ctx context.Context, userId, noteId uuid.UUID, systemPrompt, failureMsg string) (string, error) {
	note, err := s.findOwnedNote(ctx, userId, noteId)
	if err != nil {
		return "", err
	}

	if s.provider == nil {
		return "", apperror.Upstream("AI service is not configured", nil)
	}

	out, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: note.Content},
		},
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		return "", apperror.Upstream(failureMsg, err)
	}

	return out, nil
}

func (s *aiService) findOwnedNote(ctx context.Context, userId, noteId uuid.UUID) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

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
