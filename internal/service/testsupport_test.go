package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/specification"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/llm"

	"github.com/google/uuid"
)

// The fakes below hold entities in memory and interpret the same
// specification values the GORM repositories translate to SQL, so service
// tests exercise real filter semantics without a database.

type fakeStore struct {
	users         []*entity.User
	notes         []*entity.Note
	userCreateErr error
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &fakeStore{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepository{store: u.store}
}

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.store.userCreateErr != nil {
		return r.store.userCreateErr
	}
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	for i, existing := range r.store.users {
		if existing.Id == user.Id {
			clone := *user
			r.store.users[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.IsDeleted {
			continue
		}
		if userMatches(user, specs) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func userMatches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		case specification.OrderBy:
			// ordering is irrelevant for single-row lookups
		default:
			return false
		}
	}
	return true
}

type fakeNoteRepository struct {
	store *fakeStore
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	clone := *note
	r.store.notes = append(r.store.notes, &clone)
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	for i, existing := range r.store.notes {
		if existing.Id == note.Id {
			clone := *note
			r.store.notes[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for _, note := range r.store.notes {
		if note.Id == id && !note.IsDeleted {
			now := time.Now()
			note.IsDeleted = true
			note.DeletedAt = &now
		}
	}
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil || len(notes) == 0 {
		return nil, err
	}
	return notes[0], nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var matched []*entity.Note
	for _, note := range r.store.notes {
		if note.IsDeleted {
			continue
		}
		if noteMatches(note, specs) {
			clone := *note
			matched = append(matched, &clone)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.SliceStable(matched, func(i, j int) bool {
				if order.Desc {
					return matched[i].CreatedAt.After(matched[j].CreatedAt)
				}
				return matched[i].CreatedAt.Before(matched[j].CreatedAt)
			})
		}
	}

	return matched, nil
}

func noteMatches(note *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if note.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if note.UserId != s.UserID {
				return false
			}
		case specification.TitleContains:
			if !strings.Contains(strings.ToLower(note.Title), strings.ToLower(s.Term)) {
				return false
			}
		case specification.OrderBy:
			// handled after filtering
		default:
			return false
		}
	}
	return true
}

// fakeProvider records the last chat call for assertions.
type fakeProvider struct {
	reply   string
	err     error
	called  bool
	history []llm.Message
	opts    llm.Options
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.called = true
	p.history = history
	for _, o := range options {
		o(&p.opts)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
