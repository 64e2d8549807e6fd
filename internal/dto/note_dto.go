package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1"`
	Tags    []string `json:"tags" validate:"omitempty,dive,required"`
}

// UpdateNoteRequest carries a partial update: nil fields are left untouched.
type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string   `json:"content" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags" validate:"omitempty,dive,required"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	UserId    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
