package model

import (
	"context"

	"github.com/pders01/cinemaddict/internal/api"
)

// Service is the remote side of the models. api.Client and storage.Store
// both satisfy it.
type Service interface {
	Films(ctx context.Context) ([]api.Film, error)
	UpdateFilm(ctx context.Context, film api.Film) (api.Film, error)
	Comments(ctx context.Context, filmID string) ([]api.Comment, error)
	AddComment(ctx context.Context, filmID string, draft api.CommentDraft) (api.CommentPostResponse, error)
	DeleteComment(ctx context.Context, commentID string) error
}

var _ Service = (*api.Client)(nil)
