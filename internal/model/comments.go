package model

import (
	"context"
	"fmt"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/observable"
)

// CommentsModel holds the comments of the film whose popup is open. It is
// loaded lazily by Init. Mutations notify a FilmUpdate carrying the film as
// it stands after the change.
type CommentsModel struct {
	observable.Bus
	service  Service
	filmID   string
	comments []Comment
}

func NewCommentsModel(service Service) *CommentsModel {
	return &CommentsModel{service: service}
}

// FilmID returns the film the loaded comments belong to.
func (m *CommentsModel) FilmID() string {
	return m.filmID
}

// Comments returns a copy of the loaded comments.
func (m *CommentsModel) Comments() []Comment {
	return append([]Comment(nil), m.comments...)
}

// Init loads the comments of filmID, replacing whatever was loaded before.
// On failure the previously loaded film and comments are kept.
func (m *CommentsModel) Init(ctx context.Context, filmID string) error {
	remote, err := m.service.Comments(ctx, filmID)
	if err != nil {
		debuglog.Errorf("comments: load for film %s failed: %v", filmID, err)
		return fmt.Errorf("load comments of %q: %w: %w", filmID, ErrLoadFailure, err)
	}
	m.filmID = filmID
	m.comments = adaptComments(remote)
	return nil
}

// AddComment posts post.Draft. The service answers with the updated film
// and its full comment set, which replace the model's copy.
func (m *CommentsModel) AddComment(ctx context.Context, kind observable.UpdateKind, post CommentPost) error {
	if post.Film.ID == "" || post.Film.ID != m.filmID {
		return fmt.Errorf("add comment to %q: %w", post.Film.ID, ErrNotFound)
	}

	resp, err := m.service.AddComment(ctx, post.Film.ID, DraftToRemote(post.Draft))
	if err != nil {
		debuglog.Warnf("comments: add to %s rejected: %v", post.Film.ID, err)
		return fmt.Errorf("add comment to %q: %w: %w", post.Film.ID, ErrMutationRejected, err)
	}

	m.comments = adaptComments(resp.Comments)
	film := AdaptFilm(resp.Movie)
	m.Notify(kind, FilmUpdate{Film: film, Scroll: post.Scroll})
	return nil
}

// DeleteComment removes removal.CommentID and notifies the film without it.
func (m *CommentsModel) DeleteComment(ctx context.Context, kind observable.UpdateKind, removal CommentRemoval) error {
	i := m.indexOf(removal.CommentID)
	if i < 0 {
		return fmt.Errorf("delete comment %q: %w", removal.CommentID, ErrNotFound)
	}

	if err := m.service.DeleteComment(ctx, removal.CommentID); err != nil {
		debuglog.Warnf("comments: delete %s rejected: %v", removal.CommentID, err)
		return fmt.Errorf("delete comment %q: %w: %w", removal.CommentID, ErrMutationRejected, err)
	}

	if i = m.indexOf(removal.CommentID); i >= 0 {
		next := make([]Comment, 0, len(m.comments)-1)
		next = append(next, m.comments[:i]...)
		m.comments = append(next, m.comments[i+1:]...)
	}

	ids := make([]string, 0, len(removal.Film.Comments))
	for _, id := range removal.Film.Comments {
		if id != removal.CommentID {
			ids = append(ids, id)
		}
	}
	m.Notify(kind, FilmUpdate{Film: removal.Film.WithComments(ids), Scroll: removal.Scroll})
	return nil
}

func (m *CommentsModel) indexOf(id string) int {
	for i, c := range m.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func adaptComments(remote []api.Comment) []Comment {
	out := make([]Comment, 0, len(remote))
	for _, c := range remote {
		out = append(out, AdaptComment(c))
	}
	return out
}
