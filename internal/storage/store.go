// Package storage is a bbolt-backed catalog service for offline use. It
// answers the same calls as the remote API.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/model"
)

var (
	filmsBucket    = []byte("films")
	commentsBucket = []byte("comments")
)

var (
	ErrFilmNotFound    = errors.New("film not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidComment  = errors.New("invalid comment")
)

const (
	defaultAuthor      = "Movie Buff"
	defaultOpenTimeout = time.Second
)

type Store struct {
	db     *bolt.DB
	author string
	now    func() time.Time
}

var _ model.Service = (*Store)(nil)

// NewStore opens or creates the database at dbPath. timeout bounds the wait
// for the file lock; zero means one second.
func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = defaultOpenTimeout
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{filmsBucket, commentsBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, author: defaultAuthor, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetAuthor sets the name recorded on new comments.
func (s *Store) SetAuthor(name string) {
	if name = strings.TrimSpace(name); name != "" {
		s.author = name
	}
}

// Count returns the number of stored films.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(filmsBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Import replaces the stored catalog with c.
func (s *Store) Import(c *Catalog) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{filmsBucket, commentsBucket} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		films := tx.Bucket(filmsBucket)
		for i, film := range c.Films {
			if film.ID == "" {
				return fmt.Errorf("film at position %d has no id", i)
			}
			if err := putJSON(films, film.ID, filmRecord{Position: i, Film: film}); err != nil {
				return err
			}
		}

		comments := tx.Bucket(commentsBucket)
		for filmID, list := range c.Comments {
			for _, comment := range list {
				if err := putJSON(comments, comment.ID, commentRecord{FilmID: filmID, Comment: comment}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Store) Films(ctx context.Context) ([]api.Film, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []filmRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(filmsBucket).ForEach(func(_ []byte, v []byte) error {
			var rec filmRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	films := make([]api.Film, 0, len(records))
	for _, rec := range records {
		films = append(films, rec.Film)
	}
	return films, nil
}

// UpdateFilm stores film's user details. The comment list stays as stored
// so it can only change through AddComment and DeleteComment.
func (s *Store) UpdateFilm(ctx context.Context, film api.Film) (api.Film, error) {
	if err := ctx.Err(); err != nil {
		return api.Film{}, err
	}
	var updated api.Film
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(filmsBucket)
		rec, err := getFilm(b, film.ID)
		if err != nil {
			return err
		}
		details := film.UserDetails
		if details.AlreadyWatched && details.WatchingDate == nil {
			now := s.now().UTC()
			details.WatchingDate = &now
		}
		if !details.AlreadyWatched {
			details.WatchingDate = nil
		}
		rec.Film.UserDetails = details
		updated = rec.Film
		return putJSON(b, film.ID, rec)
	})
	return updated, err
}

func (s *Store) Comments(ctx context.Context, filmID string) ([]api.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var comments []api.Comment
	err := s.db.View(func(tx *bolt.Tx) error {
		rec, err := getFilm(tx.Bucket(filmsBucket), filmID)
		if err != nil {
			return err
		}
		comments, err = collectComments(tx.Bucket(commentsBucket), rec.Film.Comments)
		return err
	})
	return comments, err
}

func (s *Store) AddComment(ctx context.Context, filmID string, draft api.CommentDraft) (api.CommentPostResponse, error) {
	if err := ctx.Err(); err != nil {
		return api.CommentPostResponse{}, err
	}
	if strings.TrimSpace(draft.Comment) == "" {
		return api.CommentPostResponse{}, fmt.Errorf("%w: comment text is required", ErrInvalidComment)
	}
	if !model.Emotion(draft.Emotion).Valid() {
		return api.CommentPostResponse{}, fmt.Errorf("%w: unknown emotion %q", ErrInvalidComment, draft.Emotion)
	}

	var resp api.CommentPostResponse
	err := s.db.Update(func(tx *bolt.Tx) error {
		films := tx.Bucket(filmsBucket)
		rec, err := getFilm(films, filmID)
		if err != nil {
			return err
		}

		comment := api.Comment{
			ID:      uuid.NewString(),
			Author:  s.author,
			Comment: draft.Comment,
			Date:    s.now().UTC(),
			Emotion: draft.Emotion,
		}
		comments := tx.Bucket(commentsBucket)
		if err := putJSON(comments, comment.ID, commentRecord{FilmID: filmID, Comment: comment}); err != nil {
			return err
		}

		rec.Film.Comments = append(rec.Film.Comments, comment.ID)
		if err := putJSON(films, filmID, rec); err != nil {
			return err
		}

		resp.Movie = rec.Film
		resp.Comments, err = collectComments(comments, rec.Film.Comments)
		return err
	})
	return resp, err
}

func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		comments := tx.Bucket(commentsBucket)
		data := comments.Get([]byte(commentID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		var crec commentRecord
		if err := json.Unmarshal(data, &crec); err != nil {
			return err
		}
		if err := comments.Delete([]byte(commentID)); err != nil {
			return err
		}

		films := tx.Bucket(filmsBucket)
		rec, err := getFilm(films, crec.FilmID)
		if errors.Is(err, ErrFilmNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		kept := rec.Film.Comments[:0]
		for _, id := range rec.Film.Comments {
			if id != commentID {
				kept = append(kept, id)
			}
		}
		rec.Film.Comments = kept
		return putJSON(films, crec.FilmID, rec)
	})
}

func getFilm(b *bolt.Bucket, id string) (filmRecord, error) {
	var rec filmRecord
	data := b.Get([]byte(id))
	if data == nil {
		return rec, fmt.Errorf("%w: %s", ErrFilmNotFound, id)
	}
	err := json.Unmarshal(data, &rec)
	return rec, err
}

func collectComments(b *bolt.Bucket, ids []string) ([]api.Comment, error) {
	out := make([]api.Comment, 0, len(ids))
	for _, id := range ids {
		data := b.Get([]byte(id))
		if data == nil {
			continue
		}
		var rec commentRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec.Comment)
	}
	return out, nil
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}
