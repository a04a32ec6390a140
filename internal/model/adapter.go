package model

import "github.com/pders01/cinemaddict/internal/api"

// AdaptFilm converts a wire record into a Film.
func AdaptFilm(f api.Film) Film {
	info := f.FilmInfo
	return Film{
		ID:       f.ID,
		Comments: cloneStrings(f.Comments),
		Info: FilmInfo{
			Title:            info.Title,
			AlternativeTitle: info.AlternativeTitle,
			TotalRating:      info.TotalRating,
			Poster:           info.Poster,
			AgeRating:        info.AgeRating,
			Director:         info.Director,
			Writers:          cloneStrings(info.Writers),
			Actors:           cloneStrings(info.Actors),
			Release: Release{
				Date:    info.Release.Date,
				Country: info.Release.ReleaseCountry,
			},
			Duration:    info.Duration,
			Genres:      cloneStrings(info.Genre),
			Description: info.Description,
		},
		UserDetails: UserDetails{
			Watchlist:      f.UserDetails.Watchlist,
			AlreadyWatched: f.UserDetails.AlreadyWatched,
			WatchingDate:   f.UserDetails.WatchingDate,
			Favorite:       f.UserDetails.Favorite,
		},
	}
}

// FilmToRemote converts a Film back into its wire record.
func FilmToRemote(f Film) api.Film {
	info := f.Info
	return api.Film{
		ID:       f.ID,
		Comments: nonNil(f.Comments),
		FilmInfo: api.FilmInfo{
			Title:            info.Title,
			AlternativeTitle: info.AlternativeTitle,
			TotalRating:      info.TotalRating,
			Poster:           info.Poster,
			AgeRating:        info.AgeRating,
			Director:         info.Director,
			Writers:          nonNil(info.Writers),
			Actors:           nonNil(info.Actors),
			Release: api.Release{
				Date:           info.Release.Date,
				ReleaseCountry: info.Release.Country,
			},
			Duration:    info.Duration,
			Genre:       nonNil(info.Genres),
			Description: info.Description,
		},
		UserDetails: api.UserDetails{
			Watchlist:      f.UserDetails.Watchlist,
			AlreadyWatched: f.UserDetails.AlreadyWatched,
			WatchingDate:   f.UserDetails.WatchingDate,
			Favorite:       f.UserDetails.Favorite,
		},
	}
}

// AdaptComment converts a wire comment into a Comment.
func AdaptComment(c api.Comment) Comment {
	return Comment{
		ID:      c.ID,
		Author:  c.Author,
		Text:    c.Comment,
		Emotion: Emotion(c.Emotion),
		Date:    c.Date,
	}
}

// DraftToRemote converts a draft into the new-comment request body.
func DraftToRemote(d CommentDraft) api.CommentDraft {
	return api.CommentDraft{Comment: d.Text, Emotion: string(d.Emotion)}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// The service expects arrays, never null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
