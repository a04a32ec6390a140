package model

import "time"

// Emotion tags a comment.
type Emotion string

const (
	EmotionSmile    Emotion = "smile"
	EmotionSleeping Emotion = "sleeping"
	EmotionPuke     Emotion = "puke"
	EmotionAngry    Emotion = "angry"
)

// Emotions lists the valid tags in display order.
var Emotions = []Emotion{EmotionSmile, EmotionSleeping, EmotionPuke, EmotionAngry}

// Valid reports whether e is one of Emotions.
func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

type Comment struct {
	ID      string
	Author  string
	Text    string
	Emotion Emotion
	Date    time.Time
}

// CommentDraft is a comment the user has not submitted yet.
type CommentDraft struct {
	Text    string
	Emotion Emotion
}

// CommentPost asks to add Draft to Film.
type CommentPost struct {
	Film   Film
	Draft  CommentDraft
	Scroll int
}

// CommentRemoval asks to delete CommentID from Film.
type CommentRemoval struct {
	Film      Film
	CommentID string
	Scroll    int
}
