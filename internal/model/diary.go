package model

import "time"

// Mood is the self-reported mood attached to a diary entry.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodStressed  Mood = "stressed"
	MoodSad       Mood = "sad"
	MoodAnxious   Mood = "anxious"
	MoodEnergetic Mood = "energetic"
)

// Valid reports whether m is empty or one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case "", MoodHappy, MoodNeutral, MoodStressed, MoodSad, MoodAnxious, MoodEnergetic:
		return true
	}
	return false
}

// DiaryEntry is a free-text diary record. Several entries may share a date.
type DiaryEntry struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	RawText   string    `json:"rawText,omitempty"`
	Summary   string    `json:"summary"`
	Mood      Mood      `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnchorDate implements Dated.
func (e DiaryEntry) AnchorDate() string { return e.Date }

// NewDiaryEntry is the body of a diary create request.
type NewDiaryEntry struct {
	Date    string   `json:"date"`
	RawText string   `json:"rawText,omitempty"`
	Summary string   `json:"summary"`
	Mood    Mood     `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}
