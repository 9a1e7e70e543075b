package models

import (
	"fmt"
	"strings"
)

// Mood is how the day felt. The zero value means no mood was recorded.
type Mood string

const (
	MoodNone    Mood = ""
	MoodAmazing Mood = "amazing"
	MoodGood    Mood = "good"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
	MoodRough   Mood = "rough"
)

// MoodInfo describes how a mood is presented
type MoodInfo struct {
	Mood  Mood
	Label string
	Glyph string
}

// Moods lists every recognised mood in display order.
var Moods = []MoodInfo{
	{Mood: MoodAmazing, Label: "Amazing", Glyph: "☀"},
	{Mood: MoodGood, Label: "Good", Glyph: "✿"},
	{Mood: MoodCalm, Label: "Calm", Glyph: "❦"},
	{Mood: MoodNeutral, Label: "Neutral", Glyph: "☁"},
	{Mood: MoodTired, Label: "Tired", Glyph: "☾"},
	{Mood: MoodRough, Label: "Rough", Glyph: "☂"},
}

// Valid reports whether m is empty or one of the known moods.
func (m Mood) Valid() bool {
	if m == MoodNone {
		return true
	}
	_, ok := m.Info()
	return ok
}

// Info returns the presentation details for m.
func (m Mood) Info() (MoodInfo, bool) {
	for _, info := range Moods {
		if info.Mood == m {
			return info, true
		}
	}
	return MoodInfo{}, false
}

// Glyph returns the mood's symbol, or the default bloom when no mood is set.
func (m Mood) Glyph() string {
	if info, ok := m.Info(); ok {
		return info.Glyph
	}
	return "✿"
}

// ParseMood parses a mood name case-insensitively. An empty string yields MoodNone.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return MoodNone, fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}
