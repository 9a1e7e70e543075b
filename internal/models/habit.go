package models

import "time"

// Habit represents a practice the user tracks alongside journal entries
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Label renders the habit as "emoji name".
func (h Habit) Label() string {
	if h.Emoji == "" {
		return h.Name
	}
	return h.Emoji + " " + h.Name
}
