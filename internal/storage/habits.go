package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/logger"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/validation"
)

// ErrHabitNotFound is returned by Find when no habit matches.
var ErrHabitNotFound = errors.New("habit not found")

// Habits manages the list of tracked habits
type Habits struct {
	store kv.Store
	clock calendar.Clock
	key   string
}

func NewHabits(store kv.Store, clock calendar.Clock) *Habits {
	if clock == nil {
		clock = calendar.SystemClock(nil)
	}
	return &Habits{store: store, clock: clock, key: constants.HabitsKey}
}

func (h *Habits) load() ([]models.Habit, error) {
	data, ok, err := h.store.Get(h.key)
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	if !ok {
		return nil, nil
	}

	habits, err := unmarshalHabits([]byte(data))
	if err != nil {
		logger.Warn("habit store is corrupt, treating as empty", "err", err)
		return nil, nil
	}
	return habits, nil
}

func (h *Habits) write(habits []models.Habit) error {
	data, err := marshalHabits(habits)
	if err != nil {
		return err
	}
	if err := h.store.Set(h.key, string(data)); err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			logger.Debug("storage unavailable, dropping write", "key", h.key)
			return nil
		}
		return fmt.Errorf("failed to write habits: %w", err)
	}
	return nil
}

// List returns all habits in creation order.
func (h *Habits) List() []models.Habit {
	habits, err := h.load()
	if err != nil {
		if !errors.Is(err, kv.ErrUnavailable) {
			logger.Warn("failed to load habits", "err", err)
		}
		return nil
	}
	return habits
}

// Active returns the habits currently being tracked.
func (h *Habits) Active() []models.Habit {
	var active []models.Habit
	for _, habit := range h.List() {
		if habit.IsActive {
			active = append(active, habit)
		}
	}
	return active
}

// Add creates a habit with a fresh ID. An empty emoji falls back to the default.
func (h *Habits) Add(name, emoji string) (models.Habit, error) {
	if err := validation.ValidateHabitName(name); err != nil {
		return models.Habit{}, err
	}
	if strings.TrimSpace(emoji) == "" {
		emoji = constants.DefaultHabitEmoji
	}

	habit := models.Habit{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Emoji:     strings.TrimSpace(emoji),
		IsActive:  true,
		CreatedAt: h.clock(),
	}

	habits, err := h.load()
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			logger.Debug("storage unavailable, habit not persisted", "name", habit.Name)
			return habit, nil
		}
		return models.Habit{}, err
	}

	habits = append(habits, habit)
	if err := h.write(habits); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// Delete removes the habit with id. Entries keep any logs recorded against it.
func (h *Habits) Delete(id string) error {
	habits, err := h.load()
	if err != nil {
		if errors.Is(err, kv.ErrUnavailable) {
			return nil
		}
		return err
	}

	kept := habits[:0]
	for _, habit := range habits {
		if habit.ID != id {
			kept = append(kept, habit)
		}
	}
	if len(kept) == len(habits) {
		return nil
	}
	return h.write(kept)
}

// Find looks a habit up by ID or, failing that, by case-insensitive name.
func (h *Habits) Find(ref string) (models.Habit, error) {
	habits := h.List()
	for _, habit := range habits {
		if habit.ID == ref {
			return habit, nil
		}
	}
	for _, habit := range habits {
		if strings.EqualFold(habit.Name, strings.TrimSpace(ref)) {
			return habit, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
}
