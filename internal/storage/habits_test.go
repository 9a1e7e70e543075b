package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/validation"
)

func TestHabitsAddListDelete(t *testing.T) {
	h := NewHabits(kv.NewMemory(), calendar.FixedClock(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)))

	if len(h.List()) != 0 {
		t.Fatal("expected no habits initially")
	}

	read, err := h.Add("Read", "📚")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	walk, err := h.Add("  Walk  ", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if read.ID == "" || read.ID == walk.ID {
		t.Errorf("habits need unique IDs: %q %q", read.ID, walk.ID)
	}
	if walk.Name != "Walk" || walk.Emoji != constants.DefaultHabitEmoji {
		t.Errorf("unexpected habit: %+v", walk)
	}
	if !walk.IsActive {
		t.Error("new habits should be active")
	}

	habits := h.List()
	if len(habits) != 2 || habits[0].Name != "Read" || habits[1].Name != "Walk" {
		t.Fatalf("unexpected habit list: %+v", habits)
	}

	if err := h.Delete(read.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := h.Delete("missing"); err != nil {
		t.Fatalf("deleting an unknown habit should be a no-op: %v", err)
	}
	habits = h.List()
	if len(habits) != 1 || habits[0].ID != walk.ID {
		t.Errorf("unexpected habits after delete: %+v", habits)
	}
}

func TestHabitsAddRejectsBlankName(t *testing.T) {
	h := NewHabits(kv.NewMemory(), nil)

	if _, err := h.Add("   ", ""); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHabitsFind(t *testing.T) {
	h := NewHabits(kv.NewMemory(), nil)
	meditate, _ := h.Add("Meditate", "")

	if got, err := h.Find(meditate.ID); err != nil || got.ID != meditate.ID {
		t.Errorf("Find by ID = %+v, %v", got, err)
	}
	if got, err := h.Find("meditate"); err != nil || got.ID != meditate.ID {
		t.Errorf("Find by name = %+v, %v", got, err)
	}
	if _, err := h.Find("run"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitsCorruptDocument(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set(constants.HabitsKey, `{"not":"an array"}`)
	h := NewHabits(store, nil)

	if len(h.List()) != 0 {
		t.Error("corrupt habit list should read as empty")
	}
}
