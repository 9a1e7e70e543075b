// Package quotes provides the daily quote shown above the garden.
package quotes

import (
	"math/rand/v2"
	"time"

	"github.com/julianstephens/dailybloom/internal/calendar"
)

type Quote struct {
	Text   string
	Author string
}

var all = []Quote{
	{"Keep your face always toward the sunshine, and shadows will fall behind you.", "Walt Whitman"},
	{"Happiness is not by chance, but by choice.", "Jim Rohn"},
	{"The garden suggests there is a place where we can meet nature halfway.", "Michael Pollan"},
	{"To plant a garden is to believe in tomorrow.", "Audrey Hepburn"},
	{"Every flower is a soul blossoming in nature.", "Gerard De Nerval"},
	{"Adopt the pace of nature: her secret is patience.", "Ralph Waldo Emerson"},
	{"Wherever you go, no matter what the weather, always bring your own sunshine.", "Anthony J. D'Angelo"},
	{"Life begins the day you start a garden.", "Chinese Proverb"},
	{"In the depth of winter, I finally learned that within me there lay an invincible summer.", "Albert Camus"},
	{"Growth is the only evidence of life.", "John Henry Newman"},
}

// All returns a copy of every quote.
func All() []Quote {
	return append([]Quote(nil), all...)
}

// ForDay returns the quote for t's day of year. The same day always yields
// the same quote.
func ForDay(t time.Time) Quote {
	return all[calendar.DayOfYear(t)%len(all)]
}

// Random picks a quote uniformly using r, or the global source when r is nil.
func Random(r *rand.Rand) Quote {
	if r == nil {
		return all[rand.IntN(len(all))]
	}
	return all[r.IntN(len(all))]
}

func (q Quote) String() string {
	return "“" + q.Text + "” - " + q.Author
}
