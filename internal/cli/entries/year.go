package entries

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/models"
	"github.com/julianstephens/dailybloom/internal/tui/components/garden"
)

type YearCmd struct {
	Year int `arg:"" optional:"" help:"Year to render. Defaults to the current year."`
}

func (c *YearCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Now().Year()
	}

	st := ctx.Stats.ForYear(year)
	ctx.Printf("%d  %d written, %d remaining, %d day streak\n\n", year, st.Written, st.Remaining, st.Streak)
	ctx.Println(garden.Render(ctx.Grid.MonthsInYear(year), nil))
	ctx.Println()
	ctx.Println(garden.Legend())
	return nil
}

type StatsCmd struct {
	Year  int  `arg:"" optional:"" help:"Year to summarise. Defaults to the current year."`
	Moods bool `help:"Include the mood breakdown."`
	JSON  bool `name:"json" help:"Print the stats as JSON."`
}

type statsOutput struct {
	Year int `json:"year"`
	models.Stats
	Moods map[models.Mood]int `json:"moods,omitempty"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Now().Year()
	}

	st := ctx.Stats.ForYear(year)
	var moods models.MoodCounts
	if c.Moods {
		moods = ctx.Stats.Moods(year)
	}

	if c.JSON {
		out := statsOutput{Year: year, Stats: st, Moods: moods.Counts}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("Stats for %d\n", year)
	ctx.Printf("  Written:   %d\n", st.Written)
	ctx.Printf("  Remaining: %d\n", st.Remaining)
	ctx.Printf("  Streak:    %d\n", st.Streak)

	if !c.Moods {
		return nil
	}
	ctx.Println()
	if moods.Total == 0 {
		ctx.Println("No moods recorded yet.")
		return nil
	}
	ctx.Println("Moods:")
	for _, info := range models.Moods {
		pct := moods.Percent(info.Mood)
		bar := strings.Repeat("█", pct/5)
		ctx.Printf("  %s %-8s %3d%% %s (%d)\n", info.Glyph, info.Label, pct, bar, moods.Counts[info.Mood])
	}
	return nil
}
