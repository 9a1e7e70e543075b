package entries

import (
	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/search"
)

const snippetWidth = 60

type SearchCmd struct {
	Term  []string `arg:"" help:"Text to look for in entries and habit notes."`
	Limit int      `short:"n" help:"Show at most this many results. 0 shows all." default:"0"`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	term := joinArgs(c.Term)
	results := search.Entries(ctx.Journal.LoadAll(), term)
	if len(results) == 0 {
		ctx.Printf("No entries match %q.\n", term)
		return nil
	}

	shown := results
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}
	for _, e := range shown {
		ctx.Printf("%s %s  %s\n", e.Date, e.Mood.Glyph(), search.Snippet(e.Content, term, snippetWidth))
	}
	if len(shown) < len(results) {
		ctx.Printf("... and %d more\n", len(results)-len(shown))
	}
	return nil
}
