package entries

import (
	"strings"

	"github.com/julianstephens/dailybloom/internal/cli"
	"github.com/julianstephens/dailybloom/internal/quotes"
)

type QuoteCmd struct {
	Random bool `help:"Pick a random quote instead of today's."`
}

func (c *QuoteCmd) Run(ctx *cli.Context) error {
	q := quotes.ForDay(ctx.Now())
	if c.Random {
		q = quotes.Random(nil)
	}
	ctx.Println(q.String())
	return nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
