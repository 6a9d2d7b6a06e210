package reminder

import (
	"context"
	"fmt"
	"time"

	"subscription_notifier/internal/domain/client"
)

// Match pairs a client due for a reminder with the lead-time offset that
// selected it. A client has a single expiration date, so it matches at most
// once per run unless two configured offsets collide on the same target date.
type Match struct {
	Client *client.Client
	Offset int
}

// Evaluator computes which active clients are due for a reminder on a given
// day. It only reads from the client repository; repeated calls against an
// unchanged store produce identical results.
type Evaluator struct {
	clients client.Repository
}

func NewEvaluator(clients client.Repository) *Evaluator {
	return &Evaluator{clients: clients}
}

// Due returns one Match per (active client, offset) pair whose expiration
// date equals today+offset days. Matches are grouped by offset in the
// configured order and ordered by client id within each offset. A store
// query failure aborts the whole evaluation: the caller must be able to
// tell "nothing due" from "store unavailable".
func (e *Evaluator) Due(ctx context.Context, today time.Time, offsets Offsets) ([]Match, error) {
	day := client.Date(today)
	var matches []Match
	for _, offset := range offsets {
		target := day.AddDate(0, 0, offset)
		due, err := e.clients.ListActiveByExpiration(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("listing clients expiring %s: %w", target.Format("2006-01-02"), err)
		}
		for _, c := range due {
			matches = append(matches, Match{Client: c, Offset: offset})
		}
	}
	return matches, nil
}
