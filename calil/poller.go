package calil

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ResolveAvailability drives the asynchronous check operation for one ISBN
// against the given library systems until the upstream reports completion.
//
// The first request carries the ISBN and the deduplicated system-ID set. When
// the response signals more work, up to MaxPollRounds continuation rounds
// follow, each waiting PollInterval and reissuing the request with only the
// session token. A settled session is never polled again.
//
// Failure modes stay distinct: transport failure on any round returns an
// *UpstreamError immediately (an incomplete poll is never reported as
// settled), an exhausted round budget returns a *PollTimeoutError, and
// cancellation during the inter-round wait returns ctx.Err().
func (c *Client) ResolveAvailability(ctx context.Context, isbn string, systemIDs []string) (RawAvailability, error) {
	if strings.TrimSpace(isbn) == "" {
		return RawAvailability{}, &ValidationError{Field: "isbn", Message: "must not be empty"}
	}
	ids := DedupeSystemIDs(systemIDs)
	if len(ids) == 0 {
		return RawAvailability{}, &ValidationError{Field: "systemIDs", Message: "must not be empty"}
	}

	q := url.Values{}
	q.Set("appkey", c.config.AppKey)
	q.Set("format", "json")
	q.Set("isbn", isbn)
	q.Set("systemid", strings.Join(ids, ","))

	session, raw, err := c.checkRound(ctx, q)
	if err != nil {
		return RawAvailability{}, err
	}
	c.logf("calil: check isbn=%s systems=%d complete=%t", isbn, len(ids), session.Complete)
	if session.Complete {
		return raw, nil
	}

	for round := 1; round <= c.config.MaxPollRounds; round++ {
		if err := c.waitRound(ctx); err != nil {
			return RawAvailability{}, err
		}

		cq := url.Values{}
		cq.Set("appkey", c.config.AppKey)
		cq.Set("format", "json")
		cq.Set("session", session.Token)

		session, raw, err = c.checkRound(ctx, cq)
		if err != nil {
			return RawAvailability{}, err
		}
		c.logf("calil: poll round=%d complete=%t", round, session.Complete)
		if session.Complete {
			return raw, nil
		}
	}

	return RawAvailability{}, &PollTimeoutError{Session: session.Token, Rounds: c.config.MaxPollRounds}
}

// waitRound suspends the calling goroutine for one inter-round delay. It
// returns ctx.Err() promptly on cancellation so a cancelled request never
// issues another round.
func (c *Client) waitRound(ctx context.Context) error {
	timer := time.NewTimer(c.config.PollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) checkRound(ctx context.Context, q url.Values) (PollSession, RawAvailability, error) {
	body, err := c.get(ctx, "/check", q)
	if err != nil {
		return PollSession{}, RawAvailability{}, err
	}
	doc, err := Decode(body)
	if err != nil {
		return PollSession{}, RawAvailability{}, err
	}
	session := PollSession{
		Token:    doc.Get("session").String(),
		Complete: doc.Get("continue").Int() == 0,
	}
	return session, availabilityFromDoc(doc), nil
}

// availabilityFromDoc lifts the loosely-shaped "books" tree into fixed
// structs. Libkey order within a system follows the raw payload.
func availabilityFromDoc(doc gjson.Result) RawAvailability {
	raw := RawAvailability{Books: make(map[string]map[string]SystemAvailability)}
	doc.Get("books").ForEach(func(isbn, systems gjson.Result) bool {
		perSystem := make(map[string]SystemAvailability)
		systems.ForEach(func(systemID, state gjson.Result) bool {
			sys := SystemAvailability{
				Status:     state.Get("status").String(),
				ReserveURL: state.Get("reserveurl").String(),
			}
			state.Get("libkey").ForEach(func(libkey, status gjson.Result) bool {
				sys.Libkeys = append(sys.Libkeys, LibkeyStatus{
					Libkey: libkey.String(),
					Status: status.String(),
				})
				return true
			})
			perSystem[systemID.String()] = sys
			return true
		})
		raw.Books[isbn.String()] = perSystem
		return true
	})
	return raw
}

// DedupeSystemIDs removes duplicate and blank system IDs, preserving
// first-seen order. The check endpoint is keyed per distinct system;
// redundant IDs waste poll rounds.
func DedupeSystemIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
