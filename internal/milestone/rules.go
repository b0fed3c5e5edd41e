package milestone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// Rule is one single-stat threshold: a box line earns Key when the named stat is
// at least Min and, if Max is set, at most Max. Banded buckets (20-24, 25-29, ...)
// use Max so that one value lands in exactly one bucket.
type Rule struct {
	Key    string `yaml:"key"`
	Stat   string `yaml:"stat"`
	Min    int    `yaml:"min"`
	Max    *int   `yaml:"max,omitempty"`
	Detail string `yaml:"detail"` // "{value}" is replaced with the stat value
}

// Matches reports whether v falls inside the rule's range.
func (r Rule) Matches(v int) bool {
	if v < r.Min {
		return false
	}
	return r.Max == nil || v <= *r.Max
}

// FormatDetail renders the rule's detail template for a value.
func (r Rule) FormatDetail(v int) string {
	return strings.ReplaceAll(r.Detail, "{value}", strconv.Itoa(v))
}

// StatValue reads a named counting stat off a box line.
func StatValue(b *model.PlayerBoxLine, stat string) (int, bool) {
	switch stat {
	case "pts":
		return b.PTS, true
	case "trb":
		return b.TRB, true
	case "ast":
		return b.AST, true
	case "stl":
		return b.STL, true
	case "blk":
		return b.BLK, true
	case "fg3":
		return b.FG3, true
	case "fg":
		return b.FG, true
	case "ft":
		return b.FT, true
	case "orb":
		return b.ORB, true
	case "drb":
		return b.DRB, true
	default:
		return 0, false
	}
}

// Validate checks a rule table for empty keys, unknown stats and inverted ranges.
func Validate(rules []Rule) error {
	var errs []error
	for i, r := range rules {
		if r.Key == "" {
			errs = append(errs, fmt.Errorf("rule %d: empty key", i))
		}
		if _, ok := StatValue(&model.PlayerBoxLine{}, r.Stat); !ok {
			errs = append(errs, fmt.Errorf("rule %d (%s): unknown stat %q", i, r.Key, r.Stat))
		}
		if r.Min < 0 {
			errs = append(errs, fmt.Errorf("rule %d (%s): negative min %d", i, r.Key, r.Min))
		}
		if r.Max != nil && *r.Max < r.Min {
			errs = append(errs, fmt.Errorf("rule %d (%s): max %d below min %d", i, r.Key, *r.Max, r.Min))
		}
	}
	return errors.Join(errs...)
}

func upTo(n int) *int { return &n }

// DefaultRules returns a fresh copy of the built-in single-stat table.
func DefaultRules() []Rule {
	return []Rule{
		// Scoring
		{Key: FiftyPointGames, Stat: "pts", Min: 50, Detail: "{value} points"},
		{Key: FortyPointGames, Stat: "pts", Min: 40, Max: upTo(49), Detail: "{value} points"},
		{Key: ThirtyPointGames, Stat: "pts", Min: 30, Max: upTo(39), Detail: "{value} points"},
		{Key: TwentyFivePointGames, Stat: "pts", Min: 25, Max: upTo(29), Detail: "{value} points"},
		{Key: TwentyPointGames, Stat: "pts", Min: 20, Max: upTo(24), Detail: "{value} points"},

		// Rebounding
		{Key: TwentyReboundGames, Stat: "trb", Min: 20, Detail: "{value} rebounds"},
		{Key: FifteenReboundGames, Stat: "trb", Min: 15, Max: upTo(19), Detail: "{value} rebounds"},
		{Key: TenReboundGames, Stat: "trb", Min: 10, Max: upTo(14), Detail: "{value} rebounds"},

		// Assists
		{Key: TwentyAssistGames, Stat: "ast", Min: 20, Detail: "{value} assists"},
		{Key: FifteenAssistGames, Stat: "ast", Min: 15, Max: upTo(19), Detail: "{value} assists"},
		{Key: TenAssistGames, Stat: "ast", Min: 10, Max: upTo(14), Detail: "{value} assists"},

		// Defense
		{Key: TenBlockGames, Stat: "blk", Min: 10, Detail: "{value} blocks"},
		{Key: FiveBlockGames, Stat: "blk", Min: 5, Max: upTo(9), Detail: "{value} blocks"},
		{Key: TenStealGames, Stat: "stl", Min: 10, Detail: "{value} steals"},
		{Key: FiveStealGames, Stat: "stl", Min: 5, Max: upTo(9), Detail: "{value} steals"},

		// Three-pointers
		{Key: TenThreeGames, Stat: "fg3", Min: 10, Detail: "{value} three-pointers"},
		{Key: SevenThreeGames, Stat: "fg3", Min: 7, Max: upTo(9), Detail: "{value} three-pointers"},
		{Key: FiveThreeGames, Stat: "fg3", Min: 5, Max: upTo(6), Detail: "{value} three-pointers"},
	}
}
