package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// ParseESPN converts an ESPN game-summary document (header, plays, boxscore)
// into a RawGame. Team sides come from the header competitors, falling back to
// boxscore.teams; plays whose team id is unknown get SideUnknown.
// An empty gender is taken from the document's league.
func ParseESPN(data []byte, gender string) (*model.RawGame, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse espn: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	g := espnGender(doc, gender)

	type teamInfo struct {
		name string
		side model.Side
	}
	teams := make(map[string]teamInfo)
	var (
		awayName, homeName   string
		awayScore, homeScore int
		ls                   model.LineScore
		haveLines            [3]bool
	)
	final := g.FinalPeriod()

	comp := doc.Get("header.competitions.0")
	comp.Get("competitors").ForEach(func(_, c gjson.Result) bool {
		side := model.ParseSide(c.Get("homeAway").String())
		if side == model.SideUnknown {
			return true
		}
		name := c.Get("team.displayName").String()
		teams[c.Get("team.id").String()] = teamInfo{name: name, side: side}

		var periods []int
		c.Get("linescores").ForEach(func(_, l gjson.Result) bool {
			v := l.Get("value")
			if !v.Exists() {
				v = l.Get("displayValue")
			}
			periods = append(periods, int(v.Int()))
			return true
		})
		tl := splitPeriods(periods, final)
		score := int(c.Get("score").Int())
		if side == model.SideAway {
			awayName, awayScore, ls.Away = name, score, tl
		} else {
			homeName, homeScore, ls.Home = name, score, tl
		}
		haveLines[side] = len(periods) > 0
		return true
	})

	doc.Get("boxscore.teams").ForEach(func(_, t gjson.Result) bool {
		id := t.Get("team.id").String()
		if _, ok := teams[id]; ok || id == "" {
			return true
		}
		side := model.ParseSide(t.Get("homeAway").String())
		if side == model.SideUnknown {
			return true
		}
		name := t.Get("team.displayName").String()
		teams[id] = teamInfo{name: name, side: side}
		if side == model.SideAway && awayName == "" {
			awayName = name
		} else if side == model.SideHome && homeName == "" {
			homeName = name
		}
		return true
	})

	var plays []model.Play
	doc.Get("plays").ForEach(func(_, p gjson.Result) bool {
		text := p.Get("text").String()
		if text == "" {
			return true
		}
		team := teams[p.Get("team.id").String()]
		player := ""
		p.Get("participants").ForEach(func(_, a gjson.Result) bool {
			player = a.Get("athlete.displayName").String()
			return player == ""
		})
		if player == "" {
			player = ExtractPlayer(text)
		}
		period := int(p.Get("period.number").Int())
		if period == 0 {
			period = 1
		}
		plays = append(plays, model.Play{
			Time:       p.Get("clock.displayValue").String(),
			Period:     period,
			Side:       team.side,
			Player:     player,
			Team:       team.name,
			ScoreValue: int(p.Get("scoreValue").Int()),
			PlayType:   ClassifyPlay(text, p.Get("type.text").String()),
			IsScoring:  p.Get("scoringPlay").Bool(),
			AwayScore:  int(p.Get("awayScore").Int()),
			HomeScore:  int(p.Get("homeScore").Int()),
			Text:       text,
		})
		return true
	})

	raw := &model.RawGame{Plays: plays}
	doc.Get("boxscore.players").ForEach(func(_, tp gjson.Result) bool {
		team, ok := teams[tp.Get("team.id").String()]
		if !ok {
			return true
		}
		lines := espnBoxLines(tp.Get("statistics.0"))
		if team.side == model.SideAway {
			raw.AwayBox = append(raw.AwayBox, lines...)
		} else {
			raw.HomeBox = append(raw.HomeBox, lines...)
		}
		return true
	})

	if len(plays) == 0 && len(raw.AwayBox) == 0 && len(raw.HomeBox) == 0 {
		return nil, ErrEmptyGame
	}
	if haveLines[model.SideAway] && haveLines[model.SideHome] {
		raw.LineScore = &ls
	}

	date := comp.Get("date").String()
	if len(date) >= 10 {
		date = date[:10]
	}
	gameID := doc.Get("header.id").String()
	raw.Context = model.NewGameContext(gameID, date, g, awayName, homeName, awayScore, homeScore, plays)
	return raw, nil
}

// espnGender resolves the game format. An explicit override wins; otherwise
// women's leagues ("womens-college-basketball", "wnba") play quarters.
func espnGender(doc gjson.Result, override string) model.Gender {
	if strings.TrimSpace(override) != "" {
		return model.ParseGender(override)
	}
	league := strings.ToLower(doc.Get("header.league.slug").String() + " " + doc.Get("header.league.name").String())
	if strings.Contains(league, "women") || strings.Contains(league, "wnba") {
		return model.GenderWomen
	}
	return model.GenderMen
}

// splitPeriods splits a linescore into regulation periods and overtimes.
func splitPeriods(periods []int, final int) model.TeamLineScore {
	if len(periods) <= final {
		return model.TeamLineScore{Periods: periods}
	}
	return model.TeamLineScore{Periods: periods[:final], OT: periods[final:]}
}

// espnBoxLines reads one team's statistics block. Stats are positional and
// named by the block's labels; players flagged didNotPlay are skipped.
func espnBoxLines(block gjson.Result) []model.PlayerBoxLine {
	idx := make(map[string]int)
	for i, l := range block.Get("labels").Array() {
		idx[strings.ToUpper(l.String())] = i
	}

	var out []model.PlayerBoxLine
	block.Get("athletes").ForEach(func(_, a gjson.Result) bool {
		if a.Get("didNotPlay").Bool() {
			return true
		}
		stats := a.Get("stats").Array()
		if len(stats) == 0 {
			return true
		}
		get := func(label string) string {
			i, ok := idx[label]
			if !ok || i >= len(stats) {
				return ""
			}
			return stats[i].String()
		}
		num := func(label string) int {
			n, _ := strconv.Atoi(strings.TrimSpace(get(label)))
			return n
		}

		b := model.PlayerBoxLine{
			Name:    a.Get("athlete.displayName").String(),
			ID:      a.Get("athlete.id").String(),
			PTS:     num("PTS"),
			TRB:     num("REB"),
			AST:     num("AST"),
			STL:     num("STL"),
			BLK:     num("BLK"),
			ORB:     num("OREB"),
			DRB:     num("DREB"),
			TOV:     num("TO"),
			PF:      num("PF"),
			Minutes: model.ParseMinutesPlayed(get("MIN")),
		}
		b.FG, b.FGA = madeAttempted(get("FG"))
		b.FG3, b.FG3A = madeAttempted(get("3PT"))
		b.FT, b.FTA = madeAttempted(get("FT"))
		out = append(out, b)
		return true
	})
	return out
}

// madeAttempted parses "5-10" into 5, 10.
func madeAttempted(s string) (int, int) {
	m, a, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0
	}
	made, _ := strconv.Atoi(m)
	att, _ := strconv.Atoi(a)
	return made, att
}
