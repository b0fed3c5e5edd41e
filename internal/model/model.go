package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Side identifies which team a play, player or event belongs to.
type Side int

const (
	SideUnknown Side = 0
	SideAway    Side = 1
	SideHome    Side = 2
)

func (s Side) String() string {
	switch s {
	case SideAway:
		return "away"
	case SideHome:
		return "home"
	default:
		return "?"
	}
}

// Opponent returns the other side. SideUnknown has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideAway:
		return SideHome
	case SideHome:
		return SideAway
	default:
		return SideUnknown
	}
}

// ParseSide maps "away"/"home" (any case) to a Side.
func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "away":
		return SideAway
	case "home":
		return SideHome
	default:
		return SideUnknown
	}
}

// Gender selects the regulation format: men's games are two halves,
// women's games are four quarters.
type Gender string

const (
	GenderMen   Gender = "M"
	GenderWomen Gender = "W"
)

// ParseGender accepts "M"/"W" and a few spelled-out variants; anything else is men's.
func ParseGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WOMEN", "WOMENS", "F":
		return GenderWomen
	default:
		return GenderMen
	}
}

// FinalPeriod is the last regulation period: 2 (second half) or 4 (fourth quarter).
func (g Gender) FinalPeriod() int {
	if g == GenderWomen {
		return 4
	}
	return 2
}

// PeriodLabel names a period: H1/H2 for halves, Q1-Q4 for quarters, OT1.. beyond regulation.
func (g Gender) PeriodLabel(period int) string {
	final := g.FinalPeriod()
	switch {
	case period > final:
		return fmt.Sprintf("OT%d", period-final)
	case g == GenderWomen:
		return fmt.Sprintf("Q%d", period)
	default:
		return fmt.Sprintf("H%d", period)
	}
}

// ---- Inputs ----

// Play is one event of the chronological play-by-play feed.
// AwayScore/HomeScore are the cumulative score after the play.
type Play struct {
	Time       string // clock remaining in the period, "M:SS"
	Period     int    // 1-based
	Side       Side
	Player     string
	Team       string
	ScoreValue int    // explicit points for the play; 0 when the feed does not carry it
	PlayType   string // e.g. "made_three", "made_ft", "missed_fg", "turnover"
	IsScoring  bool
	AwayScore  int
	HomeScore  int
	Text       string
}

// Score renders the post-play score as "away-home".
func (p Play) Score() string {
	return FormatScore(p.AwayScore, p.HomeScore)
}

// FormatScore renders an "away-home" score string.
func FormatScore(away, home int) string {
	return fmt.Sprintf("%d-%d", away, home)
}

// ParseScore parses an "away-home" score string.
func ParseScore(s string) (away, home int, ok bool) {
	a, h, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	away, err1 := strconv.Atoi(strings.TrimSpace(a))
	home, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return away, home, true
}

// GameContext holds the immutable per-game facts every analyzer needs.
type GameContext struct {
	GameID    string
	Date      string
	Gender    Gender
	AwayTeam  string
	HomeTeam  string
	FinalAway int
	FinalHome int
	Winner    Side
}

// FinalPeriod is the last regulation period for this game's format.
func (c GameContext) FinalPeriod() int {
	return c.Gender.FinalPeriod()
}

// TeamName returns the team name for a side.
func (c GameContext) TeamName(s Side) string {
	switch s {
	case SideAway:
		return c.AwayTeam
	case SideHome:
		return c.HomeTeam
	default:
		return ""
	}
}

// WinnerTeam is the name of the winning team.
func (c GameContext) WinnerTeam() string {
	return c.TeamName(c.Winner)
}

// Margin is the absolute final margin.
func (c GameContext) Margin() int {
	m := c.FinalAway - c.FinalHome
	if m < 0 {
		return -m
	}
	return m
}

// FinalScore renders the final score as "away-home".
func (c GameContext) FinalScore() string {
	return FormatScore(c.FinalAway, c.FinalHome)
}

// NewGameContext builds a GameContext whose final score and winner come from the
// box-score tally, falling back to the last play's score when the box score is
// absent (0-0). A tie resolves to the away side.
func NewGameContext(gameID, date string, gender Gender, awayTeam, homeTeam string, boxAway, boxHome int, plays []Play) GameContext {
	ctx := GameContext{
		GameID:    gameID,
		Date:      date,
		Gender:    gender,
		AwayTeam:  awayTeam,
		HomeTeam:  homeTeam,
		FinalAway: boxAway,
		FinalHome: boxHome,
	}
	if boxAway == 0 && boxHome == 0 && len(plays) > 0 {
		last := plays[len(plays)-1]
		ctx.FinalAway, ctx.FinalHome = last.AwayScore, last.HomeScore
	}
	if ctx.FinalHome > ctx.FinalAway {
		ctx.Winner = SideHome
	} else {
		ctx.Winner = SideAway
	}
	return ctx
}

// TeamLineScore is one team's period-by-period scoring.
// Periods holds regulation periods only (halves or quarters); OT holds overtime periods.
type TeamLineScore struct {
	Periods []int
	OT      []int
}

// LineScore pairs both teams' period scoring.
type LineScore struct {
	Away TeamLineScore
	Home TeamLineScore
}

// PlayerBoxLine is one player's finished-game totals.
type PlayerBoxLine struct {
	Name     string
	ID       string
	Team     string
	Opponent string
	Side     Side

	PTS, TRB, AST, STL, BLK int
	ORB, DRB                int
	TOV, PF                 int
	FG, FGA                 int
	FG3, FG3A               int
	FT, FTA                 int
	Minutes                 float64
}

func (b *PlayerBoxLine) FGPct() float64 {
	if b.FGA == 0 {
		return 0
	}
	return float64(b.FG) / float64(b.FGA)
}

func (b *PlayerBoxLine) FG3Pct() float64 {
	if b.FG3A == 0 {
		return 0
	}
	return float64(b.FG3) / float64(b.FG3A)
}

func (b *PlayerBoxLine) FTPct() float64 {
	if b.FTA == 0 {
		return 0
	}
	return float64(b.FT) / float64(b.FTA)
}

// EFGPct is (FG + 0.5*3P) / FGA.
func (b *PlayerBoxLine) EFGPct() float64 {
	if b.FGA == 0 {
		return 0
	}
	return (float64(b.FG) + 0.5*float64(b.FG3)) / float64(b.FGA)
}

// TSPct is PTS / (2 * (FGA + 0.44*FTA)).
func (b *PlayerBoxLine) TSPct() float64 {
	denom := 2 * (float64(b.FGA) + 0.44*float64(b.FTA))
	if denom == 0 {
		return 0
	}
	return float64(b.PTS) / denom
}

// GameScore is Hollinger's single-game productivity measure.
func (b *PlayerBoxLine) GameScore() float64 {
	return float64(b.PTS) + 0.4*float64(b.FG) - 0.7*float64(b.FGA) -
		0.4*float64(b.FTA-b.FT) + 0.7*float64(b.ORB) + 0.3*float64(b.DRB) +
		float64(b.STL) + 0.7*float64(b.AST) + 0.7*float64(b.BLK) -
		0.4*float64(b.PF) - float64(b.TOV)
}

// Snapshot copies the counting stats carried on a milestone entry.
func (b *PlayerBoxLine) Snapshot() StatSnapshot {
	return StatSnapshot{
		PTS: b.PTS, TRB: b.TRB, AST: b.AST, STL: b.STL, BLK: b.BLK,
		FG: b.FG, FGA: b.FGA, FG3: b.FG3, FG3A: b.FG3A, FT: b.FT, FTA: b.FTA,
		TOV: b.TOV, Minutes: b.Minutes,
	}
}

// ParseMinutesPlayed accepts "MM:SS" or a plain decimal and returns decimal minutes.
// Unparseable input yields 0.
func ParseMinutesPlayed(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return 0
	}
	if m, sec, ok := strings.Cut(s, ":"); ok {
		mi, err1 := strconv.Atoi(m)
		se, err2 := strconv.Atoi(sec)
		if err1 != nil || err2 != nil {
			return 0
		}
		return float64(mi) + float64(se)/60.0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// RawGame bundles every input for one game.
type RawGame struct {
	SourceHash string // sha256 of the source file
	Context    GameContext
	Plays      []Play
	AwayBox    []PlayerBoxLine
	HomeBox    []PlayerBoxLine
	LineScore  *LineScore // nil when the source carries no period scoring
}

// ---- Outputs ----

// ScoringSpan is the part shared by team runs and player streaks.
type ScoringSpan struct {
	Points      int
	StartTime   string
	EndTime     string
	StartPeriod int
	EndPeriod   int
	StartScore  string // score before the first play of the span
	EndScore    string
}

// Run is consecutive scoring by one team with no opponent points in between.
type Run struct {
	Team string
	Side Side
	ScoringSpan
}

// Streak is consecutive scoring by one player with no other player scoring in between.
type Streak struct {
	Player string
	Team   string
	Side   Side
	ScoringSpan
}

// ComebackResult describes the largest deficit the eventual winner faced.
type ComebackResult struct {
	Team          string
	Side          Side
	Deficit       int
	DeficitTime   string
	DeficitPeriod int
	DeficitScore  string
	NeverTrailed  bool
	FinalScore    string
}

// ClutchLine is one player's scoring inside the clutch window.
type ClutchLine struct {
	Player     string
	Side       Side
	Points     int
	FGMakes    int
	FTMakes    int
	ThreeMakes int
}

// ClutchScoring is the clutch window split by side, each sorted by points desc.
type ClutchScoring struct {
	Away []ClutchLine
	Home []ClutchLine
}

// WinningShot is a go-ahead basket by the eventual winner.
type WinningShot struct {
	Player   string
	Team     string
	Side     Side
	Time     string
	Period   int
	Points   int
	PlayType string
	Score    string
	Text     string
}

// WinningShots holds the decisive shot (last go-ahead by the winner) and the
// clutch go-ahead (last such shot inside the final 2 minutes of regulation).
// Either may be nil.
type WinningShots struct {
	Decisive      *WinningShot
	ClutchGoAhead *WinningShot
}

// StatSnapshot is the stat line attached to a milestone entry.
type StatSnapshot struct {
	PTS, TRB, AST, STL, BLK int
	FG, FGA                 int
	FG3, FG3A               int
	FT, FTA                 int
	TOV                     int
	Minutes                 float64
}

// MilestoneEntry is one achievement earned by a player (or team, for
// play-by-play milestones, in which case Player is empty).
type MilestoneEntry struct {
	Category string
	Player   string
	PlayerID string
	Team     string
	Opponent string
	Side     Side
	Stats    StatSnapshot
	Detail   string
}

// SpecialEvents are per-game flags derived from the final and period scores.
type SpecialEvents struct {
	Overtime        bool
	OvertimePeriods int
	Blowout         bool
	BlowoutMargin   int
	BlowoutWinner   Side
	CloseGame       bool
	FinalMargin     int
	ComebackWin     bool
	ComebackSide    Side
	ComebackDeficit int
}

// Highlights is the condensed view of a game's play-by-play analysis.
type Highlights struct {
	BestRun       *Run
	BestStreak    *Streak
	Comeback      *ComebackResult // only when the winner actually trailed
	TopClutch     *ClutchLine
	ClutchGoAhead *WinningShot
	Decisive      *WinningShot
}

// GameAnalysis bundles every output for one game.
type GameAnalysis struct {
	Context      GameContext
	PlayCount    int
	Runs         []Run
	Streaks      []Streak
	Comeback     *ComebackResult // nil when the game has no play-by-play
	Clutch       ClutchScoring
	WinningShots WinningShots
	Milestones   []MilestoneEntry
	Special      SpecialEvents
	Highlights   Highlights
}

// GameMilestone is a stored milestone entry with the game it was earned in.
type GameMilestone struct {
	GameID string
	Date   string
	MilestoneEntry
}

// CategoryCount is the number of stored entries in one milestone category.
type CategoryCount struct {
	Category string
	Count    int
}

// GameSummary is a lightweight record for list/show commands.
type GameSummary struct {
	GameID     string
	SourceHash string
	Date       string
	Gender     Gender
	AwayTeam   string
	HomeTeam   string
	AwayScore  int
	HomeScore  int
	Winner     Side
	PlayCount  int
	Events     string // special-events summary line, e.g. "OT, Close game"
}

// Summary builds the list-view record for an analysed game.
func (a *GameAnalysis) Summary(sourceHash, events string) GameSummary {
	return GameSummary{
		GameID:     a.Context.GameID,
		SourceHash: sourceHash,
		Date:       a.Context.Date,
		Gender:     a.Context.Gender,
		AwayTeam:   a.Context.AwayTeam,
		HomeTeam:   a.Context.HomeTeam,
		AwayScore:  a.Context.FinalAway,
		HomeScore:  a.Context.FinalHome,
		Winner:     a.Context.Winner,
		PlayCount:  a.PlayCount,
		Events:     events,
	}
}
