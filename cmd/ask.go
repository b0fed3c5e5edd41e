package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/milestone"
	"github.com/pable/go-hoops-metrics/internal/model"
	"github.com/pable/go-hoops-metrics/internal/special"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

const askSystemPrompt = `You are a basketball game writer. You are given structured narrative data
for one game from a stats tool and a question about that game.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Cite specific numbers, players and game times when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Keep it short. A recap paragraph unless asked for more.

Glossary:
- Run: consecutive points by one team with no opponent points in between.
- Streak: consecutive points by one player with no other player scoring.
- Comeback deficit: the largest deficit the eventual winner faced.
- Clutch window: the final minutes of regulation.
- Decisive shot: the winner's last go-ahead basket of the game.
- Clutch go-ahead: the winner's last go-ahead basket in the final 2 minutes of regulation.
- Periods are halves (H1/H2) for men's games and quarters (Q1-Q4) for women's; OT follows.`

var (
	askModel    string
	askAPIKey   string
	askMarkdown bool
)

var askCmd = &cobra.Command{
	Use:   "ask <id-prefix> <question>",
	Short: "Ask an AI a grounded question about a stored game (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	askCmd.Flags().BoolVar(&askMarkdown, "markdown", false, "render the answer as terminal markdown once it completes")
}

func runAsk(cmd *cobra.Command, args []string) error {
	prefix, question := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	game, err := db.GetGameByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("no game found with id prefix %q", prefix)
	}
	a, err := db.GetAnalysis(game.GameID)
	if err != nil {
		return fmt.Errorf("get analysis: %w", err)
	}
	if a == nil {
		return fmt.Errorf("game %s has no stored analysis", game.GameID)
	}
	a.Highlights = aggregator.Summarize(a)

	data, err := buildGameJSON(a)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), askAPIKey, askModel, data, question, askMarkdown)
}

// buildGameJSON renders the stored analysis as a compact JSON document with
// period labels and team names resolved.
func buildGameJSON(a *model.GameAnalysis) (string, error) {
	ctx := a.Context
	g := ctx.Gender
	when := func(period int, t string) string {
		return g.PeriodLabel(period) + " " + t
	}

	type spanEntry struct {
		Who    string `json:"who"`
		Team   string `json:"team,omitempty"`
		Points int    `json:"points"`
		From   string `json:"from"`
		To     string `json:"to"`
		Score  string `json:"score"`
	}
	type shotEntry struct {
		Player string `json:"player"`
		Team   string `json:"team"`
		Points int    `json:"points"`
		Type   string `json:"type"`
		When   string `json:"when"`
		Score  string `json:"score"`
	}
	type clutchEntry struct {
		Player string `json:"player"`
		Team   string `json:"team"`
		Points int    `json:"points"`
		FGM    int    `json:"fgm"`
		ThreeM int    `json:"3pm"`
		FTM    int    `json:"ftm"`
	}

	runs := make([]spanEntry, 0, len(a.Runs))
	for _, r := range a.Runs {
		runs = append(runs, spanEntry{Who: r.Team, Points: r.Points,
			From: when(r.StartPeriod, r.StartTime), To: when(r.EndPeriod, r.EndTime),
			Score: r.StartScore + " to " + r.EndScore})
	}
	streaks := make([]spanEntry, 0, len(a.Streaks))
	for _, s := range a.Streaks {
		streaks = append(streaks, spanEntry{Who: s.Player, Team: s.Team, Points: s.Points,
			From: when(s.StartPeriod, s.StartTime), To: when(s.EndPeriod, s.EndTime),
			Score: s.StartScore + " to " + s.EndScore})
	}
	var clutch []clutchEntry
	for _, lines := range [][]model.ClutchLine{a.Clutch.Away, a.Clutch.Home} {
		for _, l := range lines {
			clutch = append(clutch, clutchEntry{Player: l.Player, Team: ctx.TeamName(l.Side),
				Points: l.Points, FGM: l.FGMakes, ThreeM: l.ThreeMakes, FTM: l.FTMakes})
		}
	}
	shot := func(s *model.WinningShot) *shotEntry {
		if s == nil {
			return nil
		}
		return &shotEntry{Player: s.Player, Team: s.Team, Points: s.Points, Type: s.PlayType,
			When: when(s.Period, s.Time), Score: s.Score}
	}
	milestones := make(map[string][]string)
	for category, entries := range milestone.GroupByCategory(a.Milestones) {
		for _, m := range entries {
			who := m.Player
			if who == "" {
				who = m.Team
			}
			milestones[category] = append(milestones[category], fmt.Sprintf("%s (%s)", who, m.Detail))
		}
	}

	format := "men, two halves"
	if g == model.GenderWomen {
		format = "women, four quarters"
	}
	doc := map[string]any{
		"date":            ctx.Date,
		"format":          format,
		"away":            ctx.AwayTeam,
		"home":            ctx.HomeTeam,
		"final_score":     ctx.FinalScore(),
		"winner":          ctx.WinnerTeam(),
		"events":          special.Summary(a.Special),
		"team_runs":       runs,
		"player_streaks":  streaks,
		"clutch":          clutch,
		"decisive_shot":   shot(a.WinningShots.Decisive),
		"clutch_go_ahead": shot(a.WinningShots.ClutchGoAhead),
		"milestones":      milestones,
	}
	if cb := a.Comeback; cb != nil && !cb.NeverTrailed {
		doc["comeback"] = map[string]any{
			"team":    cb.Team,
			"deficit": cb.Deficit,
			"when":    when(cb.DeficitPeriod, cb.DeficitTime),
			"score":   cb.DeficitScore,
		}
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic asks the model one question about dataJSON and streams the
// answer to stdout. With markdown set the answer is collected first and
// rendered through glamour.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string, markdown bool) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return errors.New("ask: no API key (set ANTHROPIC_API_KEY or pass --api-key)")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: askSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("GAME:\n" + dataJSON + "\n\nQUESTION: " + question)),
		},
	})

	var out io.Writer = os.Stdout
	var answer strings.Builder
	if markdown {
		out = &answer
	}
	fmt.Fprintf(os.Stdout, "\n== %s ==\n", question)
	for stream.Next() {
		evt := stream.Current()
		if evt.Type != "content_block_delta" {
			continue
		}
		if delta := evt.AsContentBlockDelta().Delta; delta.Type == "text_delta" {
			io.WriteString(out, delta.AsTextDelta().Text)
		}
	}
	if err := stream.Err(); err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return errors.New("ask: API key rejected")
		}
		return fmt.Errorf("ask: stream answer: %w", err)
	}

	if markdown {
		rendered, err := glamour.Render(answer.String(), "auto")
		if err != nil {
			slog.Debug("markdown render failed, printing raw answer", "err", err)
			rendered = answer.String()
		}
		fmt.Fprint(os.Stdout, rendered)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
