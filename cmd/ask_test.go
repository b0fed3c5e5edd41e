package cmd

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/pable/go-hoops-metrics/internal/milestone"
	"github.com/pable/go-hoops-metrics/internal/model"
)

// Milestones are grouped by category, and team milestones fall back to the team name.
func TestBuildGameJSON_GroupsMilestones(t *testing.T) {
	a := &model.GameAnalysis{
		Context: model.GameContext{Gender: model.GenderWomen, AwayTeam: "Away U", HomeTeam: "Home St",
			FinalAway: 70, FinalHome: 64, Winner: model.SideAway},
		Milestones: []model.MilestoneEntry{
			{Category: milestone.ThirtyPointGames, Player: "Alice Archer", Detail: "31 points"},
			{Category: milestone.FifteenPointTeamRun, Team: "Away U", Detail: "15-0 run in Q3"},
			{Category: milestone.ThirtyPointGames, Player: "Hana Holt", Detail: "30 points"},
		},
		Comeback: &model.ComebackResult{Team: "Away U", Deficit: 12, DeficitPeriod: 2, DeficitTime: "4:10", DeficitScore: "20-32"},
	}
	data, err := buildGameJSON(a)
	if err != nil {
		t.Fatalf("buildGameJSON: %v", err)
	}
	doc := gjson.Parse(data)

	scorers := doc.Get("milestones." + milestone.ThirtyPointGames).Array()
	if len(scorers) != 2 || scorers[0].String() != "Alice Archer (31 points)" || scorers[1].String() != "Hana Holt (30 points)" {
		t.Errorf("scoring group: %v", scorers)
	}
	if got := doc.Get("milestones." + milestone.FifteenPointTeamRun + ".0").String(); got != "Away U (15-0 run in Q3)" {
		t.Errorf("team run group: %q", got)
	}
	if got := doc.Get("comeback.when").String(); got != "Q2 4:10" {
		t.Errorf("comeback when: %q", got)
	}
	if got := doc.Get("format").String(); got != "women, four quarters" {
		t.Errorf("format: %q", got)
	}
}
