package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

func formatMinutes(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatPeriodSummary creates the Slack message for a finished period using Block Kit.
func (s *Notifier) formatPeriodSummary(match *roster.MatchRecord, period int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⏱️ Period %d of %d done", period, match.PeriodCount), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s", match.TeamName, match.Opponent)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var lines []string
	for _, id := range match.SquadIDs {
		p := rotation.FindPlayer(match.Players, id)
		if p == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s — %s on the field", p.Name, formatMinutes(p.Stats.TimeOnFieldSeconds)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Playing time:\n"+strings.Join(lines, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchReport creates the end-of-match Slack message with the final fairness scores.
func (s *Notifier) formatMatchReport(match *roster.MatchRecord, snapshots []roster.StatSnapshot) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Full time!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s", match.TeamName, match.Opponent)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var lines []string
	for _, snap := range snapshots {
		lines = append(lines, fmt.Sprintf("• %s — %s played, points G %.1f / D %.1f / A %.1f",
			snap.PlayerName, formatMinutes(snap.Stats.TimeOnFieldSeconds+snap.Stats.TimeAsGoalieSeconds),
			snap.Points.Goalie, snap.Points.Defender, snap.Points.Attacker))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Final stats:\n"+strings.Join(lines, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSubstitutionSuggestions creates the rotation suggestion message: the first
// few players most owed playing time.
func (s *Notifier) formatSubstitutionSuggestions(match *roster.MatchRecord, suggestions []rotation.Suggestion) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔄 Next up", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for i, sug := range suggestions {
		if i >= 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%.1f points, %s on the field)",
			i+1, sug.PlayerName, sug.Points.Total(), formatMinutes(sug.TimeOnFieldSeconds)))
	}
	text := "No squad players to suggest."
	if len(lines) > 0 {
		text = strings.Join(lines, "\n")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil))

	var contextElements []slack.MixedElement
	contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("%s vs %s — period %d", match.TeamName, match.Opponent, match.CurrentPeriod), true, false))
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}

// formatFairnessLeaderboard creates the cross-match standings message.
func (s *Notifier) formatFairnessLeaderboard(entries []roster.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📊 Season playing time", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s — %s over %d matches (%.1f points)",
			i+1, e.PlayerName, formatMinutes(e.TimeOnFieldSeconds), e.Matches, e.TotalPoints))
	}
	text := "No matches recorded yet."
	if len(lines) > 0 {
		text = strings.Join(lines, "\n")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
