package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	matchID string
	dryRun  bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(addPlayersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(endPeriodCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(suggestionsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)

	for _, cmd := range []*cobra.Command{pauseCmd, resumeCmd, endPeriodCmd, finishCmd, pointsCmd, suggestionsCmd} {
		cmd.Flags().StringVar(&matchID, "match", "", "The match ID to act on")
		cmd.MarkFlagRequired("match")
	}
	for _, cmd := range []*cobra.Command{endPeriodCmd, finishCmd, suggestionsCmd, leaderboardCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log notifications instead of sending them")
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/roster", nil)
	},
}

var addPlayersCmd = &cobra.Command{
	Use:   "add-players [name]...",
	Short: "Add players to the roster",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/roster/add", map[string]any{"names": args})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all tracked matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches", nil)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/pause", matchParams())
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/resume", matchParams())
	},
}

var endPeriodCmd = &cobra.Command{
	Use:   "end-period",
	Short: "End the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/period/end", matchParams())
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the match and send the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/finish", matchParams())
	},
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the current fairness points for the squad",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/points", matchParams())
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Rank the squad for the next substitution",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match/suggestions", matchParams())
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the cross-match playing time leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard", matchParams())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func matchParams() url.Values {
	params := url.Values{}
	if matchID != "" {
		params.Set("matchID", matchID)
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	return params
}

func performGetRequest(endpoint string, params url.Values) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body any) error {
	target := host + endpoint
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Post(target, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
