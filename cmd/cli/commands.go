package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clubID     string
	categoryID string
	matchFile  string
	dryRun     bool
)

func init() {
	membersCmd.Flags().StringVar(&clubID, "club", "", "Club id to list members for")
	matchesCmd.Flags().StringVar(&categoryID, "category", "", "Category id to list matches for")
	standingsCmd.Flags().StringVar(&categoryID, "category", "", "Category id to compute standings for")
	statsCmd.Flags().StringVar(&categoryID, "category", "", "Category id to compute stats for")
	recordCmd.Flags().StringVar(&matchFile, "file", "", "Path to a JSON match request ('-' for stdin)")
	recordCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and score without persisting")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of a club",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members?club_id=" + url.QueryEscape(clubID))
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the recorded matches of a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches?category_id=" + url.QueryEscape(categoryID))
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a match result from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchFile == "" {
			return fmt.Errorf("--file is required")
		}
		var body []byte
		var err error
		if matchFile == "-" {
			body, err = io.ReadAll(os.Stdin)
		} else {
			body, err = os.ReadFile(matchFile)
		}
		if err != nil {
			return fmt.Errorf("failed to read match request: %w", err)
		}

		endpoint := "/matches"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, string(body))
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the points table of a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings?category_id=" + url.QueryEscape(categoryID))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the per-player rollup of a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats?category_id=" + url.QueryEscape(categoryID))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
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
