package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(clubStatusCmd)
	rootCmd.AddCommand(toggleClubCmd)
	rootCmd.AddCommand(clearCourtsCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(metricsCmd)

	timerCmd.AddCommand(timerStatusCmd)
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)
	timerCmd.AddCommand(timerResetCmd)
	timerCmd.AddCommand(timerSetDurationCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/health", "")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and print a session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"username":%q,"password":%q}`, args[0], args[1])
		return performRequest("POST", "/login", body)
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the current court board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/board", "")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <court>",
	Short: "Join a court directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/courts/"+url.PathEscape(args[0])+"/join", "")
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue <court>",
	Short: "Join a court's queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/courts/"+url.PathEscape(args[0])+"/queue", "")
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave <court>",
	Short: "Leave a court or its queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/courts/"+url.PathEscape(args[0])+"/leave", "")
	},
}

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Inspect and control the rotation timer",
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the rotation timer status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/timer/status", "")
	},
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the rotation timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/timer/start", "")
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Pause the rotation timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/timer/stop", "")
	},
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the rotation timer to its full duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/timer/reset", "")
	},
}

var timerSetDurationCmd = &cobra.Command{
	Use:   "set-duration <minutes>",
	Short: "Set the rotation duration in minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"minutes":%s}`, args[0])
		return performRequest("POST", "/timer/set-duration", body)
	},
}

var clubStatusCmd = &cobra.Command{
	Use:   "club-status",
	Short: "Show whether the club is active",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/club-status", "")
	},
}

var toggleClubCmd = &cobra.Command{
	Use:   "toggle-club",
	Short: "Toggle the club active flag",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/toggle-club-status", "")
	},
}

var clearCourtsCmd = &cobra.Command{
	Use:   "clear-courts",
	Short: "Clear all courts and queues",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/clear-courts", "")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the registered members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/members", "")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/metrics", "")
	},
}

func performRequest(method, endpoint, body string) error {
	requestURL := host + endpoint
	fmt.Printf("Making request to %s\n", requestURL)

	req, err := http.NewRequest(method, requestURL, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
