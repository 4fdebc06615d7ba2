// Command smoke exercises a running agent server end to end.
package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

type client struct {
	baseURL string
	http    *http.Client
	verbose bool
}

func main() {
	c := &client{http: &http.Client{Timeout: 60 * time.Second}}

	root := &cobra.Command{
		Use:           "smoke",
		Short:         "Smoke tests for the artisan content agent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.baseURL, "url", "http://localhost:8080", "base URL of the agent")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "print response bodies")

	root.AddCommand(
		&cobra.Command{
			Use:   "all",
			Short: "Run every check against a fresh profile",
			RunE: func(*cobra.Command, []string) error {
				return c.runAll()
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check /health",
			RunE: func(*cobra.Command, []string) error {
				return report(c.testHealth())
			},
		},
		&cobra.Command{
			Use:   "agent-card",
			Short: "Check the A2A agent card",
			RunE: func(*cobra.Command, []string) error {
				return report(c.testAgentCard())
			},
		},
		&cobra.Command{
			Use:   "ask <message>",
			Short: "Send a free-text message to the A2A endpoint",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return report(c.testMessage(strings.Join(args, " ")))
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("✗ "+err.Error()))
		os.Exit(1)
	}
}

func report(ok bool) error {
	if !ok {
		return fmt.Errorf("check failed")
	}
	return nil
}

func (c *client) runAll() error {
	printHeader("Artisan Content Agent - Smoke Tests")
	fmt.Printf("%s %s\n\n", cyan("Base URL:"), c.baseURL)

	id, created := c.testCreateProfile()
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", c.testHealth},
		{"Agent Card", c.testAgentCard},
		{"Create Profile", func() bool { return created }},
		{"Recommendations", func() bool { return created && c.testRecommendations(id) }},
		{"Calendar", func() bool { return created && c.testCalendar(id) }},
		{"Export", func() bool { return created && c.testExport(id) }},
		{"A2A Strategy", func() bool { return created && c.testMessage("festival strategy for "+id) }},
	}

	passed, failed := 0, 0
	for _, tt := range tests {
		if tt.fn() {
			passed++
		} else {
			failed++
			fmt.Println(red("  ✗ " + tt.name))
		}
	}
	if created {
		c.deleteProfile(id)
	}

	printHeader("Summary")
	fmt.Println(green(fmt.Sprintf("Passed: %d", passed)))
	fmt.Println(red(fmt.Sprintf("Failed: %d", failed)))
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, passed+failed)
	}
	return nil
}

func (c *client) testHealth() bool {
	printTestHeader("Health Check")
	var body struct {
		Status          string `json:"status"`
		AnalysisEnabled bool   `json:"analysis_enabled"`
	}
	if !c.call(http.MethodGet, "/health", nil, http.StatusOK, &body) {
		return false
	}
	if body.Status != "healthy" {
		printError(fmt.Sprintf("expected status healthy, got %q", body.Status))
		return false
	}
	printSuccess(fmt.Sprintf("healthy (analysis enabled: %v)", body.AnalysisEnabled))
	return true
}

func (c *client) testAgentCard() bool {
	printTestHeader("Agent Card")
	var card map[string]any
	if !c.call(http.MethodGet, "/.well-known/agent.json", nil, http.StatusOK, &card) {
		return false
	}
	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := card[field]; !ok {
			printError("missing required field: " + field)
			return false
		}
	}
	printSuccess("agent card is valid")
	return true
}

func (c *client) testCreateProfile() (string, bool) {
	printTestHeader("Create Profile")
	payload := map[string]any{
		"name":                   "Smoke Test Potter",
		"location":               "Khurja, Uttar Pradesh",
		"specialization":         "pottery",
		"experience_years":       12,
		"signature_style":        "blue glazed terracotta",
		"target_audience":        "urban home decor buyers",
		"social_media_platforms": []string{"instagram", "youtube", "pinterest"},
	}
	var profile struct {
		ID string `json:"id"`
	}
	if !c.call(http.MethodPost, "/api/profiles", payload, http.StatusCreated, &profile) {
		return "", false
	}
	printSuccess("created " + profile.ID)
	return profile.ID, true
}

func (c *client) testRecommendations(id string) bool {
	printTestHeader("Recommendations")
	var body struct {
		Recommendations []struct {
			Title    string  `json:"title_suggestion"`
			Priority float64 `json:"priority_score"`
		} `json:"recommendations"`
	}
	if !c.call(http.MethodGet, "/api/profiles/"+id+"/recommendations?season=festival", nil, http.StatusOK, &body) {
		return false
	}
	if len(body.Recommendations) == 0 {
		printError("no recommendations returned")
		return false
	}
	for i := 1; i < len(body.Recommendations); i++ {
		if body.Recommendations[i].Priority > body.Recommendations[i-1].Priority {
			printError("recommendations are not ordered by priority")
			return false
		}
	}
	for _, r := range body.Recommendations {
		fmt.Printf("  %s %s\n", yellow(fmt.Sprintf("%.2f", r.Priority)), r.Title)
	}
	printSuccess(fmt.Sprintf("%d recommendations", len(body.Recommendations)))
	return true
}

func (c *client) testCalendar(id string) bool {
	printTestHeader("Calendar")
	var body struct {
		Calendar []struct {
			Date string `json:"date"`
		} `json:"calendar"`
	}
	if !c.call(http.MethodGet, "/api/profiles/"+id+"/calendar?days=14", nil, http.StatusOK, &body) {
		return false
	}
	if len(body.Calendar) != 14 {
		printError(fmt.Sprintf("expected 14 days, got %d", len(body.Calendar)))
		return false
	}
	if !c.call(http.MethodGet, "/api/profiles/"+id+"/calendar?days=0", nil, http.StatusBadRequest, nil) {
		return false
	}
	printSuccess(fmt.Sprintf("calendar from %s to %s", body.Calendar[0].Date, body.Calendar[13].Date))
	return true
}

func (c *client) testExport(id string) bool {
	printTestHeader("Export")
	var exported map[string]any
	if !c.call(http.MethodGet, "/api/profiles/export", nil, http.StatusOK, &exported) {
		return false
	}
	if _, ok := exported[id]; !ok {
		printError("export is missing " + id)
		return false
	}
	printSuccess(fmt.Sprintf("%d profiles exported", len(exported)))
	return true
}

func (c *client) testMessage(text string) bool {
	printTestHeader("A2A Message")
	fmt.Printf("%s %s\n", cyan("Message:"), text)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("smoke-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":  "message",
				"role":  "user",
				"parts": []map[string]any{{"kind": "text", "text": text}},
			},
			"configuration": map[string]any{"blocking": true},
		},
	}

	var resp struct {
		Error  *struct{ Message string } `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if !c.call(http.MethodPost, "/a2a/strategist", request, http.StatusOK, &resp) {
		return false
	}
	if resp.Error != nil {
		printError("rpc error: " + resp.Error.Message)
		return false
	}

	fmt.Println(strings.Repeat("=", 80))
	for _, p := range resp.Result.Status.Message.Parts {
		fmt.Println(p.Text)
	}
	fmt.Println(strings.Repeat("=", 80))

	if resp.Result.Status.State != "completed" {
		printError(fmt.Sprintf("expected state completed, got %q", resp.Result.Status.State))
		return false
	}
	printSuccess("task completed")
	return true
}

func (c *client) deleteProfile(id string) {
	c.call(http.MethodDelete, "/api/profiles/"+id, nil, http.StatusOK, nil)
}

// call sends payload as JSON and decodes the response into out when non-nil.
func (c *client) call(method, path string, payload any, want int, out any) bool {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			printError(err.Error())
			return false
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		printError(err.Error())
		return false
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	fmt.Println(gray(method + " " + c.baseURL + path))

	resp, err := c.http.Do(req)
	if err != nil {
		printError(fmt.Sprintf("request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if c.verbose {
		printJSON(data)
	}
	if resp.StatusCode != want {
		printError(fmt.Sprintf("expected status %d, got %d: %s", want, resp.StatusCode, data))
		return false
	}
	if out == nil {
		return true
	}
	if err := json.Unmarshal(data, out); err != nil {
		printError(fmt.Sprintf("invalid JSON response: %v", err))
		return false
	}
	return true
}

func printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	fmt.Printf("\n%s\n%s\n%s\n\n", blue(line), blue("= "+text+" ="), blue(line))
}

func printTestHeader(text string) {
	fmt.Println(cyan("[TEST] " + text))
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Println(green("✓ " + text))
}

func printError(text string) {
	fmt.Println(red("✗ " + text))
}

func printJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		fmt.Printf("%s\n%s\n", yellow("Response:"), pretty.String())
	}
}
