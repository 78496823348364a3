// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - doctor command implementation.
//
// Command: doctor
// Aliases: diag
//
// Health Checks Performed:
//   1. Config Valid       - config file decodes and validates
//   2. API Key            - backend.api_key is set
//   3. Backend Reachable  - the functions root answers HTTP
//   4. Database           - the chat database opens and is queryable
//   5. Settings           - the settings file opens (warns if locked)
//   6. Terminal           - stdout is a terminal wide enough for the TUI
//
// Exit Codes:
//   0   No check failed
//   1   One or more checks failed
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/chatguru/chatguru-tui/internal/config"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
)

// backendProbeTimeout bounds the reachability check.
const backendProbeTimeout = 5 * time.Second

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
)

// String returns the lowercase name used in JSON output.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the styled marker for the check status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return checkPassStyle.Render("[OK]")
	case CheckWarn:
		return checkWarnStyle.Render("[!!]")
	case CheckFail:
		return checkFailStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + fixStyle.Render("-> "+c.Fix)
	}
	return result
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

// HandleDoctor runs every health check and reports the results.
func HandleDoctor(args Args, w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checks := runAllChecks(ctx, args)

	passed, warned, failed := 0, 0, 0
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			passed++
		case CheckWarn:
			warned++
		case CheckFail:
			failed++
		}
	}

	if args.JSON {
		return handleDoctorJSON(w, checks, passed, warned, failed)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("chatguru Doctor"))
	fmt.Fprintln(w, RenderSeparator(41))
	fmt.Fprintln(w)
	for _, check := range checks {
		fmt.Fprintln(w, check.Render())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, SeparatorStyle.Render(strings.Repeat("-", 41)))

	summaryParts := []string{fmt.Sprintf("%d passed", passed)}
	if warned > 0 {
		summaryParts = append(summaryParts, checkWarnStyle.Render(fmt.Sprintf("%d warning", warned)))
	}
	if failed > 0 {
		summaryParts = append(summaryParts, checkFailStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintln(w, DimStyle.Render(strings.Join(summaryParts, ", ")))
	fmt.Fprintln(w)

	if failed > 0 {
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	return nil
}

func handleDoctorJSON(w io.Writer, checks []*HealthCheck, passed, warned, failed int) error {
	jsonChecks := make([]DoctorCheck, 0, len(checks))
	for _, check := range checks {
		jsonChecks = append(jsonChecks, DoctorCheck{
			Name:    check.Name,
			Status:  check.Status.String(),
			Message: check.Message,
			Fix:     check.Fix,
		})
	}

	resp := NewJSONResponse("doctor", DoctorData{
		Checks: jsonChecks,
		Summary: DoctorSummary{
			Passed:  passed,
			Warned:  warned,
			Failed:  failed,
			Healthy: failed == 0,
		},
	})
	if failed > 0 {
		errMsg := fmt.Sprintf("%d health check(s) failed", failed)
		resp.Success = false
		resp.Error = &errMsg
	}
	if err := resp.Print(w); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	return nil
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// runAllChecks stops after the config check if the config cannot load,
// since every other check depends on it.
func runAllChecks(ctx context.Context, args Args) []*HealthCheck {
	cfg, check := checkConfigValid(args)
	checks := []*HealthCheck{check}
	if cfg == nil {
		return checks
	}

	checks = append(checks,
		checkAPIKey(cfg),
		checkBackendReachable(ctx, cfg, http.DefaultClient),
		checkDatabase(ctx, cfg),
		checkSettings(cfg),
		checkTerminal(),
	)
	return checks
}

func checkConfigValid(args Args) (*config.Config, *HealthCheck) {
	check := &HealthCheck{Name: "Config Valid"}

	cfg, err := LoadConfig(args)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config invalid: %s", err)
		check.Fix = "Run: chatguru config reset"
		return nil, check
	}

	check.Status = CheckPass
	check.Message = "Config valid"
	return cfg, check
}

func checkAPIKey(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "API Key"}
	if strings.TrimSpace(cfg.Backend.APIKey) == "" {
		check.Status = CheckFail
		check.Message = "No backend API key configured"
		check.Fix = "Run: chatguru config set backend.api_key <key>  (or set CHATGURU_API_KEY)"
		return check
	}
	check.Status = CheckPass
	check.Message = "Backend API key configured"
	return check
}

// checkBackendReachable counts any HTTP answer below 500 as reachable;
// the functions root itself usually answers 404.
func checkBackendReachable(ctx context.Context, cfg *config.Config, hc *http.Client) *HealthCheck {
	check := &HealthCheck{Name: "Backend Reachable"}

	ctx, cancel := context.WithTimeout(ctx, backendProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Backend.BaseURL, nil)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Invalid backend URL: %s", err)
		return check
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Backend unreachable: %s", err)
		check.Fix = "Check backend.base_url and your network connection"
		return check
	}
	resp.Body.Close()

	elapsed := time.Since(start).Round(time.Millisecond)
	if resp.StatusCode >= 500 {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Backend answered HTTP %d in %s", resp.StatusCode, elapsed)
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Backend reachable (HTTP %d in %s)", resp.StatusCode, elapsed)
	return check
}

func checkDatabase(ctx context.Context, cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "Database"}
	path := cfg.DatabasePath()

	store, err := storage.Open(ctx, path)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not open chat database: %s", err)
		check.Fix = fmt.Sprintf("Check permissions on %s", path)
		return check
	}
	defer store.Close()

	n, err := store.CountChats(ctx)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Chat database unreadable: %s", err)
		check.Fix = fmt.Sprintf("Move %s aside to start fresh", path)
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Chat database OK (%d chats)", n)
	return check
}

func checkSettings(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "Settings"}

	prefs, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Settings unavailable: %s", err)
		check.Fix = "Close any running chatguru session and retry"
		return check
	}
	defer prefs.Close()

	check.Status = CheckPass
	check.Message = "Settings file OK"
	return check
}

func checkTerminal() *HealthCheck {
	check := &HealthCheck{Name: "Terminal"}
	if !IsStdoutTTY() {
		check.Status = CheckWarn
		check.Message = "stdout is not a terminal; the TUI needs one"
		return check
	}
	width, height := GetTerminalSize()
	if width < MinTerminalWidth {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Terminal is %dx%d; at least %d columns recommended", width, height, MinTerminalWidth)
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("Terminal %dx%d, %s", width, height, profileName())
	return check
}

func profileName() string {
	switch GetColorProfile() {
	case termenv.TrueColor:
		return "true color"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}
