// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner()
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
	if cmd := s.Start(); cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if cmd := s.Start(); cmd != nil {
		t.Error("second Start() should not schedule another tick")
	}
	s.SetMessage("Writing")
	if !strings.Contains(s.View(), "Writing...") {
		t.Errorf("View() = %q", s.View())
	}
	s.Stop()
	if s.IsActive() || s.View() != "" {
		t.Error("stopped spinner should be inactive and empty")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{65 * time.Second, "1m 5s"},
	}
	for _, tc := range tests {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{48 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "Feb 8, 2025"},
	}
	for _, tc := range tests {
		if got := RelativeTime(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

// =============================================================================
// HEADER & STATUS BAR TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	h := Header{Title: "Sunset at the beach", Badge: "Hinglish", Width: 80}
	out := h.View(theme)
	for _, want := range []string{Brand, "Sunset at the beach", "Hinglish"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %q", want, out)
		}
	}
}

func TestHeader_TruncatesLongTitle(t *testing.T) {
	theme := styles.NewTheme("dark")
	h := Header{Title: strings.Repeat("very long title ", 20), Width: 40}
	out := h.View(theme)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line width %d exceeds 40: %q", w, line)
		}
	}
}

func TestStatusBar_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	disabled.SetEnabled(false)
	bar := StatusBar{
		Message: "Comment ready",
		Level:   LevelSuccess,
		Hints: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
			disabled,
		},
		Width: 80,
	}
	out := bar.View(theme)
	if !strings.Contains(out, "Comment ready") || !strings.Contains(out, "generate") {
		t.Errorf("status bar = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("disabled bindings should not be shown")
	}
}

func TestStatusBar_DropsHintsThatDontFit(t *testing.T) {
	theme := styles.NewTheme("dark")
	var hints []key.Binding
	for i := 0; i < 20; i++ {
		hints = append(hints, key.NewBinding(key.WithKeys("a"), key.WithHelp("ctrl+a", "something long")))
	}
	out := StatusBar{Hints: hints, Width: 50}.View(theme)
	if w := lipgloss.Width(out); w > 50 {
		t.Errorf("status bar width %d exceeds 50", w)
	}
}

// =============================================================================
// TONE PICKER TESTS
// =============================================================================

func TestTonePicker_DefaultsAndToggle(t *testing.T) {
	p := NewTonePicker(nil)
	if !reflect.DeepEqual(p.Selected(), model.DefaultTones) {
		t.Fatalf("Selected() = %v, want defaults", p.Selected())
	}

	// The only selected tone cannot be cleared.
	p.Toggle(0)
	if len(p.Selected()) != 1 {
		t.Errorf("last tone was cleared: %v", p.Selected())
	}

	if !p.HandleDigit("3") {
		t.Fatal("HandleDigit(3) should be handled")
	}
	want := []model.Tone{model.ToneFriend, model.ToneFunny}
	if !reflect.DeepEqual(p.Selected(), want) {
		t.Errorf("Selected() = %v, want %v", p.Selected(), want)
	}
	if p.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", p.Cursor())
	}

	p.Toggle(0)
	if !reflect.DeepEqual(p.Selected(), []model.Tone{model.ToneFunny}) {
		t.Errorf("Selected() = %v", p.Selected())
	}
}

func TestTonePicker_IgnoresBadInput(t *testing.T) {
	p := NewTonePicker([]model.Tone{"NOPE", model.TonePoetic})
	if !reflect.DeepEqual(p.Selected(), []model.Tone{model.TonePoetic}) {
		t.Errorf("Selected() = %v", p.Selected())
	}
	for _, s := range []string{"0", "8", "a", ""} {
		if p.HandleDigit(s) {
			t.Errorf("HandleDigit(%q) should not be handled", s)
		}
	}
	p.Toggle(-1)
	p.Toggle(99)
	if len(p.Selected()) != 1 {
		t.Errorf("out-of-range toggles changed selection: %v", p.Selected())
	}
}

func TestTonePicker_MoveWraps(t *testing.T) {
	p := NewTonePicker(nil)
	p.Move(-1)
	if p.Cursor() != len(model.AllTones)-1 {
		t.Errorf("Cursor() = %d after wrapping back", p.Cursor())
	}
	p.Move(1)
	if p.Cursor() != 0 {
		t.Errorf("Cursor() = %d after wrapping forward", p.Cursor())
	}
	p.ToggleCursor()
	if len(p.Selected()) != 1 {
		t.Error("toggling the only tone under the cursor should be refused")
	}
}

func TestTonePicker_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	p := NewTonePicker([]model.Tone{model.ToneRomantic})
	out := p.View(theme, true)
	if !strings.Contains(out, "[Romantic]") || !strings.Contains(out, "Friend") {
		t.Errorf("View() = %q", out)
	}
}

// =============================================================================
// BUBBLE & MARKDOWN TESTS
// =============================================================================

func TestBubble_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	md := NewMarkdown("notty", false)

	user := Bubble{Message: model.Message{Text: "what do you think?", IsUser: true, Timestamp: 1}, Width: 60, Markdown: md}
	if out := user.View(theme); !strings.Contains(out, "what do you think?") || !strings.Contains(out, "User") {
		t.Errorf("user bubble = %q", out)
	}

	imgOnly := Bubble{Message: model.Message{IsUser: true, ImageURI: "/tmp/a.jpg"}, Width: 60, Markdown: md}
	if out := imgOnly.View(theme); !strings.Contains(out, model.ImagePlaceholder) {
		t.Errorf("image bubble = %q", out)
	}

	ai := Bubble{Message: model.Message{Text: "Love this vibe!"}, Width: 60, Markdown: md, Selected: true}
	if out := ai.View(theme); !strings.Contains(out, "Love this vibe!") {
		t.Errorf("ai bubble = %q", out)
	}
}

func TestMarkdown_Render(t *testing.T) {
	off := NewMarkdown("dark", false)
	if got := off.Render("**hi**", 40); got != "**hi**" {
		t.Errorf("disabled Render() = %q", got)
	}

	var nilMD *Markdown
	if got := nilMD.Render("x", 40); got != "x" {
		t.Errorf("nil Render() = %q", got)
	}

	on := NewMarkdown("notty", true)
	got := on.Render("Great **shot**!", 40)
	if !strings.Contains(got, "Great") || !strings.Contains(got, "shot") {
		t.Errorf("Render() = %q", got)
	}
	if len(on.renderers) != 1 {
		t.Errorf("renderers cached = %d, want 1", len(on.renderers))
	}
	on.Render("again", 40)
	if len(on.renderers) != 1 {
		t.Error("renderer should be reused for the same width")
	}
}
