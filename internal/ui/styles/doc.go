// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chatguru TUI.

All colors use Lip Gloss AdaptiveColor so the palette follows the terminal
background; a Theme can also pin dark or light explicitly.

# Color System (colors.go)

  - NeonPink, NeonPurple, NeonBlue, NeonCyan: brand accents
  - NeonOrange, NeonRed: warnings and errors
  - ToneColor: one accent per comment tone

# Theme (theme.go)

Theme bundles every lipgloss.Style the screens use. NewTheme detects the
color profile with termenv and resolves "dark", "light" or "auto".
*/
package styles
