package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Thoth theme. Kept intentionally small: reusable styles and a few emojis.

const (
	IconScroll  = "📜"
	IconSeal    = "🔏"
	IconFlame   = "🔥"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconMoon    = "🌙"
	IconLoop    = "🔁"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StreakBar renders a 0/1 history as filled/empty dots, oldest first.
func StreakBar(history []int) string {
	if len(history) == 0 {
		return Muted.Render("(no sealed days yet)")
	}
	var b strings.Builder
	for _, day := range history {
		if day == 1 {
			b.WriteString(Good.Render("●"))
		} else {
			b.WriteString(Muted.Render("○"))
		}
	}
	return b.String()
}

func ImportanceText(importance string) string {
	switch strings.ToLower(strings.TrimSpace(importance)) {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Muted.Render("low")
	default:
		return Muted.Render(importance)
	}
}

func CategoryIcon(category string, completed bool) string {
	if completed {
		return IconDone
	}
	if category == "ritual" {
		return IconLoop
	}
	return IconScroll
}
