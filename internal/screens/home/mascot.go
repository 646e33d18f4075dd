package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/histquiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Gold, last quiz went well
	MascotAlert                            // Brass, no LLM configured
)

const mascotIdle = ` ╭─────╮
 │ ◉ ◉ │
 │  ▽  │
╭┴─────┴╮
│ 1914  │
│ 1945  │
╰───────╯`

const mascotCelebrating = ` ╭─────╮
 │ ★ ★ │
 │  ▿  │
╭┴─────┴╮
│ 1914  │
│ 1945  │
╰─╥───╥─╯
  ╚═══╝`

const mascotAlert = ` ╭─────╮
 │ ◉ ◉ │ !
 │  ▽  │
╭┴─────┴╮
│ 1914  │
│ 1945  │
╰───────╯`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
