package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/chakra"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/centers"
	"github.com/abhisek/aura/internal/screens/history"
	"github.com/abhisek/aura/internal/screens/placeholder"
	"github.com/abhisek/aura/internal/screens/questionnaire"
	"github.com/abhisek/aura/internal/screens/soundbath"
	"github.com/abhisek/aura/internal/ui/components"
)

type stats struct {
	minutes     int
	streak      int
	practiced   bool
	lastPrimary chakra.ID
}

type statsLoadedMsg stats

// StatsChangedMsg is broadcast after home reloads, so the app header can
// show the same numbers.
type StatsChangedMsg struct {
	Minutes int
	Streak  int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       screen.Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	deps = deps.WithDefaults()
	h := &HomeScreen{deps: deps}

	h.menuLabels = []string{"BALANCE CHECK", "SOUND HEALING", "ENERGY CENTERS", "HISTORY", "QUIT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			return router.Push(questionnaire.New(h.deps))
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return router.Push(soundbath.New(h.deps, h.focus(), false))
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return router.Push(centers.New(h.deps))
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			if h.deps.Assessments == nil && h.deps.Meditations == nil {
				return router.Push(placeholder.New("History", "History needs the local database, which could not be opened."))
			}
			return router.Push(history.New(h.deps.Assessments, h.deps.Meditations))
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// focus is the center to open the sound bath on: the last assessment's
// primary, or the heart.
func (h *HomeScreen) focus() chakra.ID {
	if h.stats.lastPrimary.Valid() {
		return h.stats.lastPrimary
	}
	return chakra.Heart
}

func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		var st stats
		if deps.Meditations != nil {
			if d, err := deps.Meditations.TotalDuration(ctx); err == nil {
				st.minutes = int(d.Minutes())
				st.practiced = d > 0
			}
			st.streak, _ = deps.Meditations.Streak(ctx, time.Now())
		}
		if deps.Assessments != nil {
			if rec, err := deps.Assessments.Latest(ctx); err == nil && rec != nil {
				st.lastPrimary = rec.Primary
			}
		}
		return statsLoadedMsg(st)
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = stats(msg)
		return h, func() tea.Msg {
			return StatsChangedMsg{Minutes: h.stats.minutes, Streak: h.stats.streak}
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderLotus(lotusFor(h.stats.streak, h.stats.practiced), h.stats.lastPrimary, cw))
	}
	sections = append(sections,
		renderStatsBar(h.stats, cw, compact),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	)

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
