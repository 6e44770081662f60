package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

const bannerTimeout = 3 * time.Second

// Settings fields in focus order
const (
	sfName = iota
	sfTheme
	sfSave
	sfCount
)

type bannerExpired struct{ seq int }

// SettingsView edits the display name and theme
type SettingsView struct {
	env    *Env
	styles *styles.Styles
	keys   keys.KeyMap

	name  textinput.Model
	theme string
	focus int

	banner    string
	bannerSeq int
	err       string

	width  int
	height int
}

func NewSettingsView(env *Env) *SettingsView {
	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 100
	name.SetValue(env.Manager.DisplayName())

	return &SettingsView{
		env:    env,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		name:   name,
		theme:  env.Manager.Theme(),
	}
}

func (v *SettingsView) Init() tea.Cmd { return nil }

// Capturing is true while the name field has focus
func (v *SettingsView) Capturing() bool {
	return v.name.Focused()
}

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		return v, nil

	case bannerExpired:
		if msg.seq == v.bannerSeq {
			v.banner = ""
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back) && v.name.Focused():
			v.name.Blur()
			return v, nil

		case key.Matches(msg, v.keys.Save):
			return v, v.save()

		case msg.String() == "shift+tab":
			v.setFocus(cycle(v.focus, sfCount, -1))
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.setFocus(cycle(v.focus, sfCount, 1))
			return v, nil
		}

		switch v.focus {
		case sfName:
			if !v.name.Focused() {
				if key.Matches(msg, v.keys.Enter) || key.Matches(msg, v.keys.Edit) {
					v.name.Focus()
					return v, textinput.Blink
				}
				if key.Matches(msg, v.keys.Down) {
					v.setFocus(sfTheme)
				}
				return v, nil
			}
			if key.Matches(msg, v.keys.Enter) {
				v.setFocus(sfTheme)
				return v, nil
			}
			var cmd tea.Cmd
			v.name, cmd = v.name.Update(msg)
			return v, cmd

		case sfTheme:
			switch {
			case key.Matches(msg, v.keys.Up):
				v.setFocus(sfName)
			case key.Matches(msg, v.keys.Down):
				v.setFocus(sfSave)
			case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
				if v.theme == tracker.ThemeDark {
					v.theme = tracker.ThemeLight
				} else {
					v.theme = tracker.ThemeDark
				}
			}

		case sfSave:
			switch {
			case key.Matches(msg, v.keys.Up):
				v.setFocus(sfTheme)
			case key.Matches(msg, v.keys.Enter):
				return v, v.save()
			}
		}
	}
	return v, nil
}

// setFocus moves focus without entering the name field
func (v *SettingsView) setFocus(i int) {
	v.focus = i
	v.name.Blur()
}

// save persists both settings and shows the banner for a few seconds
func (v *SettingsView) save() tea.Cmd {
	v.err = ""
	v.name.Blur()
	if err := v.env.Manager.SetDisplayName(strings.TrimSpace(v.name.Value())); err != nil {
		v.err = v.env.fail(err, "save display name")
		return nil
	}

	var cmds []tea.Cmd
	if v.theme != v.env.Manager.Theme() {
		if err := v.env.Manager.SetTheme(v.theme); err != nil {
			v.err = v.env.fail(err, "save theme")
			return nil
		}
		styles.SetTheme(v.theme)
		v.styles = styles.NewStyles()
		cmds = append(cmds, func() tea.Msg { return ThemeChanged{} })
	}

	v.bannerSeq++
	v.banner = "Settings saved"
	seq := v.bannerSeq
	cmds = append(cmds, tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
		return bannerExpired{seq: seq}
	}))
	return tea.Batch(cmds...)
}

func (v *SettingsView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	nameStyle, themeStyle, btnStyle := s.Input, s.Input, s.Button
	switch v.focus {
	case sfName:
		nameStyle = s.InputFocused
	case sfTheme:
		themeStyle = s.InputFocused
	case sfSave:
		btnStyle = s.ButtonFocused
	}

	light, dark := s.Tab.Render("Light"), s.Tab.Render("Dark")
	if v.theme == tracker.ThemeDark {
		dark = s.TabActive.Render("Dark")
	} else {
		light = s.TabActive.Render("Light")
	}

	rows := []string{
		s.Title.Render("Settings"),
		"",
		"Display name:",
		nameStyle.Width(inputWidth).Render(v.name.View()),
		"",
		"Theme:",
		themeStyle.Width(inputWidth).Render(lipgloss.JoinHorizontal(lipgloss.Center, light, " ", dark)),
		"",
		btnStyle.Render(" Save "),
		"",
	}
	if v.banner != "" {
		rows = append(rows, s.Success.Render("✓ "+v.banner))
	}
	if v.err != "" {
		rows = append(rows, statusLine(s, v.err))
	}
	rows = append(rows, s.TitleMuted.Render("Tab: next • ↵: edit/toggle • Ctrl+S: save"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}
