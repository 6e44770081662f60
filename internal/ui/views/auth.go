package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

type landingChoice struct {
	label  string
	action router.Action
}

var landingChoices = []landingChoice{
	{"Log in", router.Navigate{Page: router.PageLogin}},
	{"Sign up", router.Navigate{Page: router.PageSignup}},
}

// LandingView is the public start page
type LandingView struct {
	styles *styles.Styles
	keys   keys.KeyMap
	cursor int
	width  int
	height int
}

func NewLandingView() *LandingView {
	return &LandingView{styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *LandingView) Init() tea.Cmd { return nil }

func (v *LandingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Up), key.Matches(msg, v.keys.Left):
			v.cursor = cycle(v.cursor, len(landingChoices), -1)
		case key.Matches(msg, v.keys.Down), key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Tab):
			v.cursor = cycle(v.cursor, len(landingChoices), 1)
		case key.Matches(msg, v.keys.Enter):
			return v, goTo(landingChoices[v.cursor].action)
		}
	}
	return v, nil
}

func (v *LandingView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	buttons := make([]string, len(landingChoices))
	for i, c := range landingChoices {
		style := s.Button
		if i == v.cursor {
			style = s.ButtonFocused
		}
		buttons[i] = style.Render(c.label)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("dues"),
		"",
		"Never miss a deadline again.",
		s.TitleMuted.Render("Track assignments, quizzes, exams and projects across every course."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons[0], "  ", buttons[1]),
		"",
		s.TitleMuted.Render("↵ select • q quit"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

// AuthView is the login or signup form. Any non-empty credentials are
// accepted; only the signup name is kept.
type AuthView struct {
	styles *styles.Styles
	keys   keys.KeyMap
	signup bool

	inputs []textinput.Model // signup: name, email, password; login: email, password
	focus  int               // len(inputs) is the submit button
	err    string
	width  int
	height int
}

func NewAuthView(signup bool) *AuthView {
	email := textinput.New()
	email.Placeholder = "you@university.edu"
	email.CharLimit = 100

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	inputs := []textinput.Model{email, password}
	if signup {
		name := textinput.New()
		name.Placeholder = "Your name"
		name.CharLimit = 100
		inputs = append([]textinput.Model{name}, inputs...)
	}

	v := &AuthView{
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		signup: signup,
		inputs: inputs,
	}
	v.updateFocus()
	return v
}

func (v *AuthView) Init() tea.Cmd { return textinput.Blink }

// Capturing is always true: every key may be typed into a field
func (v *AuthView) Capturing() bool { return true }

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			return v, goTo(router.Navigate{Page: router.PageLanding})

		case msg.String() == "ctrl+o":
			// switch between login and signup
			other := router.PageSignup
			if v.signup {
				other = router.PageLogin
			}
			return v, goTo(router.Navigate{Page: other})

		case key.Matches(msg, v.keys.Save):
			return v, v.submit()

		case msg.String() == "shift+tab" || msg.String() == "up":
			v.focus = cycle(v.focus, len(v.inputs)+1, -1)
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab) || msg.String() == "down":
			v.focus = cycle(v.focus, len(v.inputs)+1, 1)
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focus == len(v.inputs) {
				return v, v.submit()
			}
			v.focus++
			v.updateFocus()
			return v, nil
		}

		if v.focus < len(v.inputs) {
			var cmd tea.Cmd
			v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

func (v *AuthView) submit() tea.Cmd {
	for _, in := range v.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			v.err = "Please fill in every field"
			return nil
		}
	}
	v.err = ""
	if v.signup {
		return goTo(router.Signup{Name: strings.TrimSpace(v.inputs[0].Value())})
	}
	return goTo(router.Login{})
}

func (v *AuthView) updateFocus() {
	for i := range v.inputs {
		if i == v.focus {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v *AuthView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	labels := []string{"Email:", "Password:"}
	title, button, other := "Log in", " Log in ", "Ctrl+O: sign up"
	if v.signup {
		labels = append([]string{"Name:"}, labels...)
		title, button, other = "Create an account", " Sign up ", "Ctrl+O: log in"
	}

	rows := []string{s.Title.Render(title), ""}
	for i, in := range v.inputs {
		style := s.Input
		if i == v.focus {
			style = s.InputFocused
		}
		rows = append(rows, labels[i], style.Width(inputWidth).Render(in.View()))
	}

	btnStyle := s.Button
	if v.focus == len(v.inputs) {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows,
		"",
		btnStyle.Render(button),
		statusLine(s, v.err),
		s.TitleMuted.Render("Tab: next • ↵: submit • "+other+" • Esc: back"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}
