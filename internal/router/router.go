// Package router is the page state machine. It is pure: persisting the
// resulting state is left to the caller.
package router

// Page identifies a screen
type Page string

const (
	PageLanding       Page = "landing"
	PageLogin         Page = "login"
	PageSignup        Page = "signup"
	PageDashboard     Page = "dashboard"
	PageDeadlines     Page = "deadlines"
	PageCourses       Page = "courses"
	PageCourseDetails Page = "course-details"
	PageCalendar      Page = "calendar"
	PageSettings      Page = "settings"
)

// Pages lists every page identifier
var Pages = []Page{
	PageLanding, PageLogin, PageSignup,
	PageDashboard, PageDeadlines, PageCourses, PageCourseDetails, PageCalendar, PageSettings,
}

// ParsePage converts a stored identifier into a Page
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Public reports whether p is reachable without a session
func (p Page) Public() bool {
	return p == PageLanding || p == PageLogin || p == PageSignup
}

// State is the current position of the router
type State struct {
	Page          Page
	Authenticated bool
	CourseID      string // set only on PageCourseDetails
}

// Action is an input to Transition
type Action interface {
	action()
}

// Navigate asks for a page
type Navigate struct{ Page Page }

// Login starts a session; any credentials are accepted
type Login struct{}

// Signup starts a session for a new display name
type Signup struct{ Name string }

// Logout ends the session
type Logout struct{}

// ViewCourse opens the details page of a course
type ViewCourse struct{ ID string }

// CourseGone reports that the course on screen no longer exists
type CourseGone struct{}

func (Navigate) action()   {}
func (Login) action()      {}
func (Signup) action()     {}
func (Logout) action()     {}
func (ViewCourse) action() {}
func (CourseGone) action() {}

// Initial is the state of a fresh session
func Initial() State {
	return State{Page: PageLanding}
}

// Transition computes the state that follows s after a
func Transition(s State, a Action) State {
	switch a := a.(type) {
	case Navigate:
		return navigate(s, a.Page)

	case Login, Signup:
		return State{Page: PageDashboard, Authenticated: true}

	case Logout:
		return Initial()

	case ViewCourse:
		if !s.Authenticated {
			return State{Page: PageLogin}
		}
		if a.ID == "" {
			return State{Page: PageCourses, Authenticated: true}
		}
		return State{Page: PageCourseDetails, Authenticated: true, CourseID: a.ID}

	case CourseGone:
		if s.Page == PageCourseDetails {
			return State{Page: PageCourses, Authenticated: s.Authenticated}
		}
	}
	return s
}

func navigate(s State, p Page) State {
	if _, ok := ParsePage(string(p)); !ok {
		return s
	}
	if !s.Authenticated && !p.Public() {
		return State{Page: PageLogin}
	}
	if p == PageCourseDetails {
		// details need a course; keep the current one if already there
		if s.CourseID == "" {
			return State{Page: PageCourses, Authenticated: s.Authenticated}
		}
		return s
	}
	return State{Page: p, Authenticated: s.Authenticated}
}

// Restore rebuilds a state from the persisted page and auth flag.
// A signed-in user never resumes on a public page.
func Restore(page string, authenticated bool) State {
	p, ok := ParsePage(page)
	if !authenticated {
		if ok && p.Public() {
			return State{Page: p}
		}
		return Initial()
	}
	if !ok || p.Public() {
		return State{Page: PageDashboard, Authenticated: true}
	}
	return navigate(State{Authenticated: true}, p)
}
