package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	signedIn := State{Page: PageDashboard, Authenticated: true}
	details := State{Page: PageCourseDetails, Authenticated: true, CourseID: "1"}

	tests := []struct {
		name   string
		from   State
		action Action
		want   State
	}{
		{name: "guest to signup", from: Initial(), action: Navigate{PageSignup}, want: State{Page: PageSignup}},
		{name: "guest to dashboard redirects", from: Initial(), action: Navigate{PageDashboard}, want: State{Page: PageLogin}},
		{name: "guest to calendar redirects", from: State{Page: PageSignup}, action: Navigate{PageCalendar}, want: State{Page: PageLogin}},
		{name: "login", from: State{Page: PageLogin}, action: Login{}, want: signedIn},
		{name: "signup", from: State{Page: PageSignup}, action: Signup{Name: "Alex"}, want: signedIn},
		{name: "navigate", from: signedIn, action: Navigate{PageCalendar}, want: State{Page: PageCalendar, Authenticated: true}},
		{name: "unknown page ignored", from: signedIn, action: Navigate{Page("reports")}, want: signedIn},
		{name: "logout", from: details, action: Logout{}, want: State{Page: PageLanding}},
		{name: "view course", from: signedIn, action: ViewCourse{ID: "1"}, want: details},
		{name: "view course as guest", from: Initial(), action: ViewCourse{ID: "1"}, want: State{Page: PageLogin}},
		{name: "view course without id", from: signedIn, action: ViewCourse{}, want: State{Page: PageCourses, Authenticated: true}},
		{name: "details without course", from: signedIn, action: Navigate{PageCourseDetails}, want: State{Page: PageCourses, Authenticated: true}},
		{name: "details keeps course", from: details, action: Navigate{PageCourseDetails}, want: details},
		{name: "leaving details drops course", from: details, action: Navigate{PageCourses}, want: State{Page: PageCourses, Authenticated: true}},
		{name: "course gone", from: details, action: CourseGone{}, want: State{Page: PageCourses, Authenticated: true}},
		{name: "course gone elsewhere", from: signedIn, action: CourseGone{}, want: signedIn},
		{name: "signed in to landing", from: signedIn, action: Navigate{PageLanding}, want: State{Page: PageLanding, Authenticated: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.from, tt.action))
		})
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name string
		page string
		auth bool
		want State
	}{
		{name: "nothing stored", want: State{Page: PageLanding}},
		{name: "guest on login", page: "login", want: State{Page: PageLogin}},
		{name: "guest on private page", page: "settings", want: State{Page: PageLanding}},
		{name: "signed in", page: "calendar", auth: true, want: State{Page: PageCalendar, Authenticated: true}},
		{name: "signed in on public page", page: "login", auth: true, want: State{Page: PageDashboard, Authenticated: true}},
		{name: "signed in garbage", page: "???", auth: true, want: State{Page: PageDashboard, Authenticated: true}},
		{name: "signed in details", page: "course-details", auth: true, want: State{Page: PageCourses, Authenticated: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Restore(tt.page, tt.auth))
		})
	}
}

func TestParsePage(t *testing.T) {
	for _, p := range Pages {
		got, ok := ParsePage(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := ParsePage("Dashboard")
	assert.False(t, ok)
}
