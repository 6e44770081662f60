package store

// Session scalars are stored as plain strings, not JSON.

// UserName returns the display name, empty if unset
func (s *Store) UserName() string {
	return s.LoadRaw(KeyUserName, "")
}

// SetUserName persists the display name
func (s *Store) SetUserName(name string) error {
	return s.SaveRaw(KeyUserName, name)
}

// IsAuthenticated reports whether the session flag reads "true"
func (s *Store) IsAuthenticated() bool {
	return s.LoadRaw(KeyIsAuth, "false") == "true"
}

// SetAuthenticated persists the session flag as "true" or "false"
func (s *Store) SetAuthenticated(auth bool) error {
	value := "false"
	if auth {
		value = "true"
	}
	return s.SaveRaw(KeyIsAuth, value)
}

// LastPage returns the last viewed page identifier, empty if unset
func (s *Store) LastPage() string {
	return s.LoadRaw(KeyLastPage, "")
}

// SetLastPage persists the last viewed page identifier
func (s *Store) SetLastPage(page string) error {
	return s.SaveRaw(KeyLastPage, page)
}

// Theme returns the theme name, "light" if unset
func (s *Store) Theme() string {
	return s.LoadRaw(KeyTheme, "light")
}

// SetTheme persists the theme name
func (s *Store) SetTheme(theme string) error {
	return s.SaveRaw(KeyTheme, theme)
}

// ClearSession drops the session flags on logout. Courses, deadlines
// and the profile survive so no data is lost between sessions.
func (s *Store) ClearSession() error {
	if err := s.Clear(KeyIsAuth); err != nil {
		return err
	}
	return s.Clear(KeyLastPage)
}
