// Package store persists courses, deadlines and session scalars as
// JSON documents under fixed keys of a string key/value backend.
package store

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tgienger/dues/internal/models"
)

// Document keys
const (
	KeyCourses   = "courses"
	KeyDeadlines = "deadlines"
	KeyUserName  = "userName"
	KeyIsAuth    = "isAuth"
	KeyLastPage  = "lastPage"
	KeyTheme     = "theme"
)

// Backend is a synchronous string key/value store
type Backend interface {
	// Get returns ok=false when key is absent
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Store reads and writes the persisted documents. Loads never fail:
// missing or corrupt data yields the caller's default and a log entry.
type Store struct {
	backend Backend
	log     logrus.FieldLogger
}

// New creates a store over backend
func New(backend Backend, log logrus.FieldLogger) *Store {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Store{backend: backend, log: log.WithField("component", "store")}
}

// LoadRaw returns the raw string under key, or def if absent or unreadable
func (s *Store) LoadRaw(key, def string) string {
	value, ok, err := s.backend.Get(key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("read failed, using default")
		return def
	}
	if !ok {
		return def
	}
	return value
}

// Load decodes the JSON document under key into a value of type T.
// Absent keys, invalid JSON and JSON of the wrong shape all return def.
func Load[T any](s *Store, key string, def T) T {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("read failed, using default")
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("corrupt document, using default")
		return def
	}
	return v
}

// Save encodes value as JSON and writes it under key
func (s *Store) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "store: encode %q", key)
	}
	return s.SaveRaw(key, string(data))
}

// SaveRaw writes value under key as-is
func (s *Store) SaveRaw(key, value string) error {
	if err := s.backend.Set(key, value); err != nil {
		s.log.WithError(err).WithField("key", key).Error("write failed")
		return errors.Wrapf(err, "store: save %q", key)
	}
	return nil
}

// Clear removes key
func (s *Store) Clear(key string) error {
	if err := s.backend.Delete(key); err != nil {
		s.log.WithError(err).WithField("key", key).Error("delete failed")
		return errors.Wrapf(err, "store: clear %q", key)
	}
	return nil
}

// Courses loads the course list in insertion order
func (s *Store) Courses() []models.Course {
	courses := Load[[]models.Course](s, KeyCourses, nil)
	if courses == nil {
		return []models.Course{}
	}
	return courses
}

// SaveCourses overwrites the course list
func (s *Store) SaveCourses(courses []models.Course) error {
	if courses == nil {
		courses = []models.Course{}
	}
	return s.Save(KeyCourses, courses)
}
