// internal/store/sessions.go
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    secret TEXT NOT NULL,
    current_exam TEXT NOT NULL DEFAULT '',
    expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
`

// Session is one server-side login session. The browser only holds the
// opaque session ID; the secret and the selected exam live here.
type Session struct {
	ID          string
	Secret      string
	CurrentExam string
	ExpiresAt   time.Time
}

// SessionStore persists login sessions in SQLite so logins survive server
// restarts for the full session lifetime.
type SessionStore struct {
	db       *sql.DB
	lifetime time.Duration
}

// NewSessionStore opens (and migrates) the session database.
func NewSessionStore(dbPath string, lifetime time.Duration) (*SessionStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, lifetime: lifetime}, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Create stores a new session for the secret and returns it.
func (s *SessionStore) Create(id, secret, currentExam string) (*Session, error) {
	expires := time.Now().Add(s.lifetime)
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, secret, current_exam, expires_at) VALUES (?, ?, ?, ?)",
		id, secret, currentExam, expires.Unix(),
	)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Secret: secret, CurrentExam: currentExam, ExpiresAt: expires}, nil
}

// Get returns the session, or ErrNotFound when it does not exist or has
// expired. Expired rows are deleted on sight.
func (s *SessionStore) Get(id string) (*Session, error) {
	var sess Session
	var expires int64

	err := s.db.QueryRow(
		"SELECT id, secret, current_exam, expires_at FROM sessions WHERE id = ?", id,
	).Scan(&sess.ID, &sess.Secret, &sess.CurrentExam, &expires)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sess.ExpiresAt = time.Unix(expires, 0)
	if time.Now().After(sess.ExpiresAt) {
		s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

// SetExam updates the session's selected exam.
func (s *SessionStore) SetExam(id, examName string) error {
	result, err := s.db.Exec("UPDATE sessions SET current_exam = ? WHERE id = ?", examName, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeExpired deletes all expired sessions and returns how many went away.
func (s *SessionStore) PurgeExpired() (int64, error) {
	result, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
