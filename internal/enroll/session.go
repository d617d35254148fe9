package enroll

import "sync"

// Language selects one of the two supported locales.
type Language string

const (
	LangRU Language = "ru"
	LangUZ Language = "uz"
)

// Stage is the position of a conversation inside the enrollment flow.
type Stage int

const (
	StageLanguage Stage = iota
	StageName
	StageCourse
	StageSubcourse
	StageDay
	StageTime
	StagePhone
	StageConfirm
)

var stageNames = map[Stage]string{
	StageLanguage:  "language",
	StageName:      "name",
	StageCourse:    "course",
	StageSubcourse: "subcourse",
	StageDay:       "day",
	StageTime:      "time",
	StagePhone:     "phone",
	StageConfirm:   "confirm",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Session accumulates one user's answers plus their current stage.
// A zero Session is a fresh conversation waiting for a language choice.
type Session struct {
	Language  Language
	Name      string
	Course    string
	Subcourse string
	Day       string
	Time      string
	Phone     string
	Stage     Stage
}

// Lang returns the effective locale, falling back to ru when unset.
func (s Session) Lang() Language {
	if s.Language == LangUZ {
		return LangUZ
	}
	return LangRU
}

// Store keeps sessions in memory, keyed by Telegram user ID.
// Sessions never survive a process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

// Get returns the session for userID, or a zero session when none exists.
func (st *Store) Get(userID int64) Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[userID]
}

// Set stores the session for userID.
func (st *Store) Set(userID int64, s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[userID] = s
}

// Clear removes the session for userID.
func (st *Store) Clear(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}

// Has reports whether userID has an active session.
func (st *Store) Has(userID int64) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.sessions[userID]
	return ok
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
