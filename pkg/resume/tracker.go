package resume

import (
	"sync"
	"time"

	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/nlp"
)

// Tracker holds the analyzer state of every session. Each upload gets a new
// generation; updates carrying an older generation are dropped, so a slow
// response can never overwrite the result of a newer upload.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*Snapshot
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*Snapshot), now: time.Now}
}

var transitions = map[State][]State{
	StateIdle:         {StateUploading},
	StateUploading:    {StateAnalyzing, StateFailed},
	StateAnalyzing:    {StateMatchesShown, StateMatchesEmpty, StateFailed},
	StateMatchesShown: {StateUploading},
	StateMatchesEmpty: {StateUploading},
	StateFailed:       {StateUploading},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (t *Tracker) get(session string) *Snapshot {
	s, ok := t.sessions[session]
	if !ok {
		s = &Snapshot{State: StateIdle, UpdatedAt: t.now()}
		t.sessions[session] = s
	}
	return s
}

// Begin restarts the flow for a new upload and returns its generation.
// The previous analysis is kept until a new one arrives; matches are cleared.
func (t *Tracker) Begin(session string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.get(session)
	s.Generation++
	s.Matches = nil
	s.Error = ""
	s.State = StateUploading
	s.UpdatedAt = t.now()
	return s.Generation
}

// Analyzed records the analysis of generation gen and moves to Analyzing.
func (t *Tracker) Analyzed(session string, gen uint64, a Analysis, skills nlp.SkillSet) bool {
	return t.apply(session, gen, StateAnalyzing, func(s *Snapshot) {
		s.Analysis = &a
		s.Skills = skills
	})
}

// Matched records the match result; an empty job list ends in MatchesEmpty.
func (t *Tracker) Matched(session string, gen uint64, res match.Result) bool {
	to := StateMatchesShown
	if len(res.Jobs) == 0 {
		to = StateMatchesEmpty
	}
	return t.apply(session, gen, to, func(s *Snapshot) {
		s.Matches = &res
	})
}

// Fail marks the flow as failed. Analysis and skills from an earlier upload
// stay as they were.
func (t *Tracker) Fail(session string, gen uint64, msg string) bool {
	return t.apply(session, gen, StateFailed, func(s *Snapshot) {
		s.Error = msg
	})
}

func (t *Tracker) apply(session string, gen uint64, to State, fn func(s *Snapshot)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[session]
	if !ok || s.Generation != gen || !canTransition(s.State, to) {
		return false
	}
	fn(s)
	s.State = to
	s.UpdatedAt = t.now()
	return true
}

// Snapshot returns a copy of the session state; Idle for unknown sessions.
func (t *Tracker) Snapshot(session string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[session]
	if !ok {
		return Snapshot{State: StateIdle, Skills: nlp.NewSkillSet(), UpdatedAt: t.now()}
	}
	return *s
}

// Forget drops the session state, e.g. on logout.
func (t *Tracker) Forget(session string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, session)
}
