package stats

import (
	"sync"
	"time"

	"arcade/game"
)

type SessionRecord struct {
	ID        int
	SessionID string
	Game      string
	Status    game.Status
	Winner    string
	Reason    string
	Moves     int
	Rejected  int
	Steps     int // move records so far, accepted or not
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type MoveRecord struct {
	Session   int // SessionRecord.ID
	Step      int
	Move      string
	Accepted  bool
	Status    game.Status
	Attempts  int
	Unbounded bool
	View      string
}

// Collector is an output sink that turns the event stream into records.
type Collector interface {
	Render(ev game.Event)
	Sessions() []SessionRecord
	Moves() []MoveRecord
}

type collector struct {
	mu       sync.Mutex
	now      func() time.Time
	ids      map[string]int // SessionID -> SessionRecord.ID
	sessions []SessionRecord
	moves    []MoveRecord
}

func NewCollector() Collector {
	return &collector{now: time.Now, ids: map[string]int{}}
}

func (c *collector) Render(ev game.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := ev.(type) {
	case game.Started:
		c.sessions = append(c.sessions, SessionRecord{
			ID:        len(c.sessions) + 1,
			SessionID: ev.SessionID,
			Game:      ev.Game,
			StartTime: c.now(),
		})
		c.ids[ev.SessionID] = len(c.sessions)
	case game.StepResult:
		rec := c.session(ev.SessionID)
		if rec == nil || ev.Status == game.Aborted {
			return
		}
		c.moves = append(c.moves, MoveRecord{
			Session:   rec.ID,
			Step:      c.step(rec),
			Move:      ev.Move.String(),
			Accepted:  true,
			Status:    ev.Status,
			Attempts:  ev.AttemptsRemaining,
			Unbounded: ev.Unbounded,
			View:      viewString(ev.View),
		})
	case game.Rejection:
		rec := c.session(ev.SessionID)
		if rec == nil {
			return
		}
		rec.Rejected++
		c.moves = append(c.moves, MoveRecord{
			Session: rec.ID,
			Step:    c.step(rec),
			Move:    ev.Move.String(),
			Status:  game.InProgress,
		})
	case game.Outcome:
		rec := c.session(ev.SessionID)
		if rec == nil {
			return
		}
		rec.Status = ev.Status
		rec.Winner = ev.Winner
		rec.Reason = ev.Reason
		rec.Moves = ev.Moves
		rec.EndTime = c.now()
		rec.Duration = rec.EndTime.Sub(rec.StartTime)
	}
}

func (c *collector) session(id string) *SessionRecord {
	i, ok := c.ids[id]
	if !ok {
		return nil
	}
	return &c.sessions[i-1]
}

func (c *collector) step(rec *SessionRecord) int {
	rec.Steps++
	return rec.Steps
}

func viewString(v game.View) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func (c *collector) Sessions() []SessionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SessionRecord, len(c.sessions))
	copy(out, c.sessions)
	return out
}

func (c *collector) Moves() []MoveRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MoveRecord, len(c.moves))
	copy(out, c.moves)
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Render(ev game.Event)      {}
func (c *dummyCollector) Sessions() []SessionRecord { return nil }
func (c *dummyCollector) Moves() []MoveRecord       { return nil }
