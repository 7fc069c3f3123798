package inky

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// State is the lifecycle stage of a Session.
type State int

const (
	Loading  State = iota // no deck yet
	Active                // a card is on top of the deck
	Complete              // the deck is exhausted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Direction of a swipe: Left skips the card, Right buys it.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// ParseDirection accepts "left"/"right" and the "skip"/"buy" and "l"/"r" aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left", "skip":
		return Left, nil
	case "r", "right", "buy":
		return Right, nil
	}
	return Left, fmt.Errorf("invalid swipe direction %q: must be left or right", s)
}

// DragThreshold is the horizontal distance, in pixels, a card must be dragged
// before its release counts as a swipe.
const DragThreshold = 100

// DragDirection resolves the horizontal offset of a released drag into a swipe.
// ok is false when the card was not dragged far enough, or dx is not finite.
func DragDirection(dx float64) (d Direction, ok bool) {
	if math.IsNaN(dx) || math.IsInf(dx, 0) || math.Abs(dx) <= DragThreshold {
		return Left, false
	}
	if dx > 0 {
		return Right, true
	}
	return Left, true
}

// StackSize is the number of cards visible at once on the deck.
const StackSize = 3

// Snapshot is the read-only view of a session published to observers.
type Snapshot struct {
	State    State   `json:"state"`
	Index    int     `json:"index"`
	Total    int     `json:"total"`
	Current  *Asset  `json:"current,omitempty"`
	Accepted []Asset `json:"accepted"`
}

// Session is the swipe state machine over a deck.
//
// Every transition is total: swiping a Loading or Complete session does
// nothing. A Session is safe for concurrent use, observers are notified
// after each transition, outside of the lock.
type Session struct {
	mu       sync.Mutex
	deck     *Deck
	index    int
	accepted []Asset

	observers  []*observer
	pending    []Snapshot
	delivering bool
}

type observer struct{ f func(Snapshot) }

// NewSession returns a session in the Loading state.
func NewSession() *Session { return &Session{} }

// Start returns an Active session over deck.
func Start(deck *Deck) *Session {
	s := NewSession()
	s.Reload(deck)
	return s
}

// Reload replaces the deck and starts over from its first card.
func (s *Session) Reload(deck *Deck) {
	s.mu.Lock()
	s.deck = deck
	s.index = 0
	s.accepted = nil
	s.publishLocked()
}

// Swipe applies a swipe on the current card and moves to the next one.
// It returns the new state.
func (s *Session) Swipe(d Direction) State {
	s.mu.Lock()
	if s.state() != Active {
		st := s.state()
		s.mu.Unlock()
		return st
	}
	if d == Right {
		s.accepted = append(s.accepted, s.deck.At(s.index))
	}
	s.index++
	st := s.state()
	s.publishLocked()
	return st
}

// Reset goes back to the first card of the same deck, without reshuffling,
// and forgets the accepted assets.
func (s *Session) Reset() State {
	s.mu.Lock()
	if s.deck == nil {
		s.mu.Unlock()
		return Loading
	}
	s.index = 0
	s.accepted = nil
	st := s.state()
	s.publishLocked()
	return st
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	switch {
	case s.deck == nil:
		return Loading
	case s.index >= s.deck.Len():
		return Complete
	}
	return Active
}

// Current returns the card on top of the deck, ok is false unless Active.
func (s *Session) Current() (a Asset, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state() != Active {
		return Asset{}, false
	}
	return s.deck.At(s.index), true
}

// Index returns the number of cards already swiped.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Position returns the 1-based number of the current card and the deck size,
// as in "3 of 20".
func (s *Session) Position() (n, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deck == nil {
		return 0, 0
	}
	return min(s.index+1, s.deck.Len()), s.deck.Len()
}

// Accepted returns the assets swiped right, in deck order.
func (s *Session) Accepted() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Asset(nil), s.accepted...)
}

// Stack returns up to n cards from the current one, top card first.
func (s *Session) Stack(n int) []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deck == nil {
		return nil
	}
	return s.deck.window(s.index, n)
}

// Summary computes the portfolio summary of the accepted assets.
// It can be called in any state.
func (s *Session) Summary() Summary {
	return Summarize(s.Accepted())
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		State:    s.state(),
		Index:    s.index,
		Accepted: append([]Asset{}, s.accepted...),
	}
	if s.deck != nil {
		snap.Total = s.deck.Len()
	}
	if snap.State == Active {
		a := s.deck.At(s.index)
		snap.Current = &a
	}
	return snap
}

// Subscribe registers f to be called with a snapshot after every transition.
// The returned function unsubscribes f.
func (s *Session) Subscribe(f func(Snapshot)) (cancel func()) {
	o := &observer{f: f}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, x := range s.observers {
			if x == o {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// publishLocked queues a snapshot and unlocks s.mu. Whoever finds no
// delivery in progress delivers the queue, so observers see transitions in
// the order they happened.
func (s *Session) publishLocked() {
	s.pending = append(s.pending, s.snapshot())
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		snap := s.pending[0]
		s.pending = s.pending[1:]
		observers := append([]*observer(nil), s.observers...)
		s.mu.Unlock()
		for _, o := range observers {
			o.f(snap)
		}
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}
