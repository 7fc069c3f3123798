package inky

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
)

func TestSession_EndToEnd(t *testing.T) {
	s := Start(DeckOf(BTC, AAPL))

	if got := s.Swipe(Right); got != Active {
		t.Fatalf("Swipe(Right) = %v, want %v", got, Active)
	}
	if got := s.Swipe(Left); got != Complete {
		t.Fatalf("Swipe(Left) = %v, want %v", got, Complete)
	}

	if got, want := symbols(s.Accepted()), []string{"BTC"}; !slices.Equal(got, want) {
		t.Errorf("Accepted() = %v, want %v", got, want)
	}
	sum := s.Summary()
	if !sum.TotalValue.Equal(BTC.Price) {
		t.Errorf("TotalValue = %v, want %v", sum.TotalValue, BTC.Price)
	}
	if !sum.AverageChange.Equal(BTC.Change) {
		t.Errorf("AverageChange = %v, want %v", sum.AverageChange, BTC.Change)
	}
	if got := sum.Tally.Entries(); len(got) != 1 || got[0] != (TallyEntry{Crypto, 1}) {
		t.Errorf("Tally.Entries() = %v, want [{crypto 1}]", got)
	}
}

func TestSession_States(t *testing.T) {
	s := NewSession()
	if got := s.State(); got != Loading {
		t.Fatalf("NewSession().State() = %v, want %v", got, Loading)
	}
	// swiping while loading is a no-op.
	if got := s.Swipe(Right); got != Loading {
		t.Errorf("Swipe() while loading = %v, want %v", got, Loading)
	}
	if got := s.Reset(); got != Loading {
		t.Errorf("Reset() while loading = %v, want %v", got, Loading)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() while loading returned ok")
	}

	s.Reload(DeckOf(ETH))
	if a, ok := s.Current(); !ok || a.Symbol != "ETH" {
		t.Errorf("Current() = %v, %v, want ETH, true", a, ok)
	}
	s.Swipe(Right)
	// swiping a complete session is a no-op too.
	if got := s.Swipe(Right); got != Complete {
		t.Errorf("Swipe() while complete = %v, want %v", got, Complete)
	}
	if got := s.Index(); got != 1 {
		t.Errorf("Index() = %d, want 1", got)
	}
	if got := len(s.Accepted()); got != 1 {
		t.Errorf("len(Accepted()) = %d, want 1", got)
	}
}

func TestSession_EmptyDeckIsComplete(t *testing.T) {
	s := Start(DeckOf())
	if got := s.State(); got != Complete {
		t.Errorf("State() = %v, want %v", got, Complete)
	}
}

func TestSession_ResetKeepsTheDeck(t *testing.T) {
	deck := NewSeededDeck(DefaultCatalog(), 42)
	s := Start(deck)
	for s.State() == Active {
		s.Swipe(Right)
	}
	if got := s.Reset(); got != Active {
		t.Fatalf("Reset() = %v, want %v", got, Active)
	}
	if got := s.Index(); got != 0 {
		t.Errorf("Index() after Reset = %d, want 0", got)
	}
	if got := len(s.Accepted()); got != 0 {
		t.Errorf("len(Accepted()) after Reset = %d, want 0", got)
	}
	if a, _ := s.Current(); a.ID != deck.At(0).ID {
		t.Errorf("Current() after Reset = %v, want %v", a, deck.At(0))
	}
}

func TestSession_RandomSwipesPreserveDeckOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for run := 0; run < 50; run++ {
		deck := NewDeck(DefaultCatalog(), r)
		s := Start(deck)
		for i := 0; i < deck.Len(); i++ {
			before := s.Index()
			s.Swipe(Direction(r.IntN(2)))
			if s.Index() < before {
				t.Fatalf("index decreased from %d to %d", before, s.Index())
			}
		}
		if got := s.State(); got != Complete {
			t.Fatalf("run %d: State() = %v, want %v", run, got, Complete)
		}
		accepted := s.Accepted()
		if len(accepted) > deck.Len() {
			t.Errorf("run %d: %d accepted for %d cards", run, len(accepted), deck.Len())
		}
		if !isSubsequence(accepted, deck.Cards()) {
			t.Errorf("run %d: accepted %v is not a subsequence of the deck %v", run, symbols(accepted), symbols(deck.Cards()))
		}
	}
}

func TestSession_PositionAndStack(t *testing.T) {
	s := Start(DeckOf(BTC, AAPL, ETH, DOGE))
	if n, total := s.Position(); n != 1 || total != 4 {
		t.Errorf("Position() = %d of %d, want 1 of 4", n, total)
	}
	if got, want := symbols(s.Stack(StackSize)), []string{"BTC", "AAPL", "ETH"}; !slices.Equal(got, want) {
		t.Errorf("Stack() = %v, want %v", got, want)
	}
	s.Swipe(Left)
	s.Swipe(Left)
	if got, want := symbols(s.Stack(StackSize)), []string{"ETH", "DOGE"}; !slices.Equal(got, want) {
		t.Errorf("Stack() = %v, want %v", got, want)
	}
	s.Swipe(Left)
	s.Swipe(Left)
	if got := s.Stack(StackSize); len(got) != 0 {
		t.Errorf("Stack() on a complete session = %v, want empty", symbols(got))
	}
	if n, total := s.Position(); n != 4 || total != 4 {
		t.Errorf("Position() = %d of %d, want 4 of 4", n, total)
	}
}

func TestSession_Subscribe(t *testing.T) {
	s := Start(DeckOf(BTC, AAPL))
	var got []Snapshot
	cancel := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.Swipe(Right)
	s.Swipe(Left)
	cancel()
	s.Reset()

	if len(got) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(got))
	}
	if got[0].State != Active || got[0].Index != 1 || got[0].Current.Symbol != "AAPL" {
		t.Errorf("first snapshot = %+v, want active on AAPL", got[0])
	}
	if got[1].State != Complete || got[1].Current != nil || len(got[1].Accepted) != 1 {
		t.Errorf("second snapshot = %+v, want complete with one pick", got[1])
	}
}

func TestParseDirection(t *testing.T) {
	testCases := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "left", want: Left},
		{in: "R", want: Right},
		{in: " buy ", want: Right},
		{in: "skip", want: Left},
		{in: "up", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDirection(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDragDirection(t *testing.T) {
	testCases := []struct {
		dx     float64
		want   Direction
		wantOk bool
	}{
		{dx: 0, wantOk: false},
		{dx: 100, wantOk: false},
		{dx: -100, wantOk: false},
		{dx: 100.5, want: Right, wantOk: true},
		{dx: -250, want: Left, wantOk: true},
		{dx: math.NaN(), wantOk: false},
		{dx: math.Inf(1), wantOk: false},
		{dx: math.Inf(-1), wantOk: false},
	}
	for _, tc := range testCases {
		got, ok := DragDirection(tc.dx)
		if ok != tc.wantOk || (ok && got != tc.want) {
			t.Errorf("DragDirection(%v) = %v, %v, want %v, %v", tc.dx, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestSession_ConcurrentSwipesPublishInOrder(t *testing.T) {
	s := Start(NewSeededDeck(DefaultCatalog(), 1))
	total := s.Snapshot().Total

	var mu sync.Mutex
	var indexes []int
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		indexes = append(indexes, snap.Index)
	})

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Swipe(Right)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(indexes) != total {
		t.Fatalf("observer saw %d snapshots, want %d", len(indexes), total)
	}
	for i, got := range indexes {
		if got != i+1 {
			t.Fatalf("snapshot %d has Index %d, want %d: %v", i, got, i+1, indexes)
		}
	}
}
