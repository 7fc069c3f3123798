package inky

import (
	"testing"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name      string
		picks     []Asset
		wantTotal string
		wantAvg   Percent
		wantTally Tally
	}{
		{
			name:      "no picks",
			wantTotal: "0",
			wantAvg:   0,
			wantTally: Tally{},
		},
		{
			name:      "mixed",
			picks:     []Asset{BTC, AAPL, DOGE},
			wantTotal: "42685.28",
			wantAvg:   (2.5 - 1.2 + 12.5) / 3,
			wantTally: Tally{Crypto: 1, Stock: 1, Meme: 1},
		},
		{
			name:      "sub-cent prices are exact",
			picks:     []Asset{{Symbol: "PEPE", Category: Meme, Price: P(0.0000008)}, {Symbol: "BONK", Category: Meme, Price: P(0.0000139)}},
			wantTotal: "0.0000147",
			wantTally: Tally{Meme: 2},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.picks)
			if got := s.TotalValue.Decimal().String(); got != tc.wantTotal {
				t.Errorf("TotalValue = %s, want %s", got, tc.wantTotal)
			}
			if !s.AverageChange.Equal(tc.wantAvg) {
				t.Errorf("AverageChange = %v, want %v", s.AverageChange, tc.wantAvg)
			}
			if s.Tally.Total() != tc.wantTally.Total() {
				t.Errorf("Tally.Total() = %d, want %d", s.Tally.Total(), tc.wantTally.Total())
			}
			for c, n := range tc.wantTally {
				if s.Tally[c] != n {
					t.Errorf("Tally[%s] = %d, want %d", c, s.Tally[c], n)
				}
			}
		})
	}
}

func TestTally_Entries(t *testing.T) {
	tally := Tally{Meme: 1, Crypto: 2, Stock: 0}
	got := tally.Entries()
	want := []TallyEntry{{Crypto, 2}, {Meme, 1}}
	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPrice_String(t *testing.T) {
	testCases := []struct {
		price Price
		want  string
	}{
		{P(42500), "$42,500.00"},
		{P(185.2), "$185.20"},
		{P(0.48), "$0.4800"},
		{P(0.00014), "$0.00014000"},
		{P(0.0000008), "$0.00000080"},
	}
	for _, tc := range testCases {
		if got := tc.price.String(); got != tc.want {
			t.Errorf("Price(%s).String() = %q, want %q", tc.price.Decimal(), got, tc.want)
		}
	}
}

func TestPercent_SignedString(t *testing.T) {
	testCases := []struct {
		p    Percent
		want string
	}{
		{2.5, "+2.50%"},
		{-8.3, "-8.30%"},
		{0, "0.00%"},
	}
	for _, tc := range testCases {
		if got := tc.p.SignedString(); got != tc.want {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", float64(tc.p), got, tc.want)
		}
	}
}
