package inky

// test assets, taken from the default catalog.
var (
	BTC  = Asset{ID: 1, Name: "Bitcoin", Symbol: "BTC", Category: Crypto, Price: P(42500), Change: 2.5}
	AAPL = Asset{ID: 2, Name: "Apple Inc.", Symbol: "AAPL", Category: Stock, Price: P(185.2), Change: -1.2}
	ETH  = Asset{ID: 3, Name: "Ethereum", Symbol: "ETH", Category: Crypto, Price: P(2650), Change: 3.8}
	DOGE = Asset{ID: 5, Name: "Dogecoin", Symbol: "DOGE", Category: Meme, Price: P(0.08), Change: 12.5}
)

// symbols returns the symbols of assets, for readable comparisons.
func symbols(assets []Asset) []string {
	s := make([]string, len(assets))
	for i, a := range assets {
		s[i] = a.Symbol
	}
	return s
}

// isSubsequence reports whether sub appears in seq in the same order.
func isSubsequence(sub, seq []Asset) bool {
	j := 0
	for _, a := range seq {
		if j < len(sub) && sub[j].ID == a.ID {
			j++
		}
	}
	return j == len(sub)
}
