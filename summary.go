package inky

// Tally counts assets per category.
type Tally map[Category]int

// TallyEntry is one line of a Tally.
type TallyEntry struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Entries lists the non-empty categories in category order, the order the
// summary chart uses.
func (t Tally) Entries() []TallyEntry {
	var entries []TallyEntry
	for _, c := range Categories() {
		if n := t[c]; n > 0 {
			entries = append(entries, TallyEntry{Category: c, Count: n})
		}
	}
	return entries
}

// Total returns the number of assets counted.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Summary is the portfolio built at the end of a session.
type Summary struct {
	Picks         []Asset `json:"picks"`
	TotalValue    Price   `json:"totalValue"`
	AverageChange Percent `json:"averageChange"`
	Tally         Tally   `json:"tally"`
}

// Summarize computes the summary of the given picks. The average change of no
// picks is 0.
func Summarize(picks []Asset) Summary {
	s := Summary{
		Picks: append([]Asset{}, picks...),
		Tally: make(Tally),
	}
	var sum float64
	for _, a := range picks {
		s.TotalValue = s.TotalValue.Add(a.Price)
		sum += float64(a.Change)
		s.Tally[a.Category]++
	}
	if len(picks) > 0 {
		s.AverageChange = Percent(sum / float64(len(picks)))
	}
	return s
}

// Count returns the number of picks.
func (s Summary) Count() int { return len(s.Picks) }
