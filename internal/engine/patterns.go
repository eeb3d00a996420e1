package engine

const (
	// MinPriority is the most urgent priority a pattern can carry.
	MinPriority = 1
	// MaxPriority is the least urgent priority a pattern can carry.
	MaxPriority = 7
)

// Pattern はタスクマーカー（例: "TODO:"）とその優先度の組
type Pattern struct {
	Text     string `json:"pattern" yaml:"pattern" toml:"pattern"`
	Priority int    `json:"priority" yaml:"priority" toml:"priority"`
}

// PatternSet holds patterns keyed by text in registration order.
// The zero value is ready to use.
type PatternSet struct {
	order []string
	prio  map[string]int
}

// NewPatternSet returns a set pre-populated with patterns. Rejected entries
// are dropped silently; use AddAll to inspect them.
func NewPatternSet(patterns ...Pattern) *PatternSet {
	ps := &PatternSet{}
	ps.AddAll(patterns)
	return ps
}

// ClampPriority forces p into [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Add registers text with the clamped priority. Re-adding an existing text
// replaces its priority but keeps its original position.
func (s *PatternSet) Add(text string, priority int) bool {
	if text == "" {
		return false
	}
	if s.prio == nil {
		s.prio = make(map[string]int)
	}
	if _, ok := s.prio[text]; !ok {
		s.order = append(s.order, text)
	}
	s.prio[text] = ClampPriority(priority)
	return true
}

// AddAll adds every pattern and reports how many were accepted along with
// the ones that were rejected.
func (s *PatternSet) AddAll(patterns []Pattern) (added int, rejected []Pattern) {
	for _, p := range patterns {
		if s.Add(p.Text, p.Priority) {
			added++
			continue
		}
		rejected = append(rejected, p)
	}
	return added, rejected
}

func (s *PatternSet) Count() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Priority returns the stored priority for text.
func (s *PatternSet) Priority(text string) (int, bool) {
	if s == nil {
		return 0, false
	}
	p, ok := s.prio[text]
	return p, ok
}

// Patterns returns a copy of the set in registration order.
func (s *PatternSet) Patterns() []Pattern {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	out := make([]Pattern, len(s.order))
	for i, text := range s.order {
		out[i] = Pattern{Text: text, Priority: s.prio[text]}
	}
	return out
}
