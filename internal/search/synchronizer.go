package search

import (
	"net/url"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DebounceWindow is the quiet period after the last keystroke before the URL is rewritten.
const DebounceWindow = 400 * time.Millisecond

// URLReplacer swaps the current location for target without a full reload.
type URLReplacer interface {
	Replace(target string)
}

// URLReplacerFunc adapts a function to URLReplacer.
type URLReplacerFunc func(target string)

func (f URLReplacerFunc) Replace(target string) { f(target) }

// Synchronizer mirrors a search input into the page URL.
type Synchronizer struct {
	replacer  URLReplacer
	debouncer *Debouncer[string]

	mu       sync.Mutex
	pathname string
	params   url.Values
}

// NewSynchronizer seeds the synchronizer from the URL currently shown.
func NewSynchronizer(current *url.URL, replacer URLReplacer, clock clockwork.Clock) *Synchronizer {
	s := &Synchronizer{
		replacer: replacer,
		pathname: current.Path,
		params:   current.Query(),
	}
	s.debouncer = NewDebouncer(clock, DebounceWindow, s.apply)
	return s
}

// InitialValue is what the search input shows on load, so a reload keeps the search.
func (s *Synchronizer) InitialValue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Get(QueryParam)
}

// HandleInput is called on every keystroke with the full input value.
func (s *Synchronizer) HandleInput(term string) {
	s.debouncer.Trigger(term)
}

// Pending reports whether a URL replacement is waiting for the quiet period.
func (s *Synchronizer) Pending() bool {
	return s.debouncer.State() == PendingFire
}

// Close drops any pending replacement.
func (s *Synchronizer) Close() {
	s.debouncer.Cancel()
}

func (s *Synchronizer) apply(term string) {
	s.mu.Lock()
	s.params = ApplySearchTerm(s.params, term)
	target := s.pathname + "?" + s.params.Encode()
	s.mu.Unlock()

	s.replacer.Replace(target)
}
