package session

import (
	"github.com/nullmedium/exek/model"
	"github.com/nullmedium/exek/pathcomp"
)

// Ranker orders applications for a free-text query.
type Ranker interface {
	Rank(query string) []model.ScoredResult
}

// Completer lists filesystem completions for a path query.
type Completer interface {
	Complete(query string) []model.PathCompletion
}

type Mode int

const (
	ModeApplications Mode = iota
	ModePaths
)

func (m Mode) String() string {
	if m == ModePaths {
		return "paths"
	}
	return "applications"
}

// Outcome is what an event did to the session as a whole. Selected is set
// only when Status is Launch.
type Outcome struct {
	Status   Status
	Selected model.Candidate
}

// State is the launcher session. It is a value: Apply returns the next
// state and never modifies the receiver or slices it shares.
type State struct {
	ranker    Ranker
	completer Completer

	query  []rune
	cursor int

	mode        Mode
	results     []model.ScoredResult   // ModeApplications
	completions []model.PathCompletion // ModePaths

	selected int
	offset   int // first visible row
	height   int // visible rows, 0 until known
}

// New returns the initial state: empty query showing the most used
// applications.
func New(r Ranker, c Completer) State {
	s := State{ranker: r, completer: c}
	s.refresh()
	return s
}

func (s State) Query() string                       { return string(s.query) }
func (s State) Cursor() int                         { return s.cursor }
func (s State) Mode() Mode                          { return s.mode }
func (s State) Results() []model.ScoredResult       { return s.results }
func (s State) Completions() []model.PathCompletion { return s.completions }
func (s State) Selected() int                       { return s.selected }
func (s State) Offset() int                         { return s.offset }
func (s State) Height() int                         { return s.height }

// Len is the number of entries in the active mode.
func (s State) Len() int {
	if s.mode == ModePaths {
		return len(s.completions)
	}
	return len(s.results)
}

// Window returns the half-open range of rows to draw.
func (s State) Window() (start, end int) {
	end = s.Len()
	if s.height > 0 && s.offset+s.height < end {
		end = s.offset + s.height
	}
	return s.offset, end
}

// Current returns the selected candidate, if any.
func (s State) Current() (model.Candidate, bool) {
	if s.selected >= s.Len() {
		return nil, false
	}
	if s.mode == ModePaths {
		return s.completions[s.selected], true
	}
	return s.results[s.selected].App, true
}

// Apply handles one event.
func (s State) Apply(ev Event) (State, Outcome) {
	switch ev.Kind {
	case EventInsert:
		q := make([]rune, 0, len(s.query)+1)
		q = append(q, s.query[:s.cursor]...)
		q = append(q, ev.Rune)
		q = append(q, s.query[s.cursor:]...)
		s.query = q
		s.cursor++
		s.refresh()

	case EventBackspace:
		if s.cursor > 0 {
			s.query = remove(s.query, s.cursor-1)
			s.cursor--
			s.refresh()
		}

	case EventDelete:
		if s.cursor < len(s.query) {
			s.query = remove(s.query, s.cursor)
			s.refresh()
		}

	case EventLeft:
		s.cursor = clamp(s.cursor-1, 0, len(s.query))
	case EventRight:
		s.cursor = clamp(s.cursor+1, 0, len(s.query))
	case EventHome:
		s.cursor = 0
	case EventEnd:
		s.cursor = len(s.query)

	case EventUp:
		s.move(-1)
	case EventDown:
		s.move(1)
	case EventPageUp:
		s.move(-s.page())
	case EventPageDown:
		s.move(s.page())

	case EventResize:
		s.height = max(ev.Height, 0)
		s.scroll()

	case EventAccept:
		if sel, ok := s.currentPath(); ok {
			s = s.descend(sel)
		}

	case EventConfirm:
		if s.mode == ModePaths {
			sel, ok := s.currentPath()
			if !ok {
				break
			}
			if sel.IsDir {
				s = s.descend(sel)
				break
			}
			return s, Outcome{Status: Launch, Selected: sel}
		}
		if c, ok := s.Current(); ok {
			return s, Outcome{Status: Launch, Selected: c}
		}

	case EventCancel:
		return s, Outcome{Status: Cancelled}
	}
	return s, Outcome{Status: Running}
}

// descend replaces the query with the accepted completion.
func (s State) descend(sel model.PathCompletion) State {
	s.query = []rune(pathcomp.Apply(sel))
	s.cursor = len(s.query)
	s.refresh()
	return s
}

func (s State) currentPath() (model.PathCompletion, bool) {
	if s.mode != ModePaths || s.selected >= len(s.completions) {
		return model.PathCompletion{}, false
	}
	return s.completions[s.selected], true
}

// refresh re-evaluates the mode for the current query and resets the
// selection.
func (s *State) refresh() {
	q := string(s.query)
	if pathcomp.IsPathQuery(q) {
		s.mode = ModePaths
		s.completions = s.completer.Complete(q)
		s.results = nil
	} else {
		s.mode = ModeApplications
		s.results = s.ranker.Rank(q)
		s.completions = nil
	}
	s.selected = 0
	s.offset = 0
}

func (s *State) move(delta int) {
	s.selected = clamp(s.selected+delta, 0, max(0, s.Len()-1))
	s.scroll()
}

// scroll keeps the selection inside the visible window.
func (s *State) scroll() {
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.height > 0 && s.selected >= s.offset+s.height {
		s.offset = s.selected - s.height + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s State) page() int {
	return max(s.height, 1)
}

func remove(q []rune, i int) []rune {
	out := make([]rune, 0, len(q)-1)
	out = append(out, q[:i]...)
	return append(out, q[i+1:]...)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
