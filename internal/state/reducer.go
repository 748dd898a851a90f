package state

import "github.com/five82/wpfeed/internal/wordpress"

// State is the view state for one fetch cycle.
type State struct {
	Loading bool
	Posts   []wordpress.Post
	Error   string

	settled bool
}

// Phase names where a State sits in the IDLE -> LOADING -> {SUCCESS, ERROR} cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Initial returns the state a view starts with before any fetch.
func Initial() State {
	return State{Posts: []wordpress.Post{}}
}

// Phase reports the fetch-cycle phase.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	case s.settled:
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// UnreadCount returns how many posts are not marked read.
func (s State) UnreadCount() int {
	n := 0
	for _, p := range s.Posts {
		if !p.Read {
			n++
		}
	}
	return n
}

// Action is a state transition request. The set is closed: only the types in
// this package implement it.
type Action interface {
	isAction()
}

// FetchStart marks the beginning of a fetch.
type FetchStart struct{}

// FetchSuccess delivers the fully enriched posts in list order.
type FetchSuccess struct {
	Posts []wordpress.Post
}

// FetchError ends a fetch with a user-facing message.
type FetchError struct {
	Message string
}

// MarkAllRead sets every post read.
type MarkAllRead struct{}

// MarkAllUnread clears every post's read flag.
type MarkAllUnread struct{}

// ToggleRead flips the read flag of the post with ID.
type ToggleRead struct {
	ID int64
}

func (FetchStart) isAction()    {}
func (FetchSuccess) isAction()  {}
func (FetchError) isAction()    {}
func (MarkAllRead) isAction()   {}
func (MarkAllUnread) isAction() {}
func (ToggleRead) isAction()    {}

// Reduce applies a to s and returns the next state. It never writes through
// s: any change to the post list produces a fresh slice.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchStart:
		s.Loading = true
		return s
	case FetchSuccess:
		s.Loading = false
		s.settled = true
		s.Posts = clonePosts(a.Posts)
		return s
	case FetchError:
		s.Loading = false
		s.settled = true
		s.Error = a.Message
		return s
	case MarkAllRead:
		s.Posts = withRead(s.Posts, true)
		return s
	case MarkAllUnread:
		s.Posts = withRead(s.Posts, false)
		return s
	case ToggleRead:
		idx := indexOf(s.Posts, a.ID)
		if idx < 0 {
			return s
		}
		posts := clonePosts(s.Posts)
		posts[idx].Read = !posts[idx].Read
		s.Posts = posts
		return s
	default:
		return s
	}
}

func withRead(posts []wordpress.Post, read bool) []wordpress.Post {
	out := make([]wordpress.Post, len(posts))
	for i, p := range posts {
		p.Read = read
		out[i] = p
	}
	return out
}

func indexOf(posts []wordpress.Post, id int64) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePosts(posts []wordpress.Post) []wordpress.Post {
	dup := make([]wordpress.Post, len(posts))
	copy(dup, posts)
	return dup
}
