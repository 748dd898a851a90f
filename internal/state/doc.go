// Package state holds the wpfeed view state and the reducer that changes it.
//
// # Overview
//
// The view state is a plain value:
//
//	State{Loading bool, Posts []wordpress.Post, Error string}
//
// and the only way to change it is Reduce(state, action). Actions form a
// closed set of types:
//
//	FetchStart            Loading = true
//	FetchSuccess{Posts}   Loading = false, Posts = payload
//	FetchError{Message}   Loading = false, Error = message
//	MarkAllRead           every post Read = true
//	MarkAllUnread         every post Read = false
//	ToggleRead{ID}        that post's Read flipped, others untouched
//
// FetchSuccess leaves Error alone and FetchError leaves Posts alone. A nil
// action, or ToggleRead for an id that is not in the list, returns the state
// unchanged.
//
// # Value Semantics
//
// Reduce takes and returns State by value. Whenever the post list changes it
// allocates a new slice, so the previous State stays observably unchanged and
// the UI can keep older values around. FetchSuccess copies its payload for
// the same reason.
//
// # Fetch Cycle
//
// State.Phase maps the fields onto the per-fetch state machine:
//
//	IDLE ──FetchStart──> LOADING ──FetchSuccess──> SUCCESS
//	                        └─────FetchError────> ERROR
//
// There is no transition out of SUCCESS or ERROR other than a new view
// starting again at LOADING.
//
// # Store
//
// The Bubble Tea model owns its State directly and reduces it on the event
// loop. Store exists for callers that are not on an event loop, such as the
// -dump mode, where feed.Run dispatches from its own goroutine:
//
//	store := state.NewStore()
//	feed.Run(ctx, client, store.Dispatch)
//	snap := store.Snapshot()
//
// Dispatch takes the write lock, Snapshot the read lock and returns a copy of
// the post list. The zero Store is usable and behaves as if seeded with
// Initial().
package state
