// Package ui is the Bubble Tea front-end for wpfeed.
//
// The Model owns the feed state for the life of the program. New applies
// FetchStart, Init launches the single fetch cycle as a tea.Cmd, and the
// resulting action comes back as a message that Update feeds to the reducer.
// Nothing outside the event loop touches the state.
//
// # Layout
//
//   - Header: configured title, unread count, and the current toast
//   - Action bar: "Marcar todas como leídas" (a) and "Marcar todas como no leídas" (u)
//   - Card list: one bordered card per post in a scrollable viewport
//   - Footer: short key help
//
// While loading only a spinner is shown; on failure only "Error: <message>".
//
// # Cards
//
// Each card shows the plain-text title, publish and modified dates, the
// excerpt (hidden with x, persisted in prefs), featured image and avatar
// URLs, "Por: <author>", the reading time with the post link, and the
// read toggle label. Read cards render in the theme's muted read colors.
//
// # Toasts
//
// Bulk actions show a confirmation in the header for ToastDuration. Each
// toast carries an id so a stale expiry never clears a newer toast.
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. T cycles and saves the choice.
package ui
