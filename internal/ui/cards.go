package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wpfeed/internal/content"
	"github.com/five82/wpfeed/internal/wordpress"
)

const (
	labelMarkRead    = "Marcar como leída"
	labelMarkedRead  = "Marcada como leída"
	labelAllRead     = "Marcar todas como leídas"
	labelAllUnread   = "Marcar todas como no leídas"
	toastAllRead     = "Todas las notas marcadas como leídas"
	toastAllUnread   = "Todas las notas marcadas como no leídas"
	publishedPrefix  = "Fecha de publicación: "
	modifiedPrefix   = "Fecha de modificación: "
	authorPrefix     = "Por: "
	maxCardWidth     = 100
	minCardTextWidth = 20
)

// readButtonLabel is the per-card toggle label.
func readButtonLabel(read bool) string {
	if read {
		return labelMarkedRead
	}
	return labelMarkRead
}

// cardWidth is the outer width of a card for the given terminal width.
func cardWidth(termWidth int) int {
	w := termWidth - 2
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardTextWidth+4 {
		w = minCardTextWidth + 4
	}
	return w
}

// renderCard renders one post. Read posts use the muted card style whatever
// the selection; selection only changes the border.
func (m Model) renderCard(p wordpress.Post, selected bool, width int) string {
	styles := m.theme.Styles()
	textWidth := width - 4 // border + padding

	title := styles.Title
	text := styles.Text
	muted := styles.MutedText
	faint := styles.FaintText
	accent := styles.AccentText
	if p.Read {
		title = lipgloss.NewStyle().Bold(true)
		text = lipgloss.NewStyle()
		muted = lipgloss.NewStyle()
		faint = lipgloss.NewStyle()
		accent = lipgloss.NewStyle()
	}

	lines := []string{
		title.Width(textWidth).Render(content.PlainText(p.Title.Rendered)),
		muted.Render(publishedPrefix + content.FormatDateTime(p.Date)),
		muted.Render(modifiedPrefix + content.FormatDateTime(p.Modified)),
	}
	if m.prefs.ShowExcerpts {
		if excerpt := content.PlainText(p.Excerpt.Rendered); excerpt != "" {
			lines = append(lines, "", text.Width(textWidth).Render(excerpt))
		}
	}
	if media := strings.TrimSpace(p.FeaturedMediaURL); media != "" {
		lines = append(lines, faint.Render(truncate(media, textWidth)))
	}

	author := authorPrefix + p.AuthorName
	lines = append(lines, "", text.Render(author))
	if avatar := strings.TrimSpace(p.AuthorAvatar); avatar != "" {
		lines = append(lines, faint.Render(truncate(avatar, textWidth)))
	}

	footer := accent.Render(content.ReadingTime(p.Content.Rendered))
	if link := strings.TrimSpace(p.Link); link != "" {
		if room := textWidth - lipgloss.Width(footer) - 2; room > 3 {
			footer += faint.Render("  " + truncate(link, room))
		}
	}
	lines = append(lines, footer)

	button := styles.Button
	if p.Read {
		button = styles.ButtonActive
	}
	lines = append(lines, button.Render(readButtonLabel(p.Read)))

	card := styles.Card
	switch {
	case p.Read:
		card = styles.CardRead
		if selected {
			card = card.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
		}
	case selected:
		card = styles.CardSelected
	}
	return card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderCards renders every post and returns the rendered list plus the
// first line of each card, used to keep the selection in view.
func (m Model) renderCards(width int) (string, []int) {
	posts := m.state.Posts
	if len(posts) == 0 {
		return m.theme.Styles().MutedText.Render("No hay publicaciones."), nil
	}

	w := cardWidth(width)
	starts := make([]int, len(posts))
	cards := make([]string, len(posts))
	line := 0
	for i, p := range posts {
		cards[i] = m.renderCard(p, i == m.selected, w)
		starts[i] = line
		line += lipgloss.Height(cards[i])
	}
	return strings.Join(cards, "\n"), starts
}

// renderActions renders the bulk-action bar.
func (m Model) renderActions() string {
	styles := m.theme.Styles()
	keyStyle := styles.WarningText
	read := keyStyle.Render("a") + " " + styles.ButtonActive.Render(labelAllRead)
	unread := keyStyle.Render("u") + " " + styles.Button.Render(labelAllUnread)
	return read + "   " + unread
}
