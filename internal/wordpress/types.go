package wordpress

import (
	"fmt"
	"strconv"
	"strings"
)

// Rendered wraps WordPress fields that are delivered as server-rendered markup.
type Rendered struct {
	Rendered string `json:"rendered" yaml:"rendered"`
}

// Link is a single HAL-style relation entry from _links.
type Link struct {
	Href       string `json:"href" yaml:"href"`
	Embeddable bool   `json:"embeddable,omitempty" yaml:"embeddable,omitempty"`
}

// Links holds the relations wpfeed follows.
type Links struct {
	Author []Link `json:"author" yaml:"author"`
}

// Post mirrors an entry from /wp-json/wp/v2/posts.
//
// AuthorName and AuthorAvatar are filled by enrichment and Read is owned by
// the view state; none of them come from the posts endpoint.
type Post struct {
	ID               int64    `json:"id" yaml:"id"`
	Title            Rendered `json:"title" yaml:"title"`
	Excerpt          Rendered `json:"excerpt" yaml:"excerpt"`
	Content          Rendered `json:"content" yaml:"content"`
	Date             string   `json:"date" yaml:"date"`
	Modified         string   `json:"modified" yaml:"modified"`
	Link             string   `json:"link" yaml:"link"`
	FeaturedMediaURL string   `json:"jetpack_featured_media_url" yaml:"featured_media_url"`
	Links            Links    `json:"_links" yaml:"-"`

	AuthorName   string `json:"authorName,omitempty" yaml:"author_name,omitempty"`
	AuthorAvatar string `json:"authorAvatar,omitempty" yaml:"author_avatar,omitempty"`
	Read         bool   `json:"read" yaml:"read"`
}

// AuthorHref returns the first author relation link.
func (p Post) AuthorHref() (string, error) {
	if len(p.Links.Author) == 0 {
		return "", fmt.Errorf("post %d has no author link", p.ID)
	}
	href := strings.TrimSpace(p.Links.Author[0].Href)
	if href == "" {
		return "", fmt.Errorf("post %d has an empty author link", p.ID)
	}
	return href, nil
}

// Author mirrors the subset of /wp-json/wp/v2/users/<id> wpfeed reads.
type Author struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	AvatarURLs map[string]string `json:"avatar_urls"`
}

// Avatar returns the avatar URL for the given pixel size, or "" if the
// site does not publish one.
func (a Author) Avatar(size int) string {
	return a.AvatarURLs[strconv.Itoa(size)]
}

// errorBody mirrors the JSON WordPress sends with 4xx/5xx responses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
