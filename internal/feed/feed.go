// Package feed runs one fetch cycle: list the newest posts, resolve every
// post's author concurrently, and report the outcome as a state action.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/five82/wpfeed/internal/state"
	"github.com/five82/wpfeed/internal/wordpress"
)

// Source is the slice of the WordPress API a fetch cycle needs.
type Source interface {
	ListPosts(ctx context.Context, perPage int) ([]wordpress.Post, error)
	FetchAuthor(ctx context.Context, href string) (wordpress.Author, error)
}

var _ Source = (*wordpress.Client)(nil)

// Phase identifies which network step failed.
type Phase string

const (
	PhaseList   Phase = "list"
	PhaseEnrich Phase = "enrich"
)

// FetchError reports a failed fetch cycle.
type FetchError struct {
	Phase  Phase
	PostID int64 // zero for list failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Phase == PhaseEnrich {
		return fmt.Sprintf("enrich post %d: %v", e.PostID, e.Err)
	}
	return fmt.Sprintf("list posts: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Message collapses err into the text shown to the reader. List failures
// prefer what the server put in the error body (the WordPress message, or
// the raw body when it has none); everything else uses the underlying error
// text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	if fe.Phase == PhaseList {
		var apiErr *wordpress.APIError
		if errors.As(fe.Err, &apiErr) && apiErr.Detail() != "" {
			return apiErr.Detail()
		}
	}
	return fe.Err.Error()
}

// Run dispatches FetchStart followed by the outcome of Load.
func Run(ctx context.Context, src Source, dispatch func(state.Action)) {
	dispatch(state.FetchStart{})
	dispatch(Load(ctx, src))
}

// Load performs the fetch and returns FetchSuccess or FetchError.
func Load(ctx context.Context, src Source) state.Action {
	posts, err := Fetch(ctx, src)
	if err != nil {
		log.Printf("fetch failed: %v", err)
		return state.FetchError{Message: Message(err)}
	}
	log.Printf("fetched %d posts", len(posts))
	return state.FetchSuccess{Posts: posts}
}

// Fetch lists the first page of posts and enriches each with its author.
// Any single failure fails the whole batch; no partial result is returned.
func Fetch(ctx context.Context, src Source) ([]wordpress.Post, error) {
	if src == nil {
		return nil, &FetchError{Phase: PhaseList, Err: errors.New("source is nil")}
	}
	posts, err := src.ListPosts(ctx, wordpress.PageSize)
	if err != nil {
		return nil, &FetchError{Phase: PhaseList, Err: err}
	}
	return enrich(ctx, src, posts)
}

func enrich(ctx context.Context, src Source, posts []wordpress.Post) ([]wordpress.Post, error) {
	out := make([]wordpress.Post, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	for i, post := range posts {
		g.Go(func() error {
			href, err := post.AuthorHref()
			if err != nil {
				return &FetchError{Phase: PhaseEnrich, PostID: post.ID, Err: err}
			}
			author, err := src.FetchAuthor(gctx, href)
			if err != nil {
				return &FetchError{Phase: PhaseEnrich, PostID: post.ID, Err: err}
			}
			post.Read = false
			post.AuthorName = author.Name
			post.AuthorAvatar = author.Avatar(wordpress.AvatarSize)
			out[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
