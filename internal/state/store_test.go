package state

import (
	"sync"
	"testing"
)

func TestStore_DispatchAndSnapshotClone(t *testing.T) {
	s := NewStore()

	s.Dispatch(FetchStart{})
	s.Dispatch(FetchSuccess{Posts: samplePosts(1, 2)})

	snap := s.Snapshot()
	if snap.Loading {
		t.Fatalf("Loading = true, want false after success")
	}
	if len(snap.Posts) != 2 || snap.Posts[0].ID != 1 {
		t.Fatalf("snapshot posts = %#v, want 2 posts", snap.Posts)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Posts[0].Read = true
	if s.Snapshot().Posts[0].Read {
		t.Fatalf("Snapshot should clone posts")
	}
}

func TestStore_ZeroValueBehavesLikeInitial(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Posts == nil || len(snap.Posts) != 0 {
		t.Fatalf("zero Store posts = %#v, want empty non-nil", snap.Posts)
	}

	s.Dispatch(FetchError{Message: "boom"})
	snap = s.Snapshot()
	if snap.Error != "boom" || snap.Phase() != PhaseError {
		t.Fatalf("snapshot = %#v, want error phase", snap)
	}
	if snap.Posts == nil {
		t.Fatalf("posts = nil, want empty slice")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore()
	s.Dispatch(FetchSuccess{Posts: samplePosts(1)})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(ToggleRead{ID: 1})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the post unread.
	if s.Snapshot().Posts[0].Read {
		t.Fatalf("Read = true after 100 toggles, want false")
	}
}
