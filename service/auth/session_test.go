package authsvc

import (
	"context"
	"testing"

	"bookshare/model"
	"bookshare/store"
)

type fakeAuth struct {
	emit func(store.AuthState)
}

func (f *fakeAuth) Me(ctx context.Context) (*model.User, error) { return nil, nil }

func (f *fakeAuth) OnAuthStateChanged(fn func(store.AuthState)) func() {
	f.emit = fn
	return func() { f.emit = nil }
}

func TestSession_ReplaysLatestSnapshotOnSubscribe(t *testing.T) {
	fa := &fakeAuth{}
	s := NewSession(fa)
	defer s.Close()

	fa.emit(store.AuthState{User: &model.User{ID: "u1"}})

	var got []store.AuthState
	unsub := s.Subscribe(func(st store.AuthState) { got = append(got, st) })
	defer unsub()

	if len(got) != 1 || got[0].User == nil || got[0].User.ID != "u1" {
		t.Fatalf("replay = %+v", got)
	}
}

func TestSession_UnsubscribeStopsDelivery(t *testing.T) {
	fa := &fakeAuth{}
	s := NewSession(fa)
	defer s.Close()

	var calls int
	unsub := s.Subscribe(func(store.AuthState) { calls++ })
	if calls != 1 {
		t.Fatalf("want initial replay, got %d calls", calls)
	}

	fa.emit(store.AuthState{})
	if calls != 2 {
		t.Fatalf("want delivery before unsubscribe, got %d", calls)
	}

	unsub()
	fa.emit(store.AuthState{})
	if calls != 2 {
		t.Fatalf("delivery after unsubscribe: %d calls", calls)
	}
}

func TestSession_CurrentTracksBroadcasts(t *testing.T) {
	fa := &fakeAuth{}
	s := NewSession(fa)
	defer s.Close()

	if st := s.Current(); !st.IsLoading {
		t.Fatal("initial snapshot should be loading")
	}

	fa.emit(store.AuthState{User: &model.User{ID: "u2"}})
	if st := s.Current(); st.IsLoading || st.User == nil || st.User.ID != "u2" {
		t.Fatalf("current = %+v", st)
	}
}
