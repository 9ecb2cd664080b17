package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoom_Join_Then_Leave(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	alice := factory.NewSession((&recorder{}).send, "lobby")
	alice.HandleJoin("alice")
	room := alice.Room()

	// Given alice is a member
	req.Equal([]string{"alice"}, room.Members())

	// When she leaves
	room.Leave(alice)

	// Then she is gone
	req.Empty(room.Members())

	// And leaving again is a no-op
	req.NotPanics(func() { room.Leave(alice) })
	req.Zero(room.Len())
}

func TestRoom_Join_Twice_Keeps_One_Membership(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	peer := &recorder{}
	alice := factory.NewSession(peer.send, "lobby")
	alice.HandleJoin("alice")

	alice.Room().Join(alice)
	alice.Room().Broadcast(NewNote("ping"))

	req.Equal(1, alice.Room().Len())
	// join note + ping, each delivered once
	req.Equal(2, peer.count())
}

func TestRoom_Leave_Never_Joined(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	stranger := factory.NewSession((&recorder{}).send, "lobby")

	req.NotPanics(func() { stranger.Room().Leave(stranger) })
	req.Zero(stranger.Room().Len())
}

func TestRoom_Broadcast_Isolates_Failing_Member(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	peerA, peerB, peerC := &recorder{}, &recorder{fail: true}, &recorder{}

	room := factory.Registry().Get("lobby")
	for _, s := range []*Session{
		factory.NewSession(peerA.send, "lobby"),
		factory.NewSession(peerB.send, "lobby"),
		factory.NewSession(peerC.send, "lobby"),
	} {
		room.Join(s)
	}

	// When a message is broadcast while B's transport fails
	req.NotPanics(func() { room.Broadcast(NewNote("hello")) })

	// Then A and C each receive it exactly once
	req.Equal(1, peerA.count())
	req.Equal(1, peerC.count())
	req.Equal("hello", peerA.messages(t)[0]["text"])
	req.Zero(peerB.count())
}

func TestRoom_Broadcast_Survives_Panicking_Member(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	peer := &recorder{}

	room := factory.Registry().Get("lobby")
	room.Join(factory.NewSession(func([]byte) error { panic("send on closed channel") }, "lobby"))
	room.Join(factory.NewSession(peer.send, "lobby"))

	req.NotPanics(func() { room.Broadcast(NewNote("still here")) })
	req.Equal(1, peer.count())
}

func TestRoom_Members_Is_A_Snapshot(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	alice := factory.NewSession((&recorder{}).send, "lobby")
	bob := factory.NewSession((&recorder{}).send, "lobby")
	alice.HandleJoin("alice")
	bob.HandleJoin("bob")

	members := alice.Room().Members()
	req.Equal([]string{"alice", "bob"}, members)

	// Mutating the snapshot does not touch the room
	members[0] = "mallory"
	bob.HandleClose()

	req.Equal([]string{"alice"}, alice.Room().Members())
	req.Equal([]string{"mallory", "bob"}, members)
}

func TestRoom_Concurrent_Join_Leave_Broadcast(t *testing.T) {
	req := require.New(t)
	factory := newTestFactory(nil)
	room := factory.Registry().Get("lobby")

	const sessions = 50
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := factory.NewSession((&recorder{}).send, "lobby")
			room.Join(s)
			room.Broadcast(NewNote("tick"))
			_ = room.Members()
			room.Leave(s)
		}()
	}
	wg.Wait()

	req.Zero(room.Len())
}
