package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRegistryRegisterGeneratesIDs(t *testing.T) {
	reg := NewRegistry()
	client := NewClient("c1", "127.0.0.1", 0)

	session, count := reg.Register(ConnectRequest{RemoteAddr: "127.0.0.1"}, client)
	require.Equal(t, 1, count)

	require.NotEmpty(t, session.SessionID)
	require.NotEmpty(t, session.UserID)
	require.Equal(t, "User-"+session.UserID[:8], session.Name)
	require.Equal(t, "127.0.0.1", session.RemoteAddr)
	require.Same(t, client, session.Client)
	require.Equal(t, 1, reg.Count())
}

func TestRegistryKeepsSuppliedIDs(t *testing.T) {
	reg := NewRegistry()

	session, _ := reg.Register(ConnectRequest{SessionID: "s1", UserID: "abc"}, NewClient("c1", "", 0))

	require.Equal(t, "s1", session.SessionID)
	require.Equal(t, "abc", session.UserID)
	require.Equal(t, "User-abc", session.Name)
}

func TestRegistryReconnectReplacesSession(t *testing.T) {
	reg := NewRegistry()
	first := NewClient("c1", "", 0)
	second := NewClient("c2", "", 0)

	reg.Register(ConnectRequest{SessionID: "s1", UserID: "u1"}, first)
	_, count := reg.Register(ConnectRequest{SessionID: "s1", UserID: "u1"}, second)
	require.Equal(t, 1, count)
	require.Equal(t, 1, reg.Count())

	// The replaced connection closing must not remove the live one.
	_, count, ok := reg.Unregister(first)
	require.False(t, ok)
	require.Equal(t, 1, count)
	require.Equal(t, 1, reg.Count())

	session, ok := reg.FindByClient(second)
	require.True(t, ok)
	require.Equal(t, "s1", session.SessionID)

	removed, count, ok := reg.Unregister(second)
	require.True(t, ok)
	require.Zero(t, count)
	require.Equal(t, "s1", removed.SessionID)
	require.Zero(t, reg.Count())
}

func TestRegistryUnregisterUnknownIsNoop(t *testing.T) {
	reg := NewRegistry()
	client := NewClient("c1", "", 0)

	session, _, ok := reg.Unregister(client)
	require.False(t, ok)
	require.Nil(t, session)

	reg.Register(ConnectRequest{SessionID: "s1"}, client)
	_, _, ok = reg.Unregister(client)
	require.True(t, ok)
	_, _, ok = reg.Unregister(client)
	require.False(t, ok)
}

func TestRegistryFindByClientUnknown(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.FindByClient(NewClient("ghost", "", 0))
	require.False(t, ok)
}

func TestRegistryConcurrentChurn(t *testing.T) {
	reg := NewRegistry()
	const workers = 50

	clients := make([]*Client, workers)
	for i := range clients {
		clients[i] = NewClient(fmt.Sprintf("c%d", i), "", 0)
	}

	var g errgroup.Group
	for i, c := range clients {
		g.Go(func() error {
			reg.Register(ConnectRequest{SessionID: fmt.Sprintf("s%d", i)}, c)
			if i%2 == 0 {
				reg.Unregister(c)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, workers/2, reg.Count())
	require.Len(t, reg.Clients(), workers/2)
	require.Len(t, reg.Sessions(), workers/2)
}
