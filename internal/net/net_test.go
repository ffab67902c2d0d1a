package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
)

func startHub(t *testing.T, scene *state.Scene) (*Hub, string) {
	t.Helper()
	hub := NewHub(scene)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestWebSocketURL(t *testing.T) {
	u, err := WebSocketURL(ShareLink("192.168.1.2", 8888))
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.2:8888/ws", u)

	u, err = WebSocketURL("sketchboard://10.0.0.1:9000/")
	require.NoError(t, err)
	assert.Equal(t, "ws://10.0.0.1:9000/ws", u)

	_, err = WebSocketURL(Scheme)
	assert.Error(t, err)
}

func TestHubSendsHello(t *testing.T) {
	scene := state.NewScene(nil)
	scene.AddElements(element.NewRectangle(nil, element.Options{ID: "r"}))
	_, url := startHub(t, scene)

	c := dial(t, url)
	msg, err := c.Receive()
	require.NoError(t, err)
	assert.Equal(t, MessageHello, msg.Type)
	require.Len(t, msg.Elements, 1)
	assert.Equal(t, "r", msg.Elements[0].Common().ID)
}

func TestHubReconcilesAndRelays(t *testing.T) {
	scene := state.NewScene(nil)
	hub, url := startHub(t, scene)

	remoteChanges := make(chan int, 4)
	hub.OnRemoteChange = func(changed []element.Element) { remoteChanges <- len(changed) }

	a := dial(t, url)
	b := dial(t, url)
	for _, c := range []*Client{a, b} {
		msg, err := c.Receive()
		require.NoError(t, err)
		require.Equal(t, MessageHello, msg.Type)
	}
	require.Eventually(t, func() bool { return hub.Peers() == 2 }, 2*time.Second, 10*time.Millisecond)

	rect := element.NewRectangle(nil, element.Options{ID: "shared"})
	require.NoError(t, a.Send(Message{Type: MessageUpdate, Elements: []element.Element{rect}}))

	msg, err := b.Receive()
	require.NoError(t, err)
	assert.Equal(t, MessageUpdate, msg.Type)
	require.Len(t, msg.Elements, 1)
	assert.Equal(t, "shared", msg.Elements[0].Common().ID)

	_, ok := scene.ElementByID("shared")
	assert.True(t, ok)
	assert.Equal(t, 1, <-remoteChanges)

	// A stale copy changes nothing and is not relayed.
	require.NoError(t, a.Send(Message{Type: MessageUpdate, Elements: []element.Element{rect}}))

	require.NoError(t, a.Send(Message{Type: MessageClear}))
	for _, c := range []*Client{a, b} {
		msg, err := c.Receive()
		require.NoError(t, err)
		assert.Equal(t, MessageUpdate, msg.Type)
		require.Len(t, msg.Elements, 1)
		assert.True(t, msg.Elements[0].Common().IsDeleted)
	}
	assert.Empty(t, scene.NonDeletedElements())
}

func TestHubPublish(t *testing.T) {
	scene := state.NewScene(nil)
	hub, url := startHub(t, scene)
	scene.OnChange = hub.Publish

	c := dial(t, url)
	_, err := c.Receive()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, 2*time.Second, 10*time.Millisecond)

	scene.AddElements(element.NewEllipse(nil, element.Options{ID: "e"}))
	msg, err := c.Receive()
	require.NoError(t, err)
	assert.Equal(t, MessageUpdate, msg.Type)
	assert.Equal(t, state.SiteID(), msg.OwnerID)
	require.Len(t, msg.Elements, 1)
	assert.Equal(t, element.KindEllipse, msg.Elements[0].Kind())
}

func TestClientSync(t *testing.T) {
	host := state.NewScene(nil)
	host.AddElements(element.NewRectangle(nil, element.Options{ID: "from-host"}))
	hub, url := startHub(t, host)
	host.OnChange = hub.Publish

	local := state.NewScene(nil)
	local.AddElements(element.NewEllipse(nil, element.Options{ID: "from-client"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := dial(t, url)
	done := make(chan error, 1)
	go func() { done <- c.Sync(ctx, local, nil) }()

	require.Eventually(t, func() bool {
		_, ok := local.ElementByID("from-host")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := host.ElementByID("from-client")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	local.AddElements(element.NewDiamond(nil, element.Options{ID: "later"}))
	require.Eventually(t, func() bool {
		_, ok := host.ElementByID("later")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("sync did not stop")
	}
}
