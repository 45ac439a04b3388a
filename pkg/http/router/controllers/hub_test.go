package controllers

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exchange. send one client message over the pipe and return the server reply.
func exchange(t *testing.T, user *User, client net.Conn, msg string) map[string]json.RawMessage {
	t.Helper()

	go func() {
		_ = wsutil.WriteClientText(client, []byte(msg))
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- user.HandleRequest()
	}()

	reply, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	require.NoError(t, <-errc)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(reply, &resp))
	return resp
}

func newTestHub(t *testing.T) (*Hub, *User, net.Conn) {
	t.Helper()
	rs, ts := newTestServices(t)
	pool := concurrent.NewGoroutinePool(4, 1)
	t.Cleanup(pool.Close)

	hub := NewHub(pool, rs, ts)
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return hub, hub.Register(server), client
}

func TestHubPositionBeforeRoute(t *testing.T) {
	_, user, client := newTestHub(t)

	resp := exchange(t, user, client, `{"type":"position","lat":25.1917,"lon":55.2526}`)
	assert.Contains(t, string(resp["error"]), "no active route")
}

func TestHubRouteAndTrack(t *testing.T) {
	hub, user, client := newTestHub(t)
	assert.Equal(t, 1, hub.NumberOfUsers())

	resp := exchange(t, user, client, `{"type":"route","source":"Canteen","target":"Book Store"}`)
	require.Contains(t, resp, "data")
	var route shortestPathResponse
	require.NoError(t, json.Unmarshal(resp["data"], &route))
	assert.Equal(t, []string{"Canteen", "Book Store"}, route.Path)

	// standing on the target
	resp = exchange(t, user, client, `{"type":"position","lat":25.192070047768066,"lon":55.25247272104025}`)
	var progress trackProgressResponse
	require.NoError(t, json.Unmarshal(resp["data"], &progress))
	assert.Equal(t, 1, progress.ClosestIndex)
	assert.True(t, progress.Arrived)

	// nearest point semantics: walking back to the start gives the whole route again
	resp = exchange(t, user, client, `{"type":"position","lat":25.19165167683939,"lon":55.2522661909461}`)
	require.NoError(t, json.Unmarshal(resp["data"], &progress))
	assert.Equal(t, 0, progress.ClosestIndex)
	assert.Len(t, progress.Remaining, 2)

	hub.Remove(user)
	assert.Equal(t, 0, hub.NumberOfUsers())
	// removing twice is a no-op
	hub.Remove(user)
}

func TestHubMonotonicSession(t *testing.T) {
	_, user, client := newTestHub(t)

	exchange(t, user, client, `{"type":"route","source":"Canteen","target":"Book Store","monotonic":true}`)

	resp := exchange(t, user, client, `{"type":"position","lat":25.192070047768066,"lon":55.25247272104025}`)
	var progress trackProgressResponse
	require.NoError(t, json.Unmarshal(resp["data"], &progress))
	assert.Equal(t, 1, progress.ClosestIndex)

	resp = exchange(t, user, client, `{"type":"position","lat":25.19165167683939,"lon":55.2522661909461}`)
	require.NoError(t, json.Unmarshal(resp["data"], &progress))
	assert.Equal(t, 1, progress.ClosestIndex)
}

func TestHubInvalidMessages(t *testing.T) {
	_, user, client := newTestHub(t)

	testCases := []struct {
		name string
		msg  string
		want string
	}{
		{name: "unknown type", msg: `{"type":"teleport"}`, want: "Bad Request"},
		{name: "route without target", msg: `{"type":"route","source":"Canteen"}`, want: "Bad Request"},
		{name: "unknown location", msg: `{"type":"route","source":"Canteen","target":"Gym"}`, want: "Not Found"},
		{name: "latitude out of range", msg: `{"type":"position","lat":91,"lon":0}`, want: "Bad Request"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			resp := exchange(t, user, client, tt.msg)
			assert.Contains(t, string(resp["error"]), tt.want)
		})
	}
}
