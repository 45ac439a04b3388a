package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	"github.com/lintang-b-s/campusnav/pkg/engine/tracking"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

const (
	messageTypeRoute    = "route"
	messageTypePosition = "position"
)

var errNoActiveRoute = errors.New("no active route, send a route message first")

type wsRequest struct {
	Type      string  `json:"type" validate:"required,oneof=route position"`
	Source    string  `json:"source" validate:"required_if=Type route"`
	Target    string  `json:"target" validate:"required_if=Type route"`
	Monotonic bool    `json:"monotonic"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lon       float64 `json:"lon" validate:"min=-180,max=180"`
}

// session. route a user is currently walking, owned by exactly one connection.
type session struct {
	source   string
	target   string
	polyline []geo.Coordinate
	// nil unless the route was requested with monotonic tracking
	monotonic *tracking.MonotonicTracker
}

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub

	mu      sync.Mutex
	session *session
}

func (u *User) readRequest() (*wsRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &wsRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// HandleRequest. read one message and answer it. a non nil error means the connection is unusable.
func (u *User) HandleRequest() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateStruct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	switch req.Type {
	case messageTypeRoute:
		return u.handleRoute(req)
	default:
		return u.handlePosition(req)
	}
}

func (u *User) handleRoute(req *wsRequest) error {
	route, coords, err := u.hub.routingService.ShortestPath(req.Source, req.Target)
	if err != nil {
		return u.writeError(statusOf(err), err.Error())
	}

	s := &session{source: req.Source, target: req.Target, polyline: coords}
	if req.Monotonic {
		s.monotonic = u.hub.trackingService.NewSession(coords)
	}

	u.mu.Lock()
	u.session = s
	u.mu.Unlock()

	return u.write(envelope{"type": messageTypeRoute, "data": NewShortestPathResponse(req.Source, req.Target,
		route, coords)})
}

func (u *User) handlePosition(req *wsRequest) error {
	u.mu.Lock()
	s := u.session
	u.mu.Unlock()

	if s == nil {
		return u.writeError(http.StatusConflict, errNoActiveRoute.Error())
	}

	pos := geo.NewCoordinate(req.Lat, req.Lon)
	var progress tracking.Progress
	if s.monotonic != nil {
		progress = s.monotonic.Update(pos)
	} else {
		p, err := u.hub.trackingService.TrackProgress(pos, s.polyline, 0)
		if err != nil {
			return u.writeError(statusOf(err), err.Error())
		}
		progress = p
	}

	return u.write(envelope{"type": messageTypePosition, "data": NewTrackProgressResponse(progress)})
}

func statusOf(err error) int {
	var ierr *util.Error
	if errors.As(err, &ierr) {
		switch ierr.Code() {
		case util.ErrNotFound:
			return http.StatusNotFound
		case util.ErrBadParamInput:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": newErrorResponse(status, message).Error})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User

	routingService  RoutingService
	trackingService TrackingService

	pool *concurrent.GoroutinePool
}

func NewHub(pool *concurrent.GoroutinePool, routingService RoutingService, trackingService TrackingService) *Hub {
	hub := &Hub{
		pool:            pool,
		ns:              make(map[uint]*User),
		us:              make([]*User, 0),
		routingService:  routingService,
		trackingService: trackingService,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		user.conn.Close()
		h.Remove(user)
	}
}

func (h *Hub) NumberOfUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}
