/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Presidle President Game
//
// The player is shown a portrait and must name the president in it, with a
// limited number of attempts and live name suggestions. A correct guess
// leads into two multiple-choice bonus questions about the president's term
// and vice presidents. Every round ends after a short pause and a new one
// begins automatically.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Each game ID owns one session; every tab on that ID sees the same state
// - All input is evaluated server-side, one event at a time, per game
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"hash/fnv"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/presidle/games/presidents"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	mrand "math/rand/v2"
)

const (
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Messages coming from clients. Type is one of the presidents.EventKind
// values a client may send.
type ClientMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Index int    `json:"index,omitempty"`
	Seq   int    `json:"seq,omitempty"`
}

// StateMessage carries the full render state after every change.
type StateMessage struct {
	Type  string          `json:"type"` // "state"
	State presidents.View `json:"state"`
}

// SimpleMessage is for generic notifications ("closed", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type clientEvent struct {
	client *Client
	event  presidents.Event
}

type Hub struct {
	id      string
	game    *presidents.Game
	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	events   chan clientEvent
	resets   chan int
	quit     chan struct{}
	stop     sync.Once

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
}

func newHub(gameID string, game *presidents.Game) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		game:       game,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		events:     make(chan clientEvent),
		resets:     make(chan int),
		quit:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

// run is the only goroutine that touches h.game, so events are applied
// strictly one at a time, in arrival order.
func (h *Hub) run(cfg *Config) {
	for {
		select {
		case <-h.quit:
			return

		case c := <-h.register:
			h.mu.Lock()
			select {
			case <-h.quit:
				close(c.send)
			default:
				h.lastActive = time.Now()
				h.clients[c] = true
				c.send <- StateMessage{Type: "state", State: h.game.View()}
			}
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case ce := <-h.events:
			h.apply(cfg, ce.event, ce.client.playerID)

		case round := <-h.resets:
			h.apply(cfg, presidents.Event{Kind: presidents.EventReset, Round: round}, "")
		}
	}
}

// apply dispatches ev to the game and broadcasts the resulting state.
func (h *Hub) apply(cfg *Config, ev presidents.Event, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	before := h.game.Stage()
	res := h.game.Dispatch(ev)
	if !res.Changed {
		return
	}

	switch {
	case res.Ended:
		logf(cfg, "GAMES: Round %d of %s ended in %s for %s (%s)",
			res.Round, h.id, res.Outcome, h.game.Current().Name, playerID)
		h.scheduleReset(res.Round, res.Delay)
	case ev.Kind == presidents.EventReset:
		logf(cfg, "GAMES: Round %d of %s started", h.game.Round(), h.id)
	case before != h.game.Stage():
		logf(cfg, "GAMES: %s advanced %s to %s", playerID, h.id, h.game.Stage())
	}

	h.broadcastStateLocked()
}

// scheduleReset posts the end-of-round reset back onto the run loop after d.
func (h *Hub) scheduleReset(round int, d time.Duration) {
	time.AfterFunc(d, func() {
		select {
		case h.resets <- round:
		case <-h.quit:
		}
	})
}

func (h *Hub) broadcastStateLocked() {
	msg := StateMessage{
		Type:  "state",
		State: h.game.View(),
	}

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// closeAll disconnects all clients of this hub and stops its run loop.
func (h *Hub) closeAll() {
	h.stop.Do(func() {
		close(h.quit)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- SimpleMessage{
			Type:    "closed",
			Message: "This game has ended. Reload the page to start a new one.",
		}:
		default:
		}
		close(c.send)
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const playerCookieName = "presidle_id"

func getOrSetPlayerID(cfg *Config, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     cfg.prefix + "/",
		HttpOnly: true,
		Secure:   cfg.scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	records     []presidents.Record
	opts        presidents.Options
	seed        uint64
	quit        chan struct{}
	stop        sync.Once
}

func newGameManager(cfg *Config, records []presidents.Record) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
		records:     records,
		opts:        cfg.gameOptions(),
		seed:        cfg.seed,
		quit:        make(chan struct{}),
	}

	if gm.idleTimeout > 0 {
		go gm.reaperLoop(cfg)
	}

	return gm
}

// rng returns the random source for a new game. With a fixed seed, the same
// game ID always plays out the same way.
func (gm *GameManager) rng(gameID string) *mrand.Rand {
	if gm.seed == 0 {
		return mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(gameID))

	return mrand.New(mrand.NewPCG(gm.seed, h.Sum64()))
}

func (gm *GameManager) getHub(cfg *Config, gameID string) (*Hub, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub, nil
	}

	game, err := presidents.NewGame(gm.records, gm.rng(gameID), gm.opts)
	if err != nil {
		return nil, err
	}

	hub := newHub(gameID, game)
	gm.hubs[gameID] = hub
	go hub.run(cfg)

	logf(cfg, "GAMES: Round 1 of %s started", gameID)

	return hub, nil
}

const gameIDLength = 8

// newGameID returns a random base32 ID not held by any live game.
func (gm *GameManager) newGameID() string {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		id := rand.Text()[:gameIDLength]
		if _, taken := gm.hubs[id]; !taken {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop(cfg *Config) {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-gm.quit:
			return
		case <-ticker.C:
			gm.reap(cfg, time.Now().Add(-gm.idleTimeout))
		}
	}
}

// reap closes every hub whose last activity is before cutoff.
func (gm *GameManager) reap(cfg *Config, cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			go hub.closeAll()

			logf(cfg, "GAMES: Reaped idle game %s", id)
		}
	}
}

// shutdown stops the reaper and closes every hub.
func (gm *GameManager) shutdown() {
	gm.stop.Do(func() {
		close(gm.quit)
	})

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		delete(gm.hubs, id)
		hub.closeAll()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(cfg, w, r)

		hub, err := gm.getHub(cfg, gameID)
		if err != nil {
			http.Error(w, "unable to start game", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: upgrade for %s failed: %v", realIP(r), err)
			return
		}
		conn.SetReadLimit(maxMessageSize)

		client := &Client{
			conn:     conn,
			send:     make(chan any, sendBuffer),
			playerID: playerID,
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			_ = conn.Close()
			return
		}

		logf(cfg, "GAMES: Player %s connected to %s from %s", playerID, gameID, realIP(r))

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.quit:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		kind := presidents.EventKind(msg.Type)
		if !kind.Accepts() {
			// ignore unknown types
			continue
		}

		select {
		case h.events <- clientEvent{
			client: c,
			event: presidents.Event{
				Kind:  kind,
				Text:  msg.Text,
				Index: msg.Index,
				Seq:   msg.Seq,
			},
		}:
		case <-h.quit:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// gameURL is the absolute URL of the game a /qr request belongs to. The
// request path already carries any --prefix, so only the "/qr" suffix is
// dropped. A proxy's X-Forwarded-Proto wins over the local TLS state.
func gameURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")
}

// qrHandler renders gameURL as a PNG so another device can join the same
// session by scanning it.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("gameid") == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	url := gameURL(r)

	const qrSize = 320 // mobile-friendly size

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

//go:embed assets/presidents/index.html
var indexHTML string

func getIndexHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	page := []byte(strings.ReplaceAll(indexHTML, "{{prefix}}", cfg.prefix))

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)
		_ = getOrSetPlayerID(cfg, w, r)

		_, err := w.Write(page)
		if err != nil {
			errs <- err

			return
		}
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerPresidentsGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
//
// If the president data failed to load, every game route serves a static
// error page instead and no game is ever created.
func registerPresidentsGame(cfg *Config, path string, mux *httprouter.Router, records []presidents.Record, loadErr error, errs chan<- error) *GameManager {
	if loadErr == nil && len(records) == 0 {
		loadErr = presidents.ErrNoRecords
	}

	if loadErr != nil {
		failed := serveLoadFailure(cfg, errs)

		mux.GET(cfg.prefix+path, failed)
		mux.GET(cfg.prefix+path+"/:gameid", failed)
		mux.GET(cfg.prefix+path+"/:gameid/ws", failed)
		mux.GET(cfg.prefix+path+"/:gameid/qr", failed)

		return nil
	}

	gm := newGameManager(cfg, records)

	// Root path → redirect to new random game
	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	// Per-game client view (HTML)
	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg, errs))

	// Per-game websocket
	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	// Per-game QR code
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)

	return gm
}
