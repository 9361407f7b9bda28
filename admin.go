/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Admin live session
//
// The admin page keeps one websocket open while the host edits the game.
// Every edit is sent as a command; the server applies it to state owned by
// that connection alone and answers with a fresh admin_view.
//
// - No state is shared between connections or kept after disconnect
// - Roster names are normalized, unique and capped at 20
// - Round is clamped to 1-10, impostors to 1-2
// - Rejected roster edits answer with a notice to the sender only

package main

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/bootstrap"
	"github.com/Seednode/amongus/internal/roster"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// AdminCommand is sent by the admin page.
type AdminCommand struct {
	Type          string   `json:"type"`                     // "set_room", "set_impostors", "next_round", "prev_round", "set_round", "add_name", "remove_name", "clear", "load"
	Room          string   `json:"room,omitempty"`           // set_room / load
	Round         int      `json:"round,omitempty"`          // set_round / load
	ImpostorCount int      `json:"impostor_count,omitempty"` // set_impostors / load
	Name          string   `json:"name,omitempty"`           // add_name / remove_name
	Roster        []string `json:"roster,omitempty"`         // load
}

// AdminView is the full admin screen, sent after every command.
type AdminView struct {
	Type          string              `json:"type"` // "admin_view"
	Room          string              `json:"room"`
	Round         int                 `json:"round"`
	Rounds        int                 `json:"rounds"`
	Theme         string              `json:"theme"`
	ImpostorCount int                 `json:"impostor_count"`
	Roster        []string            `json:"roster"`
	TooFew        bool                `json:"too_few"`
	TooMany       bool                `json:"too_many"`
	PlayerLink    string              `json:"player_link"`
	InitLink      string              `json:"init_link"`
	Assignments   []assign.Assignment `json:"assignments"`
}

// NoticeMessage tells only the sender why a command was refused.
type NoticeMessage struct {
	Type    string `json:"type"` // "notice"
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AdminSession is the game being set up on one admin connection.
type AdminSession struct {
	id            string
	base          *url.URL
	room          string
	round         int
	impostorCount int
	roster        *roster.Roster
}

func newAdminSession(base *url.URL, room string) *AdminSession {
	return &AdminSession{
		id:            uuid.NewString(),
		base:          base,
		room:          room,
		round:         1,
		impostorCount: 1,
		roster:        roster.New(nil),
	}
}

// sessionFromQuery rebuilds a session from the query string used by the
// stateless admin API and QR endpoints.
func sessionFromQuery(cfg *Config, r *http.Request) *AdminSession {
	q := r.URL.Query()

	s := newAdminSession(baseURL(cfg, r), cfg.room(q.Get(bootstrap.ParamRoom)))
	s.round = bootstrap.ParseRound(q.Get("round"))
	s.impostorCount = bootstrap.ParseImpostors(q.Get("impostors"))
	s.roster = roster.New(q["name"])

	return s
}

func (s *AdminSession) snapshot() bootstrap.Snapshot {
	return bootstrap.Snapshot{
		Room:          s.room,
		Round:         s.round,
		ImpostorCount: s.impostorCount,
		Roster:        s.roster.Names(),
	}
}

// apply runs one command, returning a notice when it is refused.
func (s *AdminSession) apply(cmd AdminCommand) *NoticeMessage {
	switch cmd.Type {
	case "set_room":
		room := assign.Normalize(cmd.Room)
		if room == "" {
			return &NoticeMessage{Type: "notice", Field: "room", Message: "Room code cannot be blank."}
		}
		s.room = room

	case "set_impostors":
		s.impostorCount = assign.ClampImpostors(cmd.ImpostorCount)

	case "next_round":
		s.round = assign.ClampRound(s.round + 1)

	case "prev_round":
		s.round = assign.ClampRound(s.round - 1)

	case "set_round":
		s.round = assign.ClampRound(cmd.Round)

	case "add_name":
		_, err := s.roster.Add(cmd.Name)
		switch {
		case errors.Is(err, roster.ErrEmptyName):
			return &NoticeMessage{Type: "notice", Field: "name", Message: "Type a player name first."}
		case errors.Is(err, roster.ErrDuplicate):
			return &NoticeMessage{Type: "notice", Field: "name", Message: "That player is already on the roster."}
		case errors.Is(err, roster.ErrFull):
			return &NoticeMessage{Type: "notice", Field: "name", Message: "The roster already has 20 players."}
		}

	case "remove_name":
		s.roster.Remove(cmd.Name)

	case "clear":
		s.roster.Clear()

	case "load":
		if room := assign.Normalize(cmd.Room); room != "" {
			s.room = room
		}
		s.round = assign.ClampRound(cmd.Round)
		s.impostorCount = assign.ClampImpostors(cmd.ImpostorCount)
		s.roster = roster.New(cmd.Roster)

	default:
		return &NoticeMessage{Type: "notice", Field: "type", Message: "Unknown command."}
	}

	return nil
}

func (s *AdminSession) view() (AdminView, error) {
	snap := s.snapshot()

	initLink, err := bootstrap.InitLink(s.base, snap)
	if err != nil {
		return AdminView{}, err
	}

	return AdminView{
		Type:          "admin_view",
		Room:          s.room,
		Round:         s.round,
		Rounds:        assign.Rounds,
		Theme:         assign.ThemeFor(s.round).Label,
		ImpostorCount: s.impostorCount,
		Roster:        snap.Roster,
		TooFew:        s.roster.TooFew(),
		TooMany:       s.roster.TooMany(),
		PlayerLink:    bootstrap.PlayerLink(s.base, s.room),
		InitLink:      initLink,
		Assignments:   assign.All(snap.Roster, s.room, s.round, s.impostorCount),
	}, nil
}

type adminClient struct {
	conn    *websocket.Conn
	send    chan any
	session *AdminSession
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func serveAdminWS(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		session := sessionFromQuery(cfg, r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Admin upgrade from %s failed: %v", realIP(r), err)
			return
		}

		logf(cfg, "GAMES: Admin session %s opened by %s for room %q", session.id, realIP(r), session.room)

		c := &adminClient{
			conn:    conn,
			send:    make(chan any, 8),
			session: session,
		}

		go c.writePump()
		c.readPump(cfg)

		logf(cfg, "GAMES: Admin session %s closed", session.id)
	}
}

func (c *adminClient) pushView(cfg *Config) bool {
	v, err := c.session.view()
	if err != nil {
		logf(cfg, "ERROR: Admin session %s view: %v", c.session.id, err)
		return false
	}

	c.send <- v

	return true
}

func (c *adminClient) readPump(cfg *Config) {
	defer func() {
		close(c.send)
		_ = c.conn.Close()
	}()

	if !c.pushView(cfg) {
		return
	}

	for {
		var cmd AdminCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}

		if notice := c.session.apply(cmd); notice != nil {
			c.send <- *notice
			continue
		}

		if !c.pushView(cfg) {
			return
		}
	}
}

func (c *adminClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			// keep draining so readPump never blocks on a dead socket
			for range c.send {
			}
			return
		}
	}
}
