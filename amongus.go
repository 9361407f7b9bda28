/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Among Us word game
//
// The host keeps a roster and picks a round; every player opens the game on
// their own phone and sees only their own word. Roles and words are derived
// from (roster, room, round, impostor count), so the server keeps no game
// state at all.
//
// Routes:
//   - /?mode=admin&room=             admin page
//   - /?mode=player&room=            player page
//   - /?mode=player&room=&bootstrap= one-time device setup, then redirect
//   - /api/word?room=                POST {name, round} -> {round, theme, word}
//   - /api/assignments?...           admin preview as JSON
//   - /api/links?...                 player and init links
//   - /api/themes                    theme labels by round
//   - /qr?...                        PNG QR code for the player or init link
//   - /admin/ws?room=                admin live session

package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/bootstrap"
	"github.com/Seednode/amongus/internal/device"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize       = 320
	maxBodyBytes = 4 << 10
)

type wordRequest struct {
	Name  string `json:"name"`
	Round int    `json:"round"`
}

type linksResponse struct {
	Player string `json:"player"`
	Init   string `json:"init"`
}

type themeResponse struct {
	Round int    `json:"round"`
	Label string `json:"label"`
}

func deviceState(cfg *Config, w http.ResponseWriter, r *http.Request) *device.State {
	return device.New(device.NewCookieStore(w, r, cfg.prefix+"/", cfg.scheme() == "https"))
}

// serveGamePage serves the admin or player page. A player link carrying a
// bootstrap payload stores the roster on the device and redirects to the
// same link without it; a payload that cannot be decoded is ignored.
func serveGamePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		q := r.URL.Query()
		room := cfg.room(q.Get(bootstrap.ParamRoom))

		page := "assets/admin.html"
		if q.Get(bootstrap.ParamMode) == bootstrap.ModePlayer {
			page = "assets/player.html"

			if payload := q.Get(bootstrap.ParamBootstrap); payload != "" {
				snap, err := deviceState(cfg, w, r).Bootstrap(room, payload)
				if err == nil {
					logf(cfg, "GAMES: Device %s initialized for room %q with %d players", realIP(r), room, len(snap.Roster))

					http.Redirect(w, r, bootstrap.StripBootstrap(r.URL), http.StatusSeeOther)

					return
				}

				logf(cfg, "GAMES: Ignoring bootstrap from %s: %v", realIP(r), err)
			}
		}

		data, err := assets.ReadFile(page)
		if err != nil {
			errs <- err

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: %s (%s) to %s in %s",
			page,
			humanReadableSize(written),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveWord(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		room := cfg.room(r.URL.Query().Get(bootstrap.ParamRoom))

		var req wordRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			if err := writeError(cfg, w, http.StatusBadRequest, "bad_request", "Could not read the request."); err != nil {
				errs <- err
			}

			return
		}

		reveal, err := deviceState(cfg, w, r).Lookup(room, req.Name, req.Round)
		switch {
		case errors.Is(err, device.ErrNameRequired):
			err = writeError(cfg, w, http.StatusBadRequest, "name_required", "Enter your name first.")
		case errors.Is(err, device.ErrUninitialized):
			err = writeError(cfg, w, http.StatusConflict, "uninitialized", "This device has not been set up yet. Ask the admin for the Init Player Link, open it once, then try again.")
		case errors.Is(err, device.ErrNotFound):
			err = writeError(cfg, w, http.StatusNotFound, "not_found", "Name not found in the roster. Check the spelling matches exactly.")
		case err == nil:
			_, err = writeJSON(cfg, w, http.StatusOK, reveal)
		}
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Word for room %q round %d to %s in %s",
			room,
			assign.ClampRound(req.Round),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveAssignments(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		view, err := sessionFromQuery(cfg, r).view()
		if err != nil {
			errs <- err
			_ = writeError(cfg, w, http.StatusInternalServerError, "internal", "Could not build the preview.")

			return
		}

		if _, err := writeJSON(cfg, w, http.StatusOK, view); err != nil {
			errs <- err
		}
	}
}

func serveLinks(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		view, err := sessionFromQuery(cfg, r).view()
		if err != nil {
			errs <- err
			_ = writeError(cfg, w, http.StatusInternalServerError, "internal", "Could not build the links.")

			return
		}

		if _, err := writeJSON(cfg, w, http.StatusOK, linksResponse{Player: view.PlayerLink, Init: view.InitLink}); err != nil {
			errs <- err
		}
	}
}

func serveThemes(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		themes := assign.Themes()

		out := make([]themeResponse, len(themes))
		for i, t := range themes {
			out[i] = themeResponse{Round: i + 1, Label: t.Label}
		}

		if _, err := writeJSON(cfg, w, http.StatusOK, out); err != nil {
			errs <- err
		}
	}
}

// serveQR renders the player link, or the init link when init=1, as a PNG.
// Links are always built here from the request, never taken from the client.
func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		view, err := sessionFromQuery(cfg, r).view()
		if err != nil {
			errs <- err
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		link := view.PlayerLink
		if r.URL.Query().Get("init") == "1" {
			link = view.InitLink
		}

		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			errs <- err
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

func registerAmongUs(cfg *Config, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/", serveGamePage(cfg, errs))

	mux.POST(cfg.prefix+"/api/word", serveWord(cfg, errs))
	mux.GET(cfg.prefix+"/api/assignments", serveAssignments(cfg, errs))
	mux.GET(cfg.prefix+"/api/links", serveLinks(cfg, errs))
	mux.GET(cfg.prefix+"/api/themes", serveThemes(cfg, errs))

	mux.GET(cfg.prefix+"/qr", serveQR(cfg, errs))

	mux.GET(cfg.prefix+"/admin/ws", serveAdminWS(cfg))
}
