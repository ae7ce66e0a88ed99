package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/auth"
	"github.com/sidereusnuntius/goposter/internal/db"
)

func Index(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		ctx := r.Context()
		accounts, err := h.service.ListAccounts(ctx)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		available, err := h.service.AvailableNetworks(ctx)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		uploads, err := h.service.ListUploads(ctx)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h.render(w, "layout.html", PageData{
			Accounts:  accounts,
			Available: available,
			Uploads:   uploads,
			Flash:     h.popFlash(w, r),
		})
	}
}

func LoginBluesky(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			h.renderAccounts(r.Context(), w, "Bad request.")
			return
		}

		handle := r.Form.Get("handle")
		password := r.Form.Get("password")
		_, err := h.service.ConnectBluesky(r.Context(), handle, password)
		if err != nil {
			h.renderAccounts(r.Context(), w, "Error connecting to Bluesky: "+err.Error())
			return
		}
		h.renderAccounts(r.Context(), w, "")
	}
}

// LoginTwitter blocks until the harvest flow finishes; the page shows a
// spinner while the user completes the login in the separate browser window.
func LoginTwitter(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := h.service.ConnectTwitter(r.Context())
		if err != nil {
			h.renderAccounts(r.Context(), w, "Error connecting to Twitter: "+err.Error())
			return
		}
		h.renderAccounts(r.Context(), w, "")
	}
}

func LoginMastodon(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			h.renderAccounts(r.Context(), w, "Bad request.")
			return
		}

		authURL, err := h.service.BeginMastodonLogin(r.Context(), r.Form.Get("instance"))
		if err != nil {
			h.renderAccounts(r.Context(), w, "Error connecting to Mastodon: "+err.Error())
			return
		}
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// MastodonCallback is the second half of the OAuth flow. A callback without a
// matching pending negotiation is terminal: the standalone error page is
// rendered and the user has to restart from the connect form.
func MastodonCallback(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		if code == "" {
			w.WriteHeader(http.StatusBadRequest)
			h.render(w, "error.html", PageData{Error: "The authorization response is missing its code parameter."})
			return
		}

		_, err := h.service.CompleteMastodonLogin(r.Context(), state, code)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, auth.ErrSessionState) {
				status = http.StatusBadRequest
			}
			w.WriteHeader(status)
			h.render(w, "error.html", PageData{Error: "Failed to authenticate: " + err.Error()})
			return
		}

		h.setFlash(w, r, "Mastodon account connected.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func Logout(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			h.renderAccounts(r.Context(), w, "Invalid account id.")
			return
		}

		err = h.service.Logout(r.Context(), id)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			log.Error().Err(err).Int64("id", id).Msg("logout failed")
			h.renderAccounts(r.Context(), w, "Failed to log out.")
			return
		}
		h.renderAccounts(r.Context(), w, "")
	}
}
