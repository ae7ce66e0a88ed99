package web

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/publish"
)

// PageData carries everything the full page needs; the fragment templates
// each use a subset of it.
type PageData struct {
	Accounts  []domain.Account
	Available []domain.Network
	Uploads   []domain.Upload
	Results   []publish.Result
	Error     string
	Flash     string
}

func (h *Handler) render(w http.ResponseWriter, name string, data PageData) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderAccounts renders the accounts-section fragment, the response to every
// connect and logout action. errMsg, when non-empty, shows as an inline alert.
func (h *Handler) renderAccounts(ctx context.Context, w http.ResponseWriter, errMsg string) {
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
	h.render(w, "accounts.html", PageData{
		Accounts:  accounts,
		Available: available,
		Error:     errMsg,
	})
}

func (h *Handler) renderUploads(ctx context.Context, w http.ResponseWriter, errMsg string) {
	uploads, err := h.service.ListUploads(ctx)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, "uploads.html", PageData{
		Uploads: uploads,
		Error:   errMsg,
	})
}
