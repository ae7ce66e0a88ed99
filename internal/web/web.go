package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/alexedwards/scs"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/config"
	"github.com/sidereusnuntius/goposter/internal/service"
)

// MaxMemory bounds how much of a multipart upload is held in memory.
const MaxMemory = 32 << 20

//go:embed templates/*.html
var templatesFS embed.FS

type Handler struct {
	Config         *config.Configuration
	service        service.Service
	SessionManager *scs.Manager
	templates      *template.Template
}

func New(config *config.Configuration, service service.Service, manager *scs.Manager) Handler {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	return Handler{
		Config:         config,
		service:        service,
		SessionManager: manager,
		templates:      tmpl,
	}
}

const flashKey = "flash"

func (h *Handler) setFlash(w http.ResponseWriter, r *http.Request, message string) {
	session := h.SessionManager.Load(r)
	if err := session.PutString(w, flashKey, message); err != nil {
		log.Error().Err(err).Msg("failed to save flash message")
	}
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	session := h.SessionManager.Load(r)
	message, err := session.PopString(w, flashKey)
	if err != nil {
		return ""
	}
	return message
}
