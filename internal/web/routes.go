package web

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Mount(r chi.Router) {
	r.Get("/", Index(h))

	r.Route("/login", func(r chi.Router) {
		r.Post("/bluesky", LoginBluesky(h))
		r.Post("/twitter", LoginTwitter(h))
		r.Post("/mastodon", LoginMastodon(h))
		r.Get("/mastodon/callback", MastodonCallback(h))
	})

	r.Post("/logout/{id}", Logout(h))

	r.Route("/uploads", func(r chi.Router) {
		r.Post("/", StageUpload(h))
		r.Post("/{id}/delete", DeleteUpload(h))
	})

	r.Post("/post", Post(h))
	r.Get("/check_length", CheckLength(h))
	r.Post("/clear-results", ClearResults(h))
}
