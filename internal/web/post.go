package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sidereusnuntius/goposter/internal/publish"
)

func Post(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			h.render(w, "results.html", PageData{Error: "Bad request."})
			return
		}

		content := r.Form.Get("content")
		targets := parseTargets(r.Form["account_id"])

		results, err := h.service.Publish(r.Context(), content, targets)
		if err != nil {
			if errors.Is(err, publish.ErrValidation) {
				h.render(w, "results.html", PageData{Error: err.Error()})
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h.render(w, "results.html", PageData{Results: results})
	}
}

func CheckLength(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := r.URL.Query().Get("content")
		targets := parseTargets(r.URL.Query()["account_id"])

		warning, err := h.service.CheckLength(r.Context(), content, targets)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(warning))
	}
}

func ClearResults(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// parseTargets keeps the ids in input order, dropping anything non-numeric.
// Unknown ids are dropped later, by the publisher.
func parseTargets(values []string) []int64 {
	targets := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		targets = append(targets, id)
	}
	return targets
}
