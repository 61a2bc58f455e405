package httpapi

import (
	"net/http"
	"strings"
)

func NewRouter(h *Handler, adminToken string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)

	// Public surface: intake and the swipeable feed.
	mux.HandleFunc("/taxonomy", h.Taxonomy)
	mux.HandleFunc("/listings", h.SubmitListing)
	mux.HandleFunc("/feed", h.Feed)

	// Moderation surface, gated by the shared admin secret.
	mux.HandleFunc("/admin/pending", adminOnly(adminToken, h.PendingListings))

	// GET /listings/{id} is public; approve/reject/genres sub-paths are
	// moderation actions and go through the same gate.
	// Важно: trailing slash, чтобы handler мог TrimPrefix("/listings/")
	mux.HandleFunc("/listings/", h.routeListings(adminToken))

	return mux
}

func (h *Handler) routeListings(adminToken string) http.HandlerFunc {
	gated := adminOnly(adminToken, h.Listings)
	return func(w http.ResponseWriter, r *http.Request) {
		if isModerationPath(r.URL.Path) || r.Method == http.MethodPut {
			gated(w, r)
			return
		}
		h.Listings(w, r)
	}
}

func isModerationPath(path string) bool {
	return strings.HasSuffix(path, "/approve") || strings.HasSuffix(path, "/reject")
}
