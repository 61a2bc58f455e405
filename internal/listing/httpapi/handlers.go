package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/romariotrain/moderation-platform/internal/listing/domain"
	"github.com/romariotrain/moderation-platform/internal/listing/models"
	"github.com/romariotrain/moderation-platform/internal/listing/service"
)

type Handler struct {
	svc    *service.Service
	logger zerolog.Logger
}

func New(svc *service.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With().Str("component", "httpapi").Logger(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load categories")
		writeErrorJSON(w, http.StatusServiceUnavailable, "taxonomy unavailable")
		return
	}
	genres, err := h.svc.ActiveGenres(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load genres")
		writeErrorJSON(w, http.StatusServiceUnavailable, "taxonomy unavailable")
		return
	}

	resp := TaxonomyResponse{
		Categories: make([]CategoryResponse, 0, len(cats)),
		Genres:     make([]GenreResponse, 0, len(genres)),
	}
	for _, c := range cats {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: c.ID, Name: c.Name, SortOrder: c.SortOrder})
	}
	for _, g := range genres {
		resp.Genres = append(resp.Genres, GenreResponse{ID: g.ID, CategoryID: g.CategoryID, Name: g.Name, SortOrder: g.SortOrder})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitListing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()

	var req SubmitListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	l, err := h.svc.Submit(r.Context(), service.SubmitListing{
		CreatorName:  req.CreatorName,
		CreatorEmail: req.CreatorEmail,
		Title:        req.Title,
		VideoURL:     req.VideoURL,
		Memo:         req.Memo,
		GenreIDs:     req.GenreIDs,
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, SubmitListingResponse{
			ID:        l.ID,
			Status:    string(l.Status),
			CreatedAt: l.CreatedAt,
		})

	case errors.Is(err, models.ErrPartialWrite):
		// Листинг создан, теги не записались — это не полный провал,
		// и клиент должен увидеть разницу.
		h.logger.Warn().Err(err).Str("listing_id", l.ID.String()).Msg("submission tagged partially")
		writeJSON(w, http.StatusCreated, SubmitListingResponse{
			ID:        l.ID,
			Status:    string(l.Status),
			CreatedAt: l.CreatedAt,
			Warning:   "listing created but genre tagging failed",
		})

	default:
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			writeErrorJSON(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, models.ErrInvalidArgument):
			writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
		case errors.Is(err, models.ErrConflict):
			writeErrorJSON(w, http.StatusConflict, "conflict")
		default:
			h.logger.Error().Err(err).Msg("submit listing")
			writeErrorJSON(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ls, err := h.svc.PublishedListings(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load feed")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toFeedResponse(ls))
}

func (h *Handler) PendingListings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ls, err := h.svc.PendingListings(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load pending queue")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]ListingResponse, 0, len(ls))
	for i := range ls {
		out = append(out, toListingResponse(&ls[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Listings dispatches /listings/{id} and its moderation sub-paths.
func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/listings/")
	if rest == "" || rest == r.URL.Path {
		writeErrorJSON(w, http.StatusBadRequest, "missing id")
		return
	}

	idStr, action, _ := strings.Cut(rest, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	switch action {
	case "":
		h.getListing(w, r, id)
	case "approve":
		h.approve(w, r, id)
	case "reject":
		h.reject(w, r, id)
	case "genres":
		h.genres(w, r, id)
	default:
		writeErrorJSON(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) getListing(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	l, err := h.svc.GetListing(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	l, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.logger.Info().Str("listing_id", id.String()).Msg("listing approved")
	writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	l, err := h.svc.Reject(r.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.logger.Info().Str("listing_id", id.String()).Msg("listing rejected")
	writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) genres(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		ids, err := h.svc.ListingGenres(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]int64{"genre_ids": ids})

	case http.MethodPut:
		defer r.Body.Close()

		var req RetagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := h.svc.Retag(r.Context(), id, req.GenreIDs); err != nil {
			h.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorJSON(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrNotFound):
		writeErrorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeErrorJSON(w, http.StatusConflict, "invalid transition")
	case errors.Is(err, models.ErrInvalidArgument):
		writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
	case errors.Is(err, models.ErrConflict):
		writeErrorJSON(w, http.StatusConflict, "conflict")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
