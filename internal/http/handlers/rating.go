package handlers

import (
	"net/http"
	"strings"
	"time"

	"jobport/internal/app"
	"jobport/internal/common"
	"jobport/internal/http/middleware"
	"jobport/internal/http/response"
)

type RatingHandler struct {
	ratings *app.RatingService
	limiter middleware.Limiter
}

func NewRatingHandler(ratings *app.RatingService, limiter middleware.Limiter) *RatingHandler {
	return &RatingHandler{ratings: ratings, limiter: limiter}
}

type rateRequest struct {
	ReceiverID string  `json:"receiver_id" validate:"required"`
	Rating     float64 `json:"rating"`
}

func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
		return
	}
	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	receiverID, err := common.ParseUUID(req.ReceiverID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid receiver_id", map[string]string{"receiver_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "rate:" + senderID.String()
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "rating rate limit exceeded", nil))
			return
		}
	}
	if err := h.ratings.Rate(r.Context(), senderID, role, receiverID, req.Rating); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "rating recorded successfully"})
}

func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	receiverID, err := common.ParseUUID(raw)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"}))
		return
	}
	value, err := h.ratings.GetRating(r.Context(), senderID, role, receiverID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]float64{"rating": value})
}
