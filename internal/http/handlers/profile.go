package handlers

import (
	"net/http"

	"jobport/internal/app"
	"jobport/internal/domain/application"
	"jobport/internal/domain/profile"
	"jobport/internal/http/middleware"
	"jobport/internal/http/response"
)

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	Name          string                  `json:"name" validate:"required,max=120"`
	Email         string                  `json:"email" validate:"required,email"`
	Bio           string                  `json:"bio" validate:"max=2000"`
	ContactNumber string                  `json:"contact_number" validate:"max=30"`
	Resume        string                  `json:"resume" validate:"max=500"`
	Photo         string                  `json:"photo" validate:"max=500"`
	Skills        []string                `json:"skills" validate:"dive,min=1"`
	Education     []application.Education `json:"education"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.profiles.Upsert(r.Context(), profile.ApplicantProfile{
		UserID:        userID,
		Name:          req.Name,
		Email:         req.Email,
		Bio:           req.Bio,
		ContactNumber: req.ContactNumber,
		Resume:        req.Resume,
		Photo:         req.Photo,
		Skills:        req.Skills,
		Education:     req.Education,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}
