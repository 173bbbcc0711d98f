package handler

import (
	"encoding/json"
	"net/http"

	"salas/internal/reservations/service"
	apperrors "salas/pkg/errors"
	pkghttp "salas/pkg/http"
	"salas/pkg/logger"
	"salas/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.GetAll)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
	router.GET("/api/v1/rooms", h.Rooms)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		h.writeError(w, apperrors.InvalidInput("Request body must be valid JSON"))
		return
	}

	created, err := h.service.Create(r.Context(), &reservation)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteCreated(w, created); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := pkghttp.WriteSuccess(w, reservations); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	pkghttp.WriteNoContent(w)
}

func (h *ReservationHandler) Rooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := pkghttp.WriteSuccess(w, h.service.Rooms()); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeInternal {
		h.log.Error("Request failed", "error", err)
	}

	if err := pkghttp.WriteError(w, appErr); err != nil {
		h.log.Error("Failed to write error response", "error", err)
	}
}
