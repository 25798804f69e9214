// README: Table assignment handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro/internal/http/middleware"
	"bistro/internal/modules/reservation"
	"bistro/internal/types"
)

type ReservationHandler struct {
	reservation *reservation.Service
}

func NewReservationHandler(svc *reservation.Service) *ReservationHandler {
	return &ReservationHandler{reservation: svc}
}

type createAssignmentReq struct {
	ArrivalTime time.Time `json:"arrival_time"`
	Order       string    `json:"order"`
	Restaurant  string    `json:"restaurant"`
	PlaceNumber int       `json:"place_number"`
}

type assignmentResp struct {
	ID          string    `json:"id"`
	ArrivalTime time.Time `json:"arrival_time"`
	Order       string    `json:"order,omitempty"`
	Restaurant  string    `json:"restaurant"`
	PlaceNumber int       `json:"place_number"`
}

func toAssignmentResp(a *reservation.TableAssignment) assignmentResp {
	resp := assignmentResp{
		ID:          string(a.ID),
		ArrivalTime: a.ArrivalTime,
		Restaurant:  string(a.RestaurantID),
		PlaceNumber: a.PlaceNumber,
	}
	if a.OrderID != nil {
		resp.Order = string(*a.OrderID)
	}
	return resp
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req createAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := reservation.CreateCommand{
		ArrivalTime:  req.ArrivalTime,
		RestaurantID: types.ID(req.Restaurant),
		PlaceNumber:  req.PlaceNumber,
	}
	if req.Order != "" {
		id := types.ID(req.Order)
		cmd.OrderID = &id
	}
	a, err := h.reservation.Create(c.Request.Context(), middleware.CallerActor(c), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toAssignmentResp(a))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	a, err := h.reservation.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toAssignmentResp(a))
}

func (h *ReservationHandler) List(c *gin.Context) {
	list, err := h.reservation.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]assignmentResp, 0, len(list))
	for i := range list {
		out = append(out, toAssignmentResp(&list[i]))
	}
	writeJSON(c, http.StatusOK, out)
}
