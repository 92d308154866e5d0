package api

import (
	"net/http"
	"strconv"

	"flightdesk/internal/service/flights"
	"flightdesk/internal/service/ledger"

	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	ledger  ledger.LedgerUseCase
}

func NewFlightHandler(service flights.FlightUseCase, ledger ledger.LedgerUseCase) *FlightHandler {
	return &FlightHandler{service: service, ledger: ledger}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/seats", h.availableSeats)
	router.GET("/owner/:ownerId", h.listByOwner)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) availableSeats(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	seats, err := h.ledger.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight_id": id, "available_seats": seats})
}

func (h *FlightHandler) listByOwner(c *gin.Context) {
	ownerID, err := parseID(c, "ownerId")
	if err != nil {
		return
	}
	flights, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var input flights.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	ownerID, err := strconv.ParseInt(c.Query("owner_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner_id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
