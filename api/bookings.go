package api

import (
	"net/http"
	"strconv"
	"time"

	"flightdesk/internal/domain"
	"flightdesk/internal/service/ledger"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service ledger.LedgerUseCase
}

type createBookingRequest struct {
	UserID      int64 `json:"user_id"`
	FlightID    int64 `json:"flight_id"`
	AmountCents int64 `json:"amount_cents"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updatePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type bookingResponse struct {
	ID            int64  `json:"id"`
	PNR           string `json:"pnr"`
	UserID        int64  `json:"user_id"`
	FlightID      int64  `json:"flight_id"`
	FromAirportID int64  `json:"from_airport_id"`
	ToAirportID   int64  `json:"to_airport_id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}

func NewBookingHandler(service ledger.LedgerUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.GET("/pnr/:pnr", h.getByPNR)
	router.GET("/user/:userId", h.listByUser)
	router.PUT("/:id/status", h.updateStatus)
	router.PUT("/:id/payment", h.updatePayment)
	router.PUT("/:id/confirm", h.confirm)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), ledger.CreateBookingInput{
		UserID:      req.UserID,
		FlightID:    req.FlightID,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	booking, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) getByPNR(c *gin.Context) {
	booking, err := h.service.GetBookingByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	userID, err := parseID(c, "userId")
	if err != nil {
		return
	}
	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := domain.BookingStatus(req.Status)
	if status != domain.BookingStatusPending && status != domain.BookingStatusConfirmed && status != domain.BookingStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) updatePayment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := domain.PaymentStatus(req.PaymentStatus)
	if status != domain.PaymentStatusPending && status != domain.PaymentStatusCompleted && status != domain.PaymentStatusFailed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
		return
	}
	booking, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	booking, err := h.service.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// cancel is the DELETE verb but performs a status change; bookings are not
// physically removed in the normal flow.
func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	booking, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		PNR:           b.PNR,
		UserID:        b.UserID,
		FlightID:      b.FlightID,
		FromAirportID: b.FromAirportID,
		ToAirportID:   b.ToAirportID,
		DepartureTime: b.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   b.ArrivalTime.Format(time.RFC3339),
		AmountCents:   b.AmountCents,
		PaymentStatus: string(b.PaymentStatus),
		Status:        string(b.Status),
	}
}

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, err
	}
	return id, nil
}
