package api

import (
	"net/http"

	"flightdesk/internal/service/owners"

	"github.com/gin-gonic/gin"
)

type OwnerHandler struct {
	service owners.OwnerUseCase
}

func NewOwnerHandler(service owners.OwnerUseCase) *OwnerHandler {
	return &OwnerHandler{service: service}
}

func (h *OwnerHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.register)
	router.PUT("/:id", h.update)
}

func (h *OwnerHandler) list(c *gin.Context) {
	owners, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owners)
}

func (h *OwnerHandler) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	owner, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (h *OwnerHandler) register(c *gin.Context) {
	var input owners.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, owner)
}

func (h *OwnerHandler) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var input owners.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}
