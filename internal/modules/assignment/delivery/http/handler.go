package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradebench/webapp/internal/modules/assignment/dto"
	assignment "github.com/gradebench/webapp/internal/modules/assignment/service"
	"github.com/gradebench/webapp/pkg/identifier"
	"github.com/gradebench/webapp/pkg/response"
	"github.com/gradebench/webapp/pkg/validator"
)

type AssignmentHandler struct {
	service assignment.AssignmentService
}

func NewAssignmentHandler(service assignment.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req, ident.AccountID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AssignmentHandler) GetAllAssignments(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetAssignmentByID(c *gin.Context) {
	id, err := identifier.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, err := identifier.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req, ident.AccountID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, err := identifier.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, ident.AccountID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
