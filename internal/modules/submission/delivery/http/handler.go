package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradebench/webapp/internal/modules/submission/dto"
	submission "github.com/gradebench/webapp/internal/modules/submission/service"
	"github.com/gradebench/webapp/pkg/response"
)

type SubmissionHandler struct {
	service submission.SubmissionService
}

func NewSubmissionHandler(service submission.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

func (h *SubmissionHandler) SubmitAssignment(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.Submit(c.Request.Context(), c.Param("id"), req, ident)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}
