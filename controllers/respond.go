package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edumatch-server/apperrors"
)

// respondError maps the error taxonomy to HTTP statuses. Bodies carry a
// human-readable message only.
func respondError(ctx *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateResult):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
