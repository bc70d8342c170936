package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edumatch-server/models"
	"edumatch-server/services"
)

type ApplicationController struct {
	Catalog *services.Catalog
}

// HandleCreate handles POST requests for filing an application for a student
func (c *ApplicationController) HandleCreate(ctx *gin.Context) {
	var app models.Application
	if err := ctx.ShouldBindJSON(&app); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateApplication(ctx.Request.Context(), ctx.Param("id"), &app); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, app)
}

// HandleList handles GET requests for a student's applications
func (c *ApplicationController) HandleList(ctx *gin.Context) {
	apps, err := c.Catalog.ApplicationsByStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	ctx.JSON(http.StatusOK, apps)
}

// HandleReview handles PATCH requests carrying a reviewer decision
func (c *ApplicationController) HandleReview(ctx *gin.Context) {
	var body struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := c.Catalog.ReviewApplication(ctx.Request.Context(), ctx.Param("id"), ctx.Param("appId"), body.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": body.Status})
}

// RegisterHandlers registers all routes for the application controller
func (c *ApplicationController) RegisterHandlers(router *gin.Engine) {
	router.POST("/students/:id/applications", c.HandleCreate)
	router.GET("/students/:id/applications", c.HandleList)
	router.PATCH("/students/:id/applications/:appId/status", c.HandleReview)
}
