package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edumatch-server/models"
	"edumatch-server/services"
)

type CollegeController struct {
	Catalog *services.Catalog
}

// HandleCreate handles POST requests for creating a college
func (c *CollegeController) HandleCreate(ctx *gin.Context) {
	var college models.College
	if err := ctx.ShouldBindJSON(&college); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateCollege(ctx.Request.Context(), &college); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, college)
}

// HandleGetByID handles GET requests for retrieving a college by ID
func (c *CollegeController) HandleGetByID(ctx *gin.Context) {
	college, err := c.Catalog.GetCollege(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, college)
}

// HandleCreateCourse handles POST requests for adding a course to a college
func (c *CollegeController) HandleCreateCourse(ctx *gin.Context) {
	var course models.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateCourse(ctx.Request.Context(), ctx.Param("id"), &course); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// HandleCreateQuestion handles POST requests for adding a question to a
// college's question bank
func (c *CollegeController) HandleCreateQuestion(ctx *gin.Context) {
	var question models.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateQuestion(ctx.Request.Context(), ctx.Param("id"), &question); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// HandleGetQuestions handles GET requests for a college's question bank
func (c *CollegeController) HandleGetQuestions(ctx *gin.Context) {
	questions, err := c.Catalog.QuestionsByCollege(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// RegisterHandlers registers all routes for the college controller
func (c *CollegeController) RegisterHandlers(router *gin.Engine) {
	router.POST("/colleges", c.HandleCreate)
	router.GET("/colleges/:id", c.HandleGetByID)
	router.POST("/colleges/:id/courses", c.HandleCreateCourse)
	router.POST("/colleges/:id/questions", c.HandleCreateQuestion)
	router.GET("/colleges/:id/questions", c.HandleGetQuestions)
}
