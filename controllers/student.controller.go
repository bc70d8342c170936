package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edumatch-server/models"
	"edumatch-server/services"
)

type StudentController struct {
	Catalog  *services.Catalog
	Resolver *services.Resolver
}

// HandleCreate handles POST requests for registering a student
func (c *StudentController) HandleCreate(ctx *gin.Context) {
	var student models.Student
	if err := ctx.ShouldBindJSON(&student); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateStudent(ctx.Request.Context(), &student); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// HandleGetByID handles GET requests for retrieving a student by ID
func (c *StudentController) HandleGetByID(ctx *gin.Context) {
	student, err := c.Catalog.GetStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// HandlePendingTests handles GET requests for a student's owed tests,
// required ones merged with electives
func (c *StudentController) HandlePendingTests(ctx *gin.Context) {
	tests, err := c.Resolver.GetAvailableTests(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if tests == nil {
		tests = []services.PendingTest{}
	}
	ctx.JSON(http.StatusOK, tests)
}

// HandleMyPendingTests resolves the caller from the opaque auth identity
// header, then returns their owed tests
func (c *StudentController) HandleMyPendingTests(ctx *gin.Context) {
	student, err := c.Catalog.ResolveStudentByAuthUID(ctx.Request.Context(), ctx.GetHeader("X-Auth-UID"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	tests, err := c.Resolver.GetAvailableTests(ctx.Request.Context(), student.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if tests == nil {
		tests = []services.PendingTest{}
	}
	ctx.JSON(http.StatusOK, tests)
}

// RegisterHandlers registers all routes for the student controller
func (c *StudentController) RegisterHandlers(router *gin.Engine) {
	router.POST("/students", c.HandleCreate)
	router.GET("/students/:id", c.HandleGetByID)
	router.GET("/students/:id/pending-tests", c.HandlePendingTests)
	router.GET("/me/pending-tests", c.HandleMyPendingTests)
}
