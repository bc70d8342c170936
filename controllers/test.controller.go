package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edumatch-server/models"
	"edumatch-server/services"
)

type TestController struct {
	Catalog *services.Catalog
	Grader  *services.Grader
}

// questionView is a question with the answer key stripped; it is what test
// takers receive.
type questionView struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Type    models.QuestionType `json:"type"`
	Options []optionView        `json:"options,omitempty"`
}

type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func toQuestionViews(questions []models.Question) []questionView {
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		view := questionView{ID: q.ID, Text: q.Text, Type: q.Type}
		for _, opt := range q.Options {
			view.Options = append(view.Options, optionView{ID: opt.ID, Text: opt.Text})
		}
		views = append(views, view)
	}
	return views
}

// HandleCreate handles POST requests for creating an aptitude test
func (c *TestController) HandleCreate(ctx *gin.Context) {
	var test models.AptitudeTest
	if err := ctx.ShouldBindJSON(&test); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := c.Catalog.CreateTest(ctx.Request.Context(), &test); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// HandleGetByID handles GET requests for retrieving a test by ID
func (c *TestController) HandleGetByID(ctx *gin.Context) {
	test, err := c.Catalog.GetTest(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// HandleGetQuestions handles GET requests for a test's resolved questions
func (c *TestController) HandleGetQuestions(ctx *gin.Context) {
	questions, err := c.Grader.GetQuestions(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toQuestionViews(questions))
}

// HandleSubmit handles POST requests submitting a student's answers. Answers
// arrive as a raw questionId -> optionId | [optionId] map; malformed entries
// are graded as incorrect, never rejected.
func (c *TestController) HandleSubmit(ctx *gin.Context) {
	var submission struct {
		StudentID     string           `json:"studentId" binding:"required"`
		ApplicationID string           `json:"applicationId"`
		Answers       models.AnswerSet `json:"answers"`
	}
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcome, err := c.Grader.GradeAndSave(ctx.Request.Context(), ctx.Param("id"),
		submission.StudentID, submission.Answers, submission.ApplicationID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, outcome)
}

// RegisterHandlers registers all routes for the test controller
func (c *TestController) RegisterHandlers(router *gin.Engine) {
	router.POST("/tests", c.HandleCreate)
	router.GET("/tests/:id", c.HandleGetByID)
	router.GET("/tests/:id/questions", c.HandleGetQuestions)
	router.POST("/tests/:id/submissions", c.HandleSubmit)
}
