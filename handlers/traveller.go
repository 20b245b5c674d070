package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadsafe/middleware"
	"roadsafe/models"
	"roadsafe/services/feedback"
	"roadsafe/utils"
)

// CreateFeedbackHandler records a traveller's complaint or feedback.
func (h *HandlerBundle) CreateFeedbackHandler(c *gin.Context) {
	var req struct {
		Title        string           `json:"title" binding:"required"`
		Description  string           `json:"description"`
		ImageURL     string           `json:"imageUrl"`
		Coordinates  *models.GeoPoint `json:"coordinates"`
		FeedbackType string           `json:"feedbackType"`
		SegmentID    string           `json:"segmentID"`
		RoadID       string           `json:"roadID"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	f, err := h.Feedbacks.Create(feedback.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Coordinates:  req.Coordinates,
		FeedbackType: req.FeedbackType,
		Email:        c.GetString(middleware.CtxEmail),
		SegmentID:    req.SegmentID,
		RoadID:       req.RoadID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// MyFeedbackHandler lists the traveller's own reports.
func (h *HandlerBundle) MyFeedbackHandler(c *gin.Context) {
	feedbacks, err := h.Feedbacks.ListForTraveller(c.GetString(middleware.CtxEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// ListRoadsHandler lists roads for the map view. Public.
func (h *HandlerBundle) ListRoadsHandler(c *gin.Context) {
	roads, err := h.Roads.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roads": roads})
}

// RoadRatingHandler serves the road's safety rating projection. Public.
func (h *HandlerBundle) RoadRatingHandler(c *gin.Context) {
	summary, err := h.Ratings.RoadSummary(c.Request.Context(), c.Param("roadId"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "road not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
