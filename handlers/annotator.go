package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadsafe/middleware"
	"roadsafe/models"
	"roadsafe/services/review"
	"roadsafe/services/road"
	"roadsafe/utils"
)

// currentAnnotator resolves the authenticated account's annotator record.
func (h *HandlerBundle) currentAnnotator(c *gin.Context) (*models.Annotator, bool) {
	email := c.GetString(middleware.CtxEmail)
	ann, err := h.Reliability.Annotators.GetByEmail(email)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if ann == nil {
		utils.JSONError(c, http.StatusNotFound, "annotator record not found", "")
		return nil, false
	}
	return ann, true
}

// CreateRoadHandler registers a road with its segments for labeling.
func (h *HandlerBundle) CreateRoadHandler(c *gin.Context) {
	ann, ok := h.currentAnnotator(c)
	if !ok {
		return
	}

	var req struct {
		Name     string              `json:"name" binding:"required"`
		Start    models.GeoPoint     `json:"start"`
		End      models.GeoPoint     `json:"end"`
		Segments []road.SegmentInput `json:"segments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.Roads.Create(c.Request.Context(), road.CreateInput{
		AnnotatorID: ann.ID,
		Name:        req.Name,
		Start:       req.Start,
		End:         req.End,
		Segments:    req.Segments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListMyRoadsHandler lists the annotator's own roads.
func (h *HandlerBundle) ListMyRoadsHandler(c *gin.Context) {
	ann, ok := h.currentAnnotator(c)
	if !ok {
		return
	}
	roads, err := h.Roads.ListForAnnotator(ann.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roads": roads})
}

// GetRoadHandler returns one road with its segments.
func (h *HandlerBundle) GetRoadHandler(c *gin.Context) {
	result, err := h.Roads.Get(c.Param("roadId"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "road not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitLabelHandler accepts a label submission for a segment. Suspended
// annotators are turned away before anything is written.
func (h *HandlerBundle) SubmitLabelHandler(c *gin.Context) {
	ann, ok := h.currentAnnotator(c)
	if !ok {
		return
	}

	var req struct {
		SegmentID        string                    `json:"segmentID" binding:"required"`
		Latitude         *float64                  `json:"latitude"`
		Longitude        *float64                  `json:"longitude"`
		Roadside         *review.RoadsideInput     `json:"roadsideData"`
		Intersection     *review.IntersectionInput `json:"intersectionData"`
		Speed            *review.SpeedInput        `json:"speedData"`
		OriginFeedbackID string                    `json:"feedbackID"`
		AnnotatorRemarks string                    `json:"annotatorRemarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	detail, err := h.Reviews.Submit(c.Request.Context(), review.SubmitInput{
		AnnotatorID:      ann.ID,
		SegmentID:        req.SegmentID,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Roadside:         req.Roadside,
		Intersection:     req.Intersection,
		Speed:            req.Speed,
		OriginFeedbackID: req.OriginFeedbackID,
		AnnotatorRemarks: req.AnnotatorRemarks,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// ListMyLabelsHandler lists the annotator's submitted labels with their
// review status.
func (h *HandlerBundle) ListMyLabelsHandler(c *gin.Context) {
	ann, ok := h.currentAnnotator(c)
	if !ok {
		return
	}
	labels, err := h.Reviews.ListForAnnotator(ann.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// MyAssignmentsHandler lists complaints assigned to the annotator.
func (h *HandlerBundle) MyAssignmentsHandler(c *gin.Context) {
	ann, ok := h.currentAnnotator(c)
	if !ok {
		return
	}
	assignments, err := h.Feedbacks.ListForAnnotator(ann.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// AddAssignmentRemarksHandler records the annotator's field notes on an
// assigned complaint.
func (h *HandlerBundle) AddAssignmentRemarksHandler(c *gin.Context) {
	var req struct {
		Remarks string `json:"remarks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.Feedbacks.SetAnnotatorRemarks(c.Param("feedbackId"), req.Remarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "remarks recorded"})
}
