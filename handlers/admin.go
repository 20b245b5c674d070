package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadsafe/middleware"
	"roadsafe/models"
	"roadsafe/utils"
)

// DashboardHandler returns the admin overview counts.
func (h *HandlerBundle) DashboardHandler(c *gin.Context) {
	dashboard, err := h.Admin.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ListPendingReviewsHandler lists labels awaiting a decision.
func (h *HandlerBundle) ListPendingReviewsHandler(c *gin.Context) {
	pending, err := h.Reviews.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// GetLabelHandler returns one label with its sub-records for review.
func (h *HandlerBundle) GetLabelHandler(c *gin.Context) {
	detail, err := h.Reviews.GetLabel(c.Param("labelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ApproveLabelHandler approves a label. An optional feedbackID ties the
// approval to the complaint it resolves.
func (h *HandlerBundle) ApproveLabelHandler(c *gin.Context) {
	var req struct {
		FeedbackID string `json:"feedbackID"`
	}
	// body is optional
	_ = c.ShouldBindJSON(&req)

	adminID := c.GetString(middleware.CtxUserID)
	result, err := h.Reviews.Approve(c.Request.Context(), c.Param("labelId"), adminID, req.FeedbackID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RejectLabelHandler rejects and destroys a label.
func (h *HandlerBundle) RejectLabelHandler(c *gin.Context) {
	var req struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&req)

	adminID := c.GetString(middleware.CtxUserID)
	result, err := h.Reviews.Reject(c.Request.Context(), c.Param("labelId"), adminID, req.Remarks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAnnotatorsHandler lists annotator accounts with reliability state and
// label statistics.
func (h *HandlerBundle) ListAnnotatorsHandler(c *gin.Context) {
	annotators, err := h.Admin.ListAnnotators(c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"annotators": annotators})
}

// ListSuspendedAnnotatorsHandler lists suspended accounts.
func (h *HandlerBundle) ListSuspendedAnnotatorsHandler(c *gin.Context) {
	suspended, err := h.Reliability.ListSuspended()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suspended": suspended})
}

// ListAtRiskAnnotatorsHandler lists active accounts near the suspension
// threshold.
func (h *HandlerBundle) ListAtRiskAnnotatorsHandler(c *gin.Context) {
	atRisk, err := h.Reliability.ListAtRisk()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"atRisk": atRisk})
}

// ReactivateAnnotatorHandler lifts a suspension and resets the penalty.
func (h *HandlerBundle) ReactivateAnnotatorHandler(c *gin.Context) {
	if err := h.Reliability.Reactivate(c.Param("annotatorId")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "reactivation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "annotator reactivated"})
}

// TrainingRemarksHandler records suspension remarks ahead of reactivation.
func (h *HandlerBundle) TrainingRemarksHandler(c *gin.Context) {
	var req struct {
		Remarks string `json:"remarks" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.Reliability.AddTrainingRemarks(c.Param("annotatorId"), req.Remarks); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "remarks recorded"})
}

// ListFeedbackHandler lists feedback by lifecycle status.
func (h *HandlerBundle) ListFeedbackHandler(c *gin.Context) {
	status := c.DefaultQuery("status", models.FeedbackPending)
	feedbacks, err := h.Feedbacks.ListByStatus(status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbacks": feedbacks})
}

// AssignFeedbackHandler hands a complaint to an annotator for relabeling.
func (h *HandlerBundle) AssignFeedbackHandler(c *gin.Context) {
	var req struct {
		AnnotatorID  string `json:"annotatorID" binding:"required"`
		Priority     int    `json:"priority"`
		AdminRemarks string `json:"adminRemarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	f, err := h.Feedbacks.Assign(c.Param("feedbackId"), req.AnnotatorID, req.Priority, req.AdminRemarks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
