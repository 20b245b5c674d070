package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadsafe/services/annotator"
	"roadsafe/services/review"
	"roadsafe/utils"
)

// respondError maps service errors onto HTTP statuses. Suspension is a 403,
// missing resources are 404, malformed input is 400, everything else is a
// logged 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var suspended *annotator.SuspendedError
	if errors.As(err, &suspended) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":        "account suspended",
			"penaltyScore": suspended.PenaltyScore,
			"remarks":      suspended.Remarks,
		})
		return
	}

	var validation *review.ValidationError
	if errors.As(err, &validation) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", validation.Error())
		return
	}

	if errors.Is(err, review.ErrComplaintNotAssigned) {
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
		return
	}

	if errors.Is(err, review.ErrLabelNotFound) || errors.Is(err, review.ErrSegmentNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
		return
	}

	utils.GetLogger().Error("request failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal server error", "")
}
