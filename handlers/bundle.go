package handlers

import (
	"roadsafe/services/admin"
	"roadsafe/services/annotator"
	"roadsafe/services/feedback"
	"roadsafe/services/notification"
	"roadsafe/services/rating"
	"roadsafe/services/review"
	"roadsafe/services/road"
	"roadsafe/services/user"
)

// HandlerBundle groups every endpoint's dependencies so routes can be wired
// from one place.
type HandlerBundle struct {
	Users       user.UserService
	Roads       *road.Service
	Reviews     *review.Service
	Reliability *annotator.Service
	Feedbacks   *feedback.Service
	Ratings     rating.Engine
	Notifier    *notification.Service
	Admin       *admin.Service
}

func NewHandlerBundle(
	users user.UserService,
	roads *road.Service,
	reviews *review.Service,
	reliability *annotator.Service,
	feedbacks *feedback.Service,
	ratings rating.Engine,
	notifier *notification.Service,
	adminSvc *admin.Service,
) *HandlerBundle {
	return &HandlerBundle{
		Users:       users,
		Roads:       roads,
		Reviews:     reviews,
		Reliability: reliability,
		Feedbacks:   feedbacks,
		Ratings:     ratings,
		Notifier:    notifier,
		Admin:       adminSvc,
	}
}
