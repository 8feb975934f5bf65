package notification

import (
	"wedding-rsvp/core/constants"
	"wedding-rsvp/modules/notification/mailer"
	"wedding-rsvp/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Init wires the confirmation-email service and registers its task handler
// on the background worker mux.
func Init(mux *asynq.ServeMux, queue service.TaskEnqueuer, m mailer.Mailer) *service.NotificationService {
	svc := service.NewNotificationService(queue, m)
	mux.HandleFunc(constants.TaskEmailConfirmation, svc.HandleEmailConfirmationTask)
	return svc
}
