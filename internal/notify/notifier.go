// Package notify sends candidate-facing emails when an application
// changes state. Delivery is best-effort: a failed send is logged and
// never blocks the state change that triggered it.
package notify

import (
	"context"
	"fmt"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
)

// Sender is the transport used for outgoing mail. *aws.SESClient
// satisfies it.
type Sender interface {
	SendText(ctx context.Context, from, to, subject, body string) error
}

type Notifier struct {
	sender Sender
	from   string
	log    logger.Logger
}

func New(sender Sender, from string, log logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		from:   from,
		log:    log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

var statusSubjects = map[models.ApplicationStatus]string{
	models.StatusReviewed: "Your application is under review",
	models.StatusAccepted: "Congratulations! Your application was accepted",
	models.StatusRejected: "An update on your application",
	models.StatusOnHold:   "Your application is on hold",
}

// ApplicationStatusChanged emails the candidate about the new status of
// their application. Errors are reported for logging only; callers must
// not fail the triggering request on them.
func (n *Notifier) ApplicationStatusChanged(ctx context.Context, app models.Application) error {
	subject, ok := statusSubjects[app.Status]
	if !ok {
		subject = "An update on your application"
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour application for \"%s\" has been updated to: %s.\n\nLog in to Hirely to see the details.\n\n— The Hirely team\n",
		app.CandidateName, app.JobTitle, app.Status,
	)
	if err := n.sender.SendText(ctx, n.from, app.CandidateEmail, subject, body); err != nil {
		sendErr := apperrors.NewNotificationSendFailed("email", err)
		n.log.WithError(sendErr).Warn("status notification not delivered", map[string]interface{}{
			"application_id": app.ID,
			"status":         string(app.Status),
		})
		return sendErr
	}
	n.log.Info("status notification sent", map[string]interface{}{
		"application_id": app.ID,
		"status":         string(app.Status),
	})
	return nil
}

// VideoCallInvited emails the candidate a meeting link for a scheduled
// video call.
func (n *Notifier) VideoCallInvited(ctx context.Context, app models.Application, meetingURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nThe recruiter for \"%s\" has invited you to a video call.\n\nJoin here: %s\n\n— The Hirely team\n",
		app.CandidateName, app.JobTitle, meetingURL,
	)
	if err := n.sender.SendText(ctx, n.from, app.CandidateEmail, "Video call invitation", body); err != nil {
		sendErr := apperrors.NewNotificationSendFailed("email", err)
		n.log.WithError(sendErr).Warn("video call notification not delivered", map[string]interface{}{
			"application_id": app.ID,
		})
		return sendErr
	}
	return nil
}
