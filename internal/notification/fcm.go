package notification

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"helicharter-portal/internal/logger"
)

// AdminTopic receives broadcast pushes meant for every admin device
const AdminTopic = "admins"

// ErrInvalidToken means FCM does not recognise the registration token
var ErrInvalidToken = errors.New("push token is not valid")

// TokenValidator checks push tokens with FCM before they are stored
type TokenValidator interface {
	Validate(ctx context.Context, fcmToken string) error
	Subscribe(ctx context.Context, fcmToken, topic string) error
}

// messagingClient is the part of *messaging.Client used here
type messagingClient interface {
	SendDryRun(ctx context.Context, message *messaging.Message) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

// FirebaseValidator validates tokens with a dry-run send. Nothing is delivered.
type FirebaseValidator struct {
	client messagingClient
}

// NewFirebaseValidator initialises the Firebase admin SDK from a service account file
func NewFirebaseValidator(ctx context.Context, credentialsFile string) (*FirebaseValidator, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase messaging client: %w", err)
	}
	return &FirebaseValidator{client: client}, nil
}

func (v *FirebaseValidator) Validate(ctx context.Context, fcmToken string) error {
	logger.ExternalServiceCall(ctx, "fcm", "SendDryRun")
	_, err := v.client.SendDryRun(ctx, &messaging.Message{
		Token: fcmToken,
		Data:  map[string]string{"type": "token_check"},
	})
	logger.ExternalServiceResult(ctx, "fcm", "SendDryRun", err)
	if err == nil {
		return nil
	}
	if messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err) {
		return ErrInvalidToken
	}
	return err
}

func (v *FirebaseValidator) Subscribe(ctx context.Context, fcmToken, topic string) error {
	logger.ExternalServiceCall(ctx, "fcm", "SubscribeToTopic", "topic", topic)
	resp, err := v.client.SubscribeToTopic(ctx, []string{fcmToken}, topic)
	if err == nil && resp != nil && resp.FailureCount > 0 && len(resp.Errors) > 0 {
		err = fmt.Errorf("topic subscription rejected: %s", resp.Errors[0].Reason)
	}
	logger.ExternalServiceResult(ctx, "fcm", "SubscribeToTopic", err)
	return err
}

// NoopValidator accepts every token; used when Firebase is not configured
type NoopValidator struct{}

func (NoopValidator) Validate(context.Context, string) error { return nil }
func (NoopValidator) Subscribe(context.Context, string, string) error { return nil }
