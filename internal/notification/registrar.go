package notification

import (
	"context"
	"errors"
	"strings"

	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

// TokenStore is where push tokens are kept; the backend owns them
type TokenStore interface {
	RegisterFCMToken(ctx context.Context, token, fcmToken string) error
}

type Registrar struct {
	store     TokenStore
	validator TokenValidator
}

func NewRegistrar(store TokenStore, validator TokenValidator) *Registrar {
	if validator == nil {
		validator = NoopValidator{}
	}
	return &Registrar{store: store, validator: validator}
}

// Register validates the browser's push token and hands it to the backend.
// If FCM itself is unavailable the token is still registered; only a token FCM
// rejects is refused. Admin devices are also subscribed to AdminTopic.
func (r *Registrar) Register(ctx context.Context, token, fcmToken string, role domain.Role) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return domain.ValidationError{Field: "fcm_token", Msg: "push token is required"}
	}

	if err := r.validator.Validate(ctx, fcmToken); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return domain.ValidationError{Field: "fcm_token", Msg: err.Error(), Err: err}
		}
		logger.WarnContext(ctx, "Could not validate push token, registering anyway", "error", err)
	}

	if err := r.store.RegisterFCMToken(ctx, token, fcmToken); err != nil {
		return err
	}

	if role == domain.RoleAdmin {
		if err := r.validator.Subscribe(ctx, fcmToken, AdminTopic); err != nil {
			logger.WarnContext(ctx, "Admin topic subscription failed", "error", err)
		}
	}
	return nil
}
