package domain

type NotificationType string

const (
	NotificationChatMessage        NotificationType = "chat_message"
	NotificationNegotiationRequest NotificationType = "negotiation_request"
	NotificationNegotiationUpdate  NotificationType = "negotiation_update"
)

// PushPayload is the FCM message as the service worker receives it
type PushPayload struct {
	Notification struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	} `json:"notification"`
	Data map[string]string `json:"data"`
}

type FCMTokenRequest struct {
	Token string `json:"fcm_token"`
}
