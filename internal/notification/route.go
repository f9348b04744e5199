package notification

import (
	"net/url"
	"strings"

	"helicharter-portal/internal/domain"
)

const fallbackURL = "/dashboard"

// Route maps a push payload's data section to the in-app URL a notification click opens
func Route(data map[string]string) string {
	bookingID := payloadBookingID(data)
	escaped := url.PathEscape(bookingID)

	switch domain.NotificationType(data["type"]) {
	case domain.NotificationChatMessage:
		if bookingID == "" {
			return fallbackURL
		}
		if domain.Role(data["recipient_role"]) == domain.RoleAdmin {
			return "/admin/chat/" + escaped
		}
		return "/chat/" + escaped
	case domain.NotificationNegotiationRequest:
		if bookingID == "" {
			return "/admin/negotiations"
		}
		return "/admin/negotiations?booking=" + url.QueryEscape(bookingID)
	case domain.NotificationNegotiationUpdate:
		if bookingID == "" {
			return fallbackURL
		}
		return "/dashboard/bookings/" + escaped
	}
	return fallbackURL
}

// payloadBookingID accepts both key spellings the backend has sent
func payloadBookingID(data map[string]string) string {
	if id := strings.TrimSpace(data["booking_id"]); id != "" {
		return id
	}
	return strings.TrimSpace(data["bookingId"])
}

// ClickTarget is what the service worker needs to show a notification and open it
type ClickTarget struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Tag   string `json:"tag,omitempty"`
}

// Target builds the click target for a push payload. Notifications for the same
// booking and type share a tag so the browser replaces rather than stacks them.
func Target(p domain.PushPayload) ClickTarget {
	t := ClickTarget{
		Title: p.Notification.Title,
		Body:  p.Notification.Body,
		URL:   Route(p.Data),
	}
	if t.Title == "" {
		t.Title = defaultTitle(domain.NotificationType(p.Data["type"]))
	}
	if typ, id := p.Data["type"], payloadBookingID(p.Data); typ != "" && id != "" {
		t.Tag = typ + ":" + id
	}
	return t
}

func defaultTitle(t domain.NotificationType) string {
	switch t {
	case domain.NotificationChatMessage:
		return "New message"
	case domain.NotificationNegotiationRequest:
		return "New negotiation request"
	case domain.NotificationNegotiationUpdate:
		return "Negotiation update"
	}
	return "Helicopter Charters"
}
