// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No session required
	SecurityUser                        // Any signed-in session
	SecurityAdmin                       // Session with the admin role
)

// RouteSecurityConfig maps route names to their required security level
var RouteSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.signup":          SecurityPublic,
	"auth.login":           SecurityPublic,
	"auth.admin_login":     SecurityPublic,
	"auth.forgot_password": SecurityPublic,
	"auth.logout":          SecurityUser,

	// Marketing - Public
	"health":              SecurityPublic,
	"helicopters.list":    SecurityPublic,
	"contact.submit":      SecurityPublic,
	"notifications.route": SecurityPublic,

	// Bookings - User
	"bookings.list":       SecurityUser,
	"bookings.create":     SecurityUser,
	"bookings.get":        SecurityUser,
	"bookings.update":     SecurityUser,
	"bookings.status":     SecurityUser,
	"negotiation.request": SecurityUser,
	"negotiation.history": SecurityUser,
	"payment.direct":      SecurityUser,
	"payment.negotiated":  SecurityUser,
	"payment.wait":        SecurityUser,
	"chat.list":           SecurityUser,
	"chat.send":           SecurityUser,
	"chat.mark_read":      SecurityUser,
	"notifications.token": SecurityUser,
	"ws.payment":          SecurityUser,
	"ws.chat":             SecurityUser,

	// Admin
	"admin.bookings":           SecurityAdmin,
	"negotiation.respond":      SecurityAdmin,
	"chat.unread_count":        SecurityAdmin,
	"admin.helicopters.add":    SecurityAdmin,
	"admin.helicopters.delete": SecurityAdmin,
	"ws.unread":                SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := RouteSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}
