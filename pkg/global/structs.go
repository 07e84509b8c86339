package global

import (
	"neocommerce.in/storefront/pkg/notify"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type APIResponse struct {
	Success       bool                  `json:"success"`
	Data          interface{}           `json:"data,omitempty"`
	Message       string                `json:"message,omitempty"`
	Errors        []ValidationError     `json:"errors,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(message string, errors []ValidationError) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// WithNotifications attaches the toasts raised while handling a request.
func (r APIResponse) WithNotifications(n []notify.Notification) APIResponse {
	r.Notifications = n
	return r
}
