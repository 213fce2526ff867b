package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID         string     `json:"id"`
	EntityID   string     `json:"entity_id"`
	EntityType string     `json:"entity_type"`
	AlertType  string     `json:"alert_type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
