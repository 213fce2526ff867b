package dto

import "time"

// BulkClientRecord un registro del endpoint de carga masiva de clientes.
// La clave natural es ruc_cedula (RUC o cédula según el tipo de cliente).
type BulkClientRecord struct {
	RucCedula    string `json:"ruc_cedula" validate:"required,min=10,max=13"`
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" validate:"max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=20"`
	Address      string `json:"address" validate:"max=300"`
	ClientType   string `json:"client_type" validate:"omitempty,oneof=minorista mayorista distribuidor"`
}

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	RucCedula    string `json:"ruc_cedula" validate:"required,min=10,max=13"`
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" validate:"max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=20"`
	Address      string `json:"address" validate:"max=300"`
	ClientType   string `json:"client_type" validate:"omitempty,oneof=minorista mayorista distribuidor"`
}

// UpdateClientRequest entrada para actualizar un cliente (campos opcionales).
type UpdateClientRequest struct {
	BusinessName *string `json:"business_name" validate:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" validate:"omitempty,max=200"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	ClientType   *string `json:"client_type" validate:"omitempty,oneof=minorista mayorista distribuidor"`
	IsActive     *bool   `json:"is_active"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           string    `json:"id"`
	RucCedula    string    `json:"ruc_cedula"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	ClientType   string    `json:"client_type"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
