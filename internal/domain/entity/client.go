package entity

import "time"

// Tipos de cliente.
const (
	ClientTypeMinorista    = "minorista"
	ClientTypeMayorista    = "mayorista"
	ClientTypeDistribuidor = "distribuidor"
)

// Client representa un cliente (tienda, distribuidor o consumidor final).
// RucCedula es la clave natural: RUC o cédula según el tipo de cliente.
type Client struct {
	ID           string
	RucCedula    string
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	Address      string
	ClientType   string // minorista, mayorista, distribuidor
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
