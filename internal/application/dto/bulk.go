package dto

// MaxBulkRecords máximo de registros aceptados por lote en los endpoints masivos.
const MaxBulkRecords = 1000

// BulkRecord un registro procesado con éxito, etiquetado con su acción.
type BulkRecord struct {
	Index  int    `json:"index"` // posición 1-based en el envío original
	Key    string `json:"key"`
	Name   string `json:"name"`
	Action string `json:"action"` // created | updated
	ID     string `json:"id,omitempty"`
}

// BulkErrorDetail un registro fallido, con lo necesario para corregir y reenviar.
type BulkErrorDetail struct {
	Index int    `json:"index"` // posición 1-based en el envío original
	Key   string `json:"key"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BulkData desglose de la carga masiva. Invariante: Created+Updated+Failed == Total.
type BulkData struct {
	Total   int               `json:"total"`
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Records []BulkRecord      `json:"records"`
	Errors  []BulkErrorDetail `json:"errors"`
}

// BulkResponse envoltura estable de respuesta para los tres endpoints masivos.
type BulkResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    BulkData `json:"data"`
}
