package dto

// ErrorResponse cuerpo de error HTTP. Details lleva el mensaje del store cuando
// el fallo viene de la capa de persistencia (passthrough, sin stack traces).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ProductRefDTO proyección del producto adjunta a registros de los ledgers,
// con la misma forma anidada que expone la API ("products": {...}).
type ProductRefDTO struct {
	Name    string `json:"name"`
	SKU     string `json:"sku"`
	Barcode string `json:"barcode,omitempty"`
}
