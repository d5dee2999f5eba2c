package types

// Customer captures the recipient details embedded on an order.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}
