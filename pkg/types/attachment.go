package types

// FileAttachment records an uploaded document kept alongside an order,
// such as a payment receipt or a carrier shipping label.
type FileAttachment struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data,omitempty"`
	UploadedAt  string `json:"uploaded_at,omitempty"`
}
