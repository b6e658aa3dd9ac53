package api

// GenerateExcuseRequest represents the request body for generating an
// excuse email.
type GenerateExcuseRequest struct {
	Category      string `json:"category"       validate:"required,min=1"`
	Tone          string `json:"tone"           validate:"required,min=1"`
	Seriousness   int    `json:"seriousness"    validate:"required,gte=1,lte=5"`
	RecipientName string `json:"recipient_name" validate:"required,min=1"`
	SenderName    string `json:"sender_name"    validate:"required,min=1"`
	EtaWhen       string `json:"eta_when"       validate:"required,min=1"`
}

// ExcuseResponse represents the response data for a generated excuse email.
// Success is false when the model's response could not be normalized; the
// response is still well-formed and Error carries the diagnostic.
type ExcuseResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
