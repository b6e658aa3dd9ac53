package domain

import "fmt"

// Tone identifies the requested voice of the generated email.
type Tone string

// Tones with dedicated prompt descriptions. Other values are legal input
// and fall back to a generic professional voice at prompt-build time.
const (
	ToneSincere   Tone = "Sincere"
	TonePlayful   Tone = "Playful"
	ToneCorporate Tone = "Corporate"
)

// Seriousness bounds, inclusive.
const (
	MinSeriousness = 1
	MaxSeriousness = 5
)

// Validation errors for ExcuseRequest. All wrap ErrValidation so callers
// can classify them with errors.Is.
var (
	ErrEmptyCategory         = fmt.Errorf("%w: category cannot be empty", ErrValidation)
	ErrEmptyRecipientName    = fmt.Errorf("%w: recipient name cannot be empty", ErrValidation)
	ErrEmptySenderName       = fmt.Errorf("%w: sender name cannot be empty", ErrValidation)
	ErrEmptyEta              = fmt.Errorf("%w: eta cannot be empty", ErrValidation)
	ErrSeriousnessOutOfRange = fmt.Errorf("%w: seriousness must be between %d and %d", ErrValidation, MinSeriousness, MaxSeriousness)
)

// ExcuseRequest describes one excuse email to generate. It is immutable
// once constructed; NewExcuseRequest is the only way to obtain a valid one.
type ExcuseRequest struct {
	Category      string `json:"category"`
	Tone          Tone   `json:"tone"`
	Seriousness   int    `json:"seriousness"`
	RecipientName string `json:"recipient_name"`
	SenderName    string `json:"sender_name"`
	EtaWhen       string `json:"eta_when"`
}

// NewExcuseRequest creates a validated ExcuseRequest.
// Returns an error wrapping ErrValidation if any field is invalid.
func NewExcuseRequest(category string, tone Tone, seriousness int, recipientName, senderName, etaWhen string) (*ExcuseRequest, error) {
	req := &ExcuseRequest{
		Category:      category,
		Tone:          tone,
		Seriousness:   seriousness,
		RecipientName: recipientName,
		SenderName:    senderName,
		EtaWhen:       etaWhen,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the ExcuseRequest has valid data.
// Returns an error if any field fails validation.
func (r *ExcuseRequest) Validate() error {
	if r.Category == "" {
		return ErrEmptyCategory
	}

	if r.Seriousness < MinSeriousness || r.Seriousness > MaxSeriousness {
		return ErrSeriousnessOutOfRange
	}

	if r.RecipientName == "" {
		return ErrEmptyRecipientName
	}

	if r.SenderName == "" {
		return ErrEmptySenderName
	}

	if r.EtaWhen == "" {
		return ErrEmptyEta
	}

	return nil
}
