package dto

import (
	"billed/internal/models"

	"github.com/shopspring/decimal"
)

// BillResponse is a listed bill. Date and Status hold display values; RawDate
// keeps the stored ISO date.
type BillResponse struct {
	ID         string           `json:"id"`
	Email      string           `json:"email"`
	Type       string           `json:"type"`
	Name       string           `json:"name"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       string           `json:"date"`
	RawDate    string           `json:"raw_date"`
	VAT        string           `json:"vat"`
	Pct        *int32           `json:"pct"`
	Commentary string           `json:"commentary,omitempty"`
	FileURL    string           `json:"fileUrl"`
	FileName   string           `json:"fileName"`
	Status     string           `json:"status"`
}

// SubmissionResponse reports what the employee's screen should do after a
// new-bill submission.
type SubmissionResponse struct {
	Bill           *models.Bill `json:"bill,omitempty"`
	Alerts         []string     `json:"alerts,omitempty"`
	ClearFileInput bool         `json:"clear_file_input,omitempty"`
	Redirect       string       `json:"redirect,omitempty"`
}

type ProofResponse struct {
	ImageURL string `json:"image_url"`
}

func NewBillResponse(v *models.BillView) BillResponse {
	return BillResponse{
		ID:         v.ID,
		Email:      v.Email,
		Type:       str(v.Type),
		Name:       str(v.Name),
		Amount:     v.Amount,
		Date:       v.FormattedDate,
		RawDate:    str(v.BillDocument.Date),
		VAT:        str(v.VAT),
		Pct:        v.Pct,
		Commentary: str(v.Commentary),
		FileURL:    str(v.FileURL),
		FileName:   str(v.FileName),
		Status:     v.StatusLabel,
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
