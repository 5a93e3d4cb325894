package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// DateLayout is the canonical form every bill date is stored in.
const DateLayout = "2006-01-02"

// Bill is a submitted expense record.
type Bill struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	VAT        string          `json:"vat"`
	Pct        int             `json:"pct"`
	Commentary string          `json:"commentary,omitempty"`
	FileURL    string          `json:"fileUrl"`
	FileName   string          `json:"fileName"`
	Status     BillStatus      `json:"status"`
}

// BillDocument is a bill as the store returns it. Name is nil for placeholder
// rows reserved by an upload whose form was never submitted.
type BillDocument struct {
	ID         string           `db:"id"`
	Email      string           `db:"email"`
	Type       *string          `db:"type"`
	Name       *string          `db:"name"`
	Amount     *decimal.Decimal `db:"amount"`
	Date       *string          `db:"date"`
	VAT        *string          `db:"vat"`
	Pct        *int32           `db:"pct"`
	Commentary *string          `db:"commentary"`
	FileURL    *string          `db:"file_url"`
	FileName   *string          `db:"file_name"`
	Status     string           `db:"status"`
	CreatedAt  time.Time        `db:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at"`
}

// BillView is a listed bill with its display-only fields.
type BillView struct {
	BillDocument
	FormattedDate string
	StatusLabel   string
}
