package service

import (
	"context"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"billed/internal/metrics"
	"billed/internal/models"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var validate = validator.New()

var allowedProofTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// maxAmount is the first value a NUMERIC(12,2) amount column cannot hold.
var maxAmount = decimal.New(1, 10)

// FormState tracks where a submission is in its lifecycle.
type FormState int

const (
	FormEmpty FormState = iota
	FormFileSelected
	FormSubmitted
	FormCreated
)

// NewBillForm carries the raw field values of the new-bill form.
type NewBillForm struct {
	Type       string `json:"type" form:"type" validate:"required"`
	Name       string `json:"name" form:"name" validate:"required"`
	Amount     string `json:"amount" form:"amount" validate:"required,numeric"`
	Date       string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	VAT        string `json:"vat" form:"vat" validate:"required"`
	Pct        string `json:"pct" form:"pct" validate:"required,number"`
	Commentary string `json:"commentary" form:"commentary" validate:"required"`
}

// NewBillService drives a single new-bill submission. Instances must not be
// shared between submissions.
type NewBillService struct {
	store   store.Store
	session session.Session
	view    view.Port
	logger  *zap.Logger

	state    FormState
	billID   string
	fileURL  string
	fileName string
	created  *models.Bill
}

func NewNewBillService(billStore store.Store, sess session.Session, v view.Port, logger *zap.Logger) *NewBillService {
	return &NewBillService{
		store:   billStore,
		session: sess,
		view:    v,
		logger:  logger,
	}
}

// Resume continues the submission of an already reserved bill.
func (s *NewBillService) Resume(billID string) {
	s.billID = billID
}

func (s *NewBillService) State() FormState {
	return s.state
}

// Created returns the bill accepted by the store, or nil.
func (s *NewBillService) Created() *models.Bill {
	return s.created
}

// IsValidFileType reports whether the file is a JPEG or PNG image.
func (s *NewBillService) IsValidFileType(file *models.UploadedFile) bool {
	if file == nil || file.MimeType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(file.MimeType)
	if err != nil {
		return false
	}
	return allowedProofTypes[strings.ToLower(mediaType)]
}

// SelectFile uploads a proof and remembers where it was stored. A file of the
// wrong type is refused on screen and never uploaded.
func (s *NewBillService) SelectFile(ctx context.Context, file *models.UploadedFile) error {
	if !s.IsValidFileType(file) {
		s.view.ClearFileInput()
		s.view.Alert(MsgInvalidFileType)
		s.reset()
		metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonFileType).Inc()
		s.logger.Debug("Proof rejected", zap.String("mime_type", mimeTypeOf(file)))
		return nil
	}

	user, err := session.CurrentUser(s.session)
	if err != nil {
		return err
	}

	result, err := s.store.Upload(ctx, file, file.Name, user.Email)
	if err != nil {
		metrics.Uploads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upload proof: %w", err)
	}
	metrics.Uploads.WithLabelValues("ok").Inc()

	s.billID = result.Key
	s.fileURL = result.FileURL
	s.fileName = result.FileName
	s.state = FormFileSelected
	return nil
}

// Submit creates the bill from the form and returns to the bill list. An
// incomplete form is refused on screen without reaching the store.
func (s *NewBillService) Submit(ctx context.Context, form NewBillForm) error {
	if err := validate.Struct(form); err != nil {
		s.rejectForm(err)
		return nil
	}
	amount, pct, err := parseFigures(form)
	if err != nil {
		s.rejectForm(err)
		return nil
	}

	user, err := session.CurrentUser(s.session)
	if err != nil {
		return err
	}

	bill := &models.Bill{
		ID:         s.billID,
		Email:      user.Email,
		Type:       sanitizeUTF8(form.Type),
		Name:       sanitizeUTF8(form.Name),
		Amount:     amount,
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: sanitizeUTF8(form.Commentary),
		FileURL:    s.fileURL,
		FileName:   s.fileName,
		Status:     models.BillStatusPending,
	}

	s.state = FormSubmitted
	created, err := s.store.Bills().Create(ctx, bill)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	if created == nil {
		created = bill
	}
	metrics.BillsCreated.Inc()

	s.created = created
	s.billID = created.ID
	s.state = FormCreated
	s.logger.Info("Bill created", zap.String("bill_id", created.ID), zap.String("email", created.Email))

	s.view.Navigate(view.RouteBills)
	return nil
}

// UpdateBill replaces the stored record of the bill this submission reserved.
func (s *NewBillService) UpdateBill(ctx context.Context, bill *models.Bill) error {
	if s.billID == "" {
		return ErrNoPendingBill
	}
	if _, err := s.store.Bills().Update(ctx, s.billID, bill); err != nil {
		return fmt.Errorf("failed to update bill %s: %w", s.billID, err)
	}
	return nil
}

func (s *NewBillService) rejectForm(err error) {
	s.view.Alert(MsgMissingFields)
	metrics.SubmissionsRejected.WithLabelValues(metrics.ReasonMissingFields).Inc()
	s.logger.Debug("New bill form rejected", zap.Error(err))
}

// parseFigures reads amount and pct within what the bills table can store.
func parseFigures(form NewBillForm) (decimal.Decimal, int, error) {
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("parse amount: %w", err)
	}
	if amount.Abs().Round(2).GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, 0, fmt.Errorf("amount %s out of range", form.Amount)
	}
	pct, err := strconv.ParseInt(form.Pct, 10, 32)
	if err != nil {
		return decimal.Decimal{}, 0, fmt.Errorf("parse pct: %w", err)
	}
	return amount, int(pct), nil
}

func (s *NewBillService) reset() {
	s.billID, s.fileURL, s.fileName = "", "", ""
	s.state = FormEmpty
}

func mimeTypeOf(file *models.UploadedFile) string {
	if file == nil {
		return ""
	}
	return file.MimeType
}
