package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"billed/internal/dto"
	"billed/internal/models"
	"billed/internal/repository"
	"billed/internal/service"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StoreScope returns the store a user may see.
type StoreScope func(user *session.User) store.Store

// OwnerScope lets Admins reach every bill and limits everyone else to their own.
func OwnerScope(bills *store.Postgres) StoreScope {
	return func(user *session.User) store.Store {
		if user.Type == string(models.UserTypeAdmin) {
			return bills
		}
		return bills.ForOwner(user.Email)
	}
}

type BillHandler struct {
	scope  StoreScope
	logger *zap.Logger
}

func NewBillHandler(scope StoreScope, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		scope:  scope,
		logger: logger,
	}
}

// ListBills godoc
// @Summary List bills
// @Description Bills of the current employee, most recent first, with display date and status
// @Tags bills
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BillResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/bills [get]
func (h *BillHandler) ListBills(c *fiber.Ctx) error {
	_, user, err := requestSession(c)
	if err != nil {
		return unauthorized(c)
	}

	views, err := service.NewBillListService(h.scope(user), h.logger).List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list bills", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list bills",
		})
	}

	bills := make([]dto.BillResponse, len(views))
	for i, v := range views {
		bills[i] = dto.NewBillResponse(v)
	}
	return c.JSON(bills)
}

// CreateBill godoc
// @Summary Submit a new bill
// @Description Upload the proof (JPG, JPEG or PNG) and submit the bill form
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Proof image"
// @Param type formData string true "Expense type"
// @Param name formData string true "Expense name"
// @Param amount formData number true "Amount"
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param vat formData string true "VAT"
// @Param pct formData integer true "Percentage"
// @Param commentary formData string true "Commentary"
// @Security Bearer
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.SubmissionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/bills [post]
func (h *BillHandler) CreateBill(c *fiber.Ctx) error {
	sess, user, err := requestSession(c)
	if err != nil {
		return unauthorized(c)
	}

	rec := &view.Recorder{}
	svc := service.NewNewBillService(h.scope(user), sess, rec, h.logger)

	if fh, err := c.FormFile("file"); err == nil {
		file, err := readUpload(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open file",
			})
		}
		if err := svc.SelectFile(c.Context(), file); err != nil {
			return h.storeFailure(c, "Failed to upload proof", err)
		}
		if rec.Rejected() {
			return c.Status(fiber.StatusBadRequest).JSON(submission(rec, nil))
		}
	}

	var form service.NewBillForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := svc.Submit(c.Context(), form); err != nil {
		return h.storeFailure(c, "Failed to create bill", err)
	}
	if rec.Rejected() {
		return c.Status(fiber.StatusBadRequest).JSON(submission(rec, nil))
	}

	return c.Status(fiber.StatusCreated).JSON(submission(rec, svc.Created()))
}

// UpdateBill godoc
// @Summary Replace a bill
// @Description Full-record update of a bill reserved by an upload
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body models.Bill true "Bill"
// @Security Bearer
// @Success 200 {object} models.Bill
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/bills/{id} [put]
func (h *BillHandler) UpdateBill(c *fiber.Ctx) error {
	sess, user, err := requestSession(c)
	if err != nil {
		return unauthorized(c)
	}

	var bill models.Bill
	if err := c.BodyParser(&bill); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	// Only the back office moves a bill out of pending.
	if user.Type != string(models.UserTypeAdmin) {
		bill.Email = user.Email
		bill.Status = models.BillStatusPending
	}
	if bill.Status == "" {
		bill.Status = models.BillStatusPending
	}

	svc := service.NewNewBillService(h.scope(user), sess, &view.Recorder{}, h.logger)
	svc.Resume(c.Params("id"))
	if err := svc.UpdateBill(c.Context(), &bill); err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bill not found",
			})
		}
		return h.storeFailure(c, "Failed to update bill", err)
	}

	bill.ID = c.Params("id")
	return c.JSON(bill)
}

// ShowProof godoc
// @Summary Proof modal
// @Description Image to show in the proof modal of a bill, or a placeholder
// @Tags bills
// @Produce json
// @Param url query string false "Stored proof URL"
// @Security Bearer
// @Success 200 {object} dto.ProofResponse
// @Router /api/v1/bills/proof [get]
func (h *BillHandler) ShowProof(c *fiber.Ctx) error {
	_, user, err := requestSession(c)
	if err != nil {
		return unauthorized(c)
	}

	rec := &view.Recorder{}
	service.NewBillListService(h.scope(user), h.logger).ShowProof(rec, c.Query("url"))
	return c.JSON(dto.ProofResponse{ImageURL: rec.ModalImageURLs[0]})
}

func (h *BillHandler) storeFailure(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, repository.ErrBillExists) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Bill already submitted",
		})
	}
	if errors.Is(err, repository.ErrFileTooLarge) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	}
	if errors.Is(err, repository.ErrUnsupportedFileType) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": "Unsupported file type",
		})
	}
	h.logger.Error(message, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

func submission(rec *view.Recorder, bill *models.Bill) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		Bill:           bill,
		Alerts:         rec.Alerts,
		ClearFileInput: rec.FileCleared,
		Redirect:       rec.Redirect(),
	}
}

func readUpload(fh *multipart.FileHeader) (*models.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &models.UploadedFile{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Content:  content,
	}, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
