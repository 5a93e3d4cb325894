package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"billed/internal/metrics"
	"billed/internal/models"
	"billed/internal/store"
	"billed/internal/view"

	"go.uber.org/zap"
)

type BillListService struct {
	store  store.Store
	logger *zap.Logger
}

func NewBillListService(billStore store.Store, logger *zap.Logger) *BillListService {
	return &BillListService{
		store:  billStore,
		logger: logger,
	}
}

// List returns every named bill with display fields, most recent date first.
// A bill whose date cannot be formatted keeps its raw date.
func (s *BillListService) List(ctx context.Context) ([]*models.BillView, error) {
	docs, err := s.store.Bills().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	views := make([]*models.BillView, 0, len(docs))
	for _, doc := range docs {
		if doc.Name == nil {
			metrics.PlaceholdersSkipped.Inc()
			continue
		}

		rawDate := deref(doc.Date)
		formatted, err := FormatDate(rawDate)
		if err != nil {
			metrics.DateFormatFailures.Inc()
			s.logger.Warn("Bill date could not be formatted",
				zap.String("bill_id", doc.ID),
				zap.String("date", rawDate),
				zap.Error(err),
			)
			formatted = rawDate
		}

		views = append(views, &models.BillView{
			BillDocument:  doc,
			FormattedDate: formatted,
			StatusLabel:   FormatStatus(doc.Status),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return compareDates(deref(views[i].Date), deref(views[j].Date)) > 0
	})

	metrics.BillsListed.Add(float64(len(views)))
	return views, nil
}

// compareDates orders date strings lexically. Equal dates get no tie-break.
func compareDates(a, b string) int {
	if a > b {
		return 1
	}
	if a < b {
		return -1
	}
	return 0
}

// ShowProof opens the proof modal for a bill, falling back to a placeholder
// image when the bill carries no file.
func (s *BillListService) ShowProof(v view.Port, fileURL string) {
	url := PlaceholderProofURL
	if fileURL != "" && !strings.Contains(fileURL, "null") {
		url = fileURL
	}
	v.ShowImageModal(url)
}

func (s *BillListService) OpenNewBill(v view.Port) {
	v.Navigate(view.RouteNewBill)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
