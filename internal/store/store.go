// Package store defines the persistence port the bill services talk to.
package store

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"

	"billed/internal/models"
)

// BillCollection is the collection-style view of stored bills.
type BillCollection interface {
	List(ctx context.Context) ([]models.BillDocument, error)
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	// Update replaces the full record selected by id.
	Update(ctx context.Context, selector string, bill *models.Bill) (*models.Bill, error)
}

type Store interface {
	Bills() BillCollection
	// Upload stores a proof for the given owner and reserves the bill key it belongs to.
	Upload(ctx context.Context, file *models.UploadedFile, fileName, email string) (*models.UploadResult, error)
}
