package store

import (
	"context"
	"fmt"

	"billed/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type billRepository interface {
	List(ctx context.Context, owner string) ([]models.BillDocument, error)
	Reserve(ctx context.Context, id, email, fileURL, fileName string) error
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	Update(ctx context.Context, owner, id string, bill *models.Bill) (*models.Bill, error)
}

type proofStorage interface {
	Save(file *models.UploadedFile) (storedName, url string, err error)
	Remove(storedName string)
}

// Postgres is the Store backed by the bills table and a proof directory.
type Postgres struct {
	bills  billRepository
	files  proofStorage
	owner  string
	logger *zap.Logger
}

func NewPostgres(bills billRepository, files proofStorage, logger *zap.Logger) *Postgres {
	return &Postgres{
		bills:  bills,
		files:  files,
		logger: logger,
	}
}

// ForOwner returns a copy whose listing and updates only cover bills of email.
func (s *Postgres) ForOwner(email string) *Postgres {
	scoped := *s
	scoped.owner = email
	return &scoped
}

func (s *Postgres) Bills() BillCollection {
	return &postgresBills{repo: s.bills, owner: s.owner}
}

// Upload writes the proof then reserves a placeholder bill pointing at it.
func (s *Postgres) Upload(ctx context.Context, file *models.UploadedFile, fileName, email string) (*models.UploadResult, error) {
	storedName, url, err := s.files.Save(file)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString()
	if err := s.bills.Reserve(ctx, key, email, url, fileName); err != nil {
		s.files.Remove(storedName)
		return nil, fmt.Errorf("failed to reserve bill: %w", err)
	}

	s.logger.Info("Proof stored", zap.String("key", key), zap.String("file", storedName))
	return &models.UploadResult{FileURL: url, FileName: fileName, Key: key}, nil
}

type postgresBills struct {
	repo  billRepository
	owner string
}

func (b *postgresBills) List(ctx context.Context) ([]models.BillDocument, error) {
	return b.repo.List(ctx, b.owner)
}

func (b *postgresBills) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	return b.repo.Create(ctx, bill)
}

func (b *postgresBills) Update(ctx context.Context, selector string, bill *models.Bill) (*models.Bill, error) {
	return b.repo.Update(ctx, b.owner, selector, bill)
}
