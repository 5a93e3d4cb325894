package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billed/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var billColumns = []string{
	"id", "email", "type", "name", "amount", "date", "vat", "pct",
	"commentary", "file_url", "file_name", "status", "created_at", "updated_at",
}

// Only placeholders reserved by the same owner may be finalised by an insert.
const finalizePlaceholder = `ON CONFLICT (id) DO UPDATE SET
	type = EXCLUDED.type,
	name = EXCLUDED.name,
	amount = EXCLUDED.amount,
	date = EXCLUDED.date,
	vat = EXCLUDED.vat,
	pct = EXCLUDED.pct,
	commentary = EXCLUDED.commentary,
	file_url = COALESCE(EXCLUDED.file_url, bills.file_url),
	file_name = COALESCE(EXCLUDED.file_name, bills.file_name),
	status = EXCLUDED.status,
	updated_at = EXCLUDED.updated_at
WHERE bills.name IS NULL AND bills.email = EXCLUDED.email
RETURNING id`

type BillRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBillRepository(db *pgxpool.Pool, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
	}
}

// List returns the stored bills of owner, or every bill when owner is empty.
func (r *BillRepository) List(ctx context.Context, owner string) ([]models.BillDocument, error) {
	query := squirrel.Select(billColumns...).
		From("bills").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if owner != "" {
		query = query.Where(squirrel.Eq{"email": owner})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]models.BillDocument, 0)
	for rows.Next() {
		var doc models.BillDocument
		if err := rows.Scan(
			&doc.ID, &doc.Email, &doc.Type, &doc.Name, &doc.Amount, &doc.Date, &doc.VAT, &doc.Pct,
			&doc.Commentary, &doc.FileURL, &doc.FileName, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Reserve inserts a nameless placeholder holding an uploaded proof.
func (r *BillRepository) Reserve(ctx context.Context, id, email, fileURL, fileName string) error {
	now := time.Now()
	query := squirrel.Insert("bills").
		Columns("id", "email", "file_url", "file_name", "status", "created_at", "updated_at").
		Values(id, email, fileURL, fileName, models.BillStatusPending, now, now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Create inserts bill, or finalises the placeholder reserved under bill.ID.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	} else if _, err := uuid.Parse(bill.ID); err != nil {
		return nil, fmt.Errorf("bill %q: %w", bill.ID, ErrBillNotFound)
	}

	now := time.Now()
	query := squirrel.Insert("bills").
		Columns(billColumns...).
		Values(
			bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.VAT, bill.Pct,
			bill.Commentary, nullable(bill.FileURL), nullable(bill.FileName), bill.Status, now, now,
		).
		Suffix(finalizePlaceholder).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var id string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bill %s: %w", bill.ID, ErrBillExists)
		}
		return nil, err
	}

	created := *bill
	created.ID = id
	return &created, nil
}

// Update replaces every field of the bill selected by id. A non-empty owner
// restricts the update to that owner's bills.
func (r *BillRepository) Update(ctx context.Context, owner, id string, bill *models.Bill) (*models.Bill, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("bill %q: %w", id, ErrBillNotFound)
	}

	query := squirrel.Update("bills").
		SetMap(map[string]interface{}{
			"email":      bill.Email,
			"type":       bill.Type,
			"name":       bill.Name,
			"amount":     bill.Amount,
			"date":       bill.Date,
			"vat":        bill.VAT,
			"pct":        bill.Pct,
			"commentary": bill.Commentary,
			"file_url":   nullable(bill.FileURL),
			"file_name":  nullable(bill.FileName),
			"status":     bill.Status,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if owner != "" {
		query = query.Where(squirrel.Eq{"email": owner})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("bill %s: %w", id, ErrBillNotFound)
	}

	updated := *bill
	updated.ID = id
	return &updated, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
