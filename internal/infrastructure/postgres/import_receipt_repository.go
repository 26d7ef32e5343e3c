package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.ImportReceiptRepository = (*ImportReceiptRepo)(nil)

// ImportReceiptRepo implementación de ImportReceiptRepository: cabecera en
// import_receipts, líneas en import_receipt_items.
type ImportReceiptRepo struct {
	q Querier
}

// NewImportReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImportReceiptRepository(q Querier) *ImportReceiptRepo {
	return &ImportReceiptRepo{q: q}
}

const receiptColumns = `id, code, supplier_id, location, total_amount, status, notes,
		created_by, created_by_name, completed_by, completed_by_name, completed_at,
		created_at, updated_at`

// Create persiste la cabecera y las líneas. Código duplicado (carrera por el
// secuencial del día) -> domain.ErrDuplicate.
func (r *ImportReceiptRepo) Create(ctx context.Context, rc *entity.ImportReceipt) error {
	query := `
		INSERT INTO import_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.Code, rc.SupplierID, rc.Location.Key(), rc.TotalAmount, rc.Status,
		nullIfEmpty(rc.Notes), nullIfEmpty(rc.CreatedBy), nullIfEmpty(rc.CreatedByName),
		nullIfEmpty(rc.CompletedBy), nullIfEmpty(rc.CompletedByName), rc.CompletedAt,
		rc.CreatedAt, rc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert import receipt: %w", err)
	}

	itemQuery := `
		INSERT INTO import_receipt_items (receipt_id, position, ingredient_id, ingredient_name, quantity, unit, price_per_unit, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, it := range rc.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			rc.ID, i, it.IngredientID, it.IngredientName, it.Quantity, it.Unit, it.PricePerUnit, it.Total); err != nil {
			return fmt.Errorf("insert receipt item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la recepción con sus líneas, o nil si no existe.
func (r *ImportReceiptRepo) GetByID(ctx context.Context, id string) (*entity.ImportReceipt, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR
// UPDATE) para el resto de la transacción.
func (r *ImportReceiptRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ImportReceipt, error) {
	return r.getByID(ctx, id, true)
}

func (r *ImportReceiptRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.ImportReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM import_receipts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rc, err := scanReceipt(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import receipt: %w", err)
	}
	if err := r.loadItems(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// List devuelve recepciones filtradas, más recientes primero.
func (r *ImportReceiptRepo) List(ctx context.Context, filter repository.ReceiptListFilter) ([]*entity.ImportReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM import_receipts WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Location != nil {
		args = append(args, filter.Location.Key())
		query += fmt.Sprintf(" AND location = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import receipts: %w", err)
	}
	defer rows.Close()

	var out []*entity.ImportReceipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import receipt: %w", err)
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rc := range out {
		if err := r.loadItems(ctx, rc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update persiste estado, notas y campos de completado. Las líneas no se
// editan nunca después de crear.
func (r *ImportReceiptRepo) Update(ctx context.Context, rc *entity.ImportReceipt) error {
	query := `
		UPDATE import_receipts
		SET status = $2, notes = $3, completed_by = $4, completed_by_name = $5,
		    completed_at = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rc.ID, rc.Status, nullIfEmpty(rc.Notes),
		nullIfEmpty(rc.CompletedBy), nullIfEmpty(rc.CompletedByName),
		rc.CompletedAt, rc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update import receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestCodeForDay devuelve el código con mayor número de secuencia del día
// ("" si no hay). El orden es numérico sobre el sufijo: a partir de la
// recepción 100 este se ensancha y el orden lexicográfico dejaría de servir.
func (r *ImportReceiptRepo) LatestCodeForDay(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT code FROM import_receipts
		WHERE code LIKE $1 || '-%'
		ORDER BY split_part(code, '-', 3)::int DESC
		LIMIT 1`
	var code string
	err := r.q.QueryRow(ctx, query, prefix).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest receipt code: %w", err)
	}
	return code, nil
}

func (r *ImportReceiptRepo) loadItems(ctx context.Context, rc *entity.ImportReceipt) error {
	query := `
		SELECT ingredient_id, ingredient_name, quantity, unit, price_per_unit, total
		FROM import_receipt_items WHERE receipt_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, rc.ID)
	if err != nil {
		return fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.ReceiptItem
		if err := rows.Scan(&it.IngredientID, &it.IngredientName, &it.Quantity, &it.Unit, &it.PricePerUnit, &it.Total); err != nil {
			return fmt.Errorf("scan receipt item: %w", err)
		}
		rc.Items = append(rc.Items, it)
	}
	return rows.Err()
}

func scanReceipt(row pgx.Row) (*entity.ImportReceipt, error) {
	var rc entity.ImportReceipt
	var locKey string
	var notes, createdBy, createdByName, completedBy, completedByName *string
	if err := row.Scan(
		&rc.ID, &rc.Code, &rc.SupplierID, &locKey, &rc.TotalAmount, &rc.Status, &notes,
		&createdBy, &createdByName, &completedBy, &completedByName, &rc.CompletedAt,
		&rc.CreatedAt, &rc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	loc, err := entity.ParseLocationKey(locKey)
	if err != nil {
		return nil, err
	}
	rc.Location = loc
	rc.Notes = deref(notes)
	rc.CreatedBy = deref(createdBy)
	rc.CreatedByName = deref(createdByName)
	rc.CompletedBy = deref(completedBy)
	rc.CompletedByName = deref(completedByName)
	return &rc, nil
}
