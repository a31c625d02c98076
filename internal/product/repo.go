// Package product provides the repository interface and PostgreSQL implementation for managing products.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrStillActive rejects a permanent delete of a product that was never soft-deleted.
	ErrStillActive = errors.New("product is not soft-deleted")
)

type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	GetActive(ctx context.Context, id string) (*Product, error)
	ListDeletedByOwner(ctx context.Context, ownerID string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product, updatePrice bool) error
	SoftDelete(ctx context.Context, id, ownerID string) error
	Restore(ctx context.Context, id, ownerID string) error
	HardDelete(ctx context.Context, id, ownerID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const productCols = `id, name, description, price::text, stock, user_id, category_id, image_url, deleted_at, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.UserID, &p.CategoryID, &p.ImageURL, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetActive(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	row := r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err := scanProduct(row, &p); err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) ListDeletedByOwner(ctx context.Context, ownerID string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE user_id=$1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, stock, user_id, category_id, image_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.UserID, p.CategoryID, p.ImageURL)
	return err
}

// Update touches only active products owned by p.UserID; a soft-deleted or
// foreign product reports ErrNotFound so ownership is not leaked.
func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		tag, err := r.db.Exec(ctx, `
			UPDATE products
			SET name = COALESCE(NULLIF($3,''), name),
			    description = COALESCE(NULLIF($4,''), description),
			    price = $5,
			    stock = $6,
			    image_url = COALESCE($7, image_url),
			    updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		`, p.ID, p.UserID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = COALESCE(NULLIF($3,''), name),
		    description = COALESCE(NULLIF($4,''), description),
		    stock = $5,
		    image_url = COALESCE($6, image_url),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, p.ID, p.UserID, p.Name, p.Description, p.Stock, p.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET deleted_at = NOW(), updated_at = NOW()
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Restore(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET deleted_at = NULL, updated_at = NOW()
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NOT NULL
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDelete removes a product permanently, but only after it has been
// soft-deleted first.
func (r *PGRepo) HardDelete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM products
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NOT NULL
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish "still active" from "absent" for the caller.
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL)
	`, id, ownerID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrStillActive
	}
	return ErrNotFound
}
