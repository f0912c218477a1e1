package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aegis-security/site-service/internal/domain"
)

// GalleryRepository encapsulates gallery image persistence.
type GalleryRepository interface {
	Create(ctx context.Context, image *domain.GalleryImage) error
	List(ctx context.Context) ([]domain.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

type galleryRepository struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository instantiates repository.
func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &galleryRepository{pool: pool}
}

func (r *galleryRepository) Create(ctx context.Context, image *domain.GalleryImage) error {
	const query = `
        INSERT INTO gallery_images (title, caption, image_url, position)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		image.Title,
		image.Caption,
		image.ImageURL,
		image.Position,
	).Scan(&image.ID, &image.CreatedAt)
}

func (r *galleryRepository) List(ctx context.Context) ([]domain.GalleryImage, error) {
	const query = `
        SELECT id, title, caption, image_url, position, created_at
        FROM gallery_images ORDER BY position ASC, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []domain.GalleryImage{}
	for rows.Next() {
		var image domain.GalleryImage
		if err := rows.Scan(
			&image.ID,
			&image.Title,
			&image.Caption,
			&image.ImageURL,
			&image.Position,
			&image.CreatedAt,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM gallery_images WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
