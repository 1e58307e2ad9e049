package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/reservapp/reservapp/internal/models"
)

type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Resource, bool, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) (int64, error)
	Update(ctx context.Context, resource *models.Resource) error
	UpdatePhotoURL(ctx context.Context, id int64, photoURL string) error
	Remove(ctx context.Context, id int64) error
}

type resourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, bool, error) {
	var res models.Resource
	query := "SELECT id, name, description, capacity, photo_url, active FROM resources WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.Name, &res.Description, &res.Capacity, &res.PhotoURL, &res.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &res, true, nil
}

func (r *resourceRepository) List(ctx context.Context, activeOnly bool) ([]*models.Resource, error) {
	query := "SELECT id, name, description, capacity, photo_url, active FROM resources ORDER BY name"
	if activeOnly {
		query = "SELECT id, name, description, capacity, photo_url, active FROM resources WHERE active = true ORDER BY name"
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.ID, &res.Name, &res.Description, &res.Capacity, &res.PhotoURL, &res.Active); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		resources = append(resources, &res)
	}
	return resources, rows.Err()
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) (int64, error) {
	query := "INSERT INTO resources (name, description, capacity, photo_url, active) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	var id int64
	err := r.db.QueryRowContext(ctx, query, resource.Name, resource.Description, resource.Capacity, resource.PhotoURL, resource.Active).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	query := `
		UPDATE resources
		SET name = $1,
			description = $2,
			capacity = $3,
			active = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, resource.Name, resource.Description, resource.Capacity, resource.Active, time.Now(), resource.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *resourceRepository) UpdatePhotoURL(ctx context.Context, id int64, photoURL string) error {
	query := "UPDATE resources SET photo_url = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *resourceRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM resources WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
