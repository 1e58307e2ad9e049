package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
)

type ResourceService interface {
	List(ctx context.Context, activeOnly bool) ([]*models.Resource, error)
	Create(ctx context.Context, creation *transfer.ResourceCreation) (int64, error)
	Update(ctx context.Context, update *transfer.ResourceUpdate) error
	Remove(ctx context.Context, id int64) error
	UploadPhoto(ctx context.Context, resourceID int64, file *multipart.FileHeader) (string, error)
}

type resourceService struct {
	r  repository.ResourceRepository
	r2 R2Service
}

func NewResourceService(r repository.ResourceRepository, r2 R2Service) ResourceService {
	return &resourceService{
		r:  r,
		r2: r2,
	}
}

func (s *resourceService) List(ctx context.Context, activeOnly bool) ([]*models.Resource, error) {
	return s.r.List(ctx, activeOnly)
}

func (s *resourceService) Create(ctx context.Context, creation *transfer.ResourceCreation) (int64, error) {
	resource := &models.Resource{
		Name:        creation.Name,
		Description: creation.Description,
		Capacity:    creation.Capacity,
		Active:      creation.Active,
	}
	return s.r.Create(ctx, resource)
}

func (s *resourceService) Update(ctx context.Context, update *transfer.ResourceUpdate) error {
	_, isExist, err := s.r.GetByID(ctx, update.ID)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrResourceNotFound
	}

	resource := &models.Resource{
		ID:          update.ID,
		Name:        update.Name,
		Description: update.Description,
		Capacity:    update.Capacity,
		Active:      update.Active,
	}
	return s.r.Update(ctx, resource)
}

func (s *resourceService) Remove(ctx context.Context, id int64) error {
	_, isExist, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrResourceNotFound
	}
	return s.r.Remove(ctx, id)
}

func (s *resourceService) UploadPhoto(ctx context.Context, resourceID int64, file *multipart.FileHeader) (string, error) {
	allowedTypes := map[string]struct{}{
		"jpg": {}, "jpeg": {}, "png": {}, "webp": {},
	}

	_, isExist, err := s.r.GetByID(ctx, resourceID)
	if err != nil {
		return "", err
	}
	if !isExist {
		return "", ErrResourceNotFound
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	if err := s.r2.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	photoURL := s.r2.PublicURL(key)
	if err := s.r.UpdatePhotoURL(ctx, resourceID, photoURL); err != nil {
		return "", err
	}

	return photoURL, nil
}
