package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/pkg/metrics"
	"github.com/shashiranjanraj/sweetshop/pkg/storage"
)

// ErrBadImage is returned for uploads that are not a supported image type.
var ErrBadImage = errors.New("unsupported image type")

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true,
}

type SweetService struct {
	sweets repositories.SweetRepository
	images storage.Disk
}

func NewSweetService(sweets repositories.SweetRepository, images storage.Disk) *SweetService {
	return &SweetService{sweets: sweets, images: images}
}

// List returns the whole catalogue. Image is a plain string field, so every
// item comes back with image present ("" when unset) and clients always see
// the same shape.
func (s *SweetService) List(ctx context.Context) ([]models.Sweet, error) {
	return s.sweets.Find(ctx, repositories.SweetFilter{})
}

// Search narrows the catalogue by the given filter; an empty filter is
// equivalent to List.
func (s *SweetService) Search(ctx context.Context, filter repositories.SweetFilter) ([]models.Sweet, error) {
	return s.sweets.Find(ctx, filter)
}

// Create adds a new sweet with sold = 0 and a whitespace-trimmed image.
func (s *SweetService) Create(ctx context.Context, name, category string, price float64, quantity int, image string) (*models.Sweet, error) {
	sweet := &models.Sweet{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    price,
		Quantity: quantity,
		Sold:     0,
		Image:    strings.TrimSpace(image),
	}

	if err := s.sweets.Insert(ctx, sweet); err != nil {
		return nil, err
	}
	return sweet, nil
}

// Purchase takes one unit of the sweet off the shelf. The stock-out guard and
// the decrement run as a single conditional update in the repository, so the
// quantity invariant holds under concurrent purchases.
func (s *SweetService) Purchase(ctx context.Context, id string) (*models.Sweet, error) {
	sweet, err := s.sweets.Purchase(ctx, id)
	switch {
	case err == nil:
		metrics.PurchasesTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, repositories.ErrOutOfStock):
		metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
	case errors.Is(err, repositories.ErrNotFound):
		metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
	default:
		metrics.PurchasesTotal.WithLabelValues("error").Inc()
	}
	return sweet, err
}

// Restock adds quantity units to the sweet. Callers validate quantity >= 1 at
// the boundary; the repository applies it as one $inc.
func (s *SweetService) Restock(ctx context.Context, id string, quantity int) (*models.Sweet, error) {
	sweet, err := s.sweets.AddQuantity(ctx, id, quantity)
	if err == nil {
		metrics.RestocksTotal.Inc()
	}
	return sweet, err
}

// Update applies a partial patch: only the fields the client sent change,
// absence never implies anything. A present image is trimmed first.
func (s *SweetService) Update(ctx context.Context, id string, patch repositories.SweetPatch) (*models.Sweet, error) {
	if patch.Image != nil {
		trimmed := strings.TrimSpace(*patch.Image)
		patch.Image = &trimmed
	}
	return s.sweets.Update(ctx, id, patch)
}

// Delete removes the sweet permanently.
func (s *SweetService) Delete(ctx context.Context, id string) error {
	return s.sweets.Delete(ctx, id)
}

// Revenue computes price × sold per sweet at request time; nothing is cached
// or stored.
func (s *SweetService) Revenue(ctx context.Context) ([]models.Revenue, error) {
	sweets, err := s.sweets.Find(ctx, repositories.SweetFilter{})
	if err != nil {
		return nil, err
	}

	report := make([]models.Revenue, 0, len(sweets))
	for _, sw := range sweets {
		report = append(report, models.Revenue{
			Name:    sw.Name,
			Revenue: sw.Price * float64(sw.Sold),
		})
	}
	return report, nil
}

// AttachImage stores an uploaded picture on the configured disk and points the
// sweet's image at its public URL.
func (s *SweetService) AttachImage(ctx context.Context, id, filename string, data []byte) (*models.Sweet, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !imageExtensions[ext] {
		return nil, ErrBadImage
	}

	// Look the sweet up first so a bad id fails before anything is written.
	if _, err := s.sweets.FindByID(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("sweets/%s%s", id, ext)
	if err := s.images.Put(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	url := s.images.URL(key)
	sweet, err := s.sweets.Update(ctx, id, repositories.SweetPatch{Image: &url})
	if err != nil {
		// The sweet vanished between the lookup and the update; don't leave
		// the uploaded object orphaned on the disk.
		_ = s.images.Delete(ctx, key)
		return nil, err
	}
	return sweet, nil
}
