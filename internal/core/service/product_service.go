package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type ProductService struct {
	repo     ports.ProductRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, activity: activity, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new product with the default image and a fresh createdAt.
func (s *ProductService) Create(ctx context.Context, actor ports.Actor, in ports.ProductInput) (*domain.Product, error) {
	if !actor.Role.CanEditCatalog() {
		return nil, domain.ErrForbidden
	}

	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		Status:      in.Status,
		Image:       domain.StringPtr(domain.DefaultProductImage),
		CreatedAt:   time.Now().UTC(),
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("actor", actor.ID).Msg("product created")
	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityProduct,
		EntityID: created.ID,
		Action:   "created",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("New product %s was added", created.Name),
	})
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, actor ports.Actor, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if !actor.Role.CanEditCatalog() {
		return nil, domain.ErrForbidden
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityProduct,
		EntityID: updated.ID,
		Action:   "updated",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("Product %s was updated", updated.Name),
	})
	return updated, nil
}

// Delete removes the product. Orders referencing it are left untouched.
func (s *ProductService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.Role.CanEditCatalog() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.activity, domain.ActivityEvent{
		Entity:   domain.EntityProduct,
		EntityID: id,
		Action:   "deleted",
		ActorID:  actor.ID,
		Summary:  fmt.Sprintf("Product %s was removed", id),
	})
	return nil
}

func validateProduct(p *domain.Product) error {
	switch {
	case p.Name == "":
		return domain.Invalid("Name is required")
	case p.Description == "":
		return domain.Invalid("Description is required")
	case p.Category == "":
		return domain.Invalid("Category is required")
	case p.Price <= 0:
		return domain.Invalid("Price must be greater than 0")
	case p.Stock < 0:
		return domain.Invalid("Stock cannot be negative")
	case !p.Status.Valid():
		return domain.Invalid("Invalid product status")
	}
	return nil
}
