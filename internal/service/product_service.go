package service

import (
	"context"
	"strings"

	"jandervidros/internal/apperror"
	"jandervidros/internal/dto"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

type ProductService interface {
	List(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	Create(ctx context.Context, req dto.ProductRequest) (uint, error)
	Update(ctx context.Context, id uint, req dto.ProductRequest) error
	Delete(ctx context.Context, id uint) error
	ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error)
	Search(ctx context.Context, term string) ([]dto.ProductResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	return mapProducts(s.repo.List(ctx))
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (uint, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return 0, err
	}
	if p.Category == "" {
		p.Category = model.DefaultCategory
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Update replaces every field. Absent optional fields are cleared, not kept.
func (s *productService) Update(ctx context.Context, id uint, req dto.ProductRequest) error {
	p, err := productFromRequest(req)
	if err != nil {
		return err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *productService) ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	return mapProducts(s.repo.FindByCategory(ctx, category))
}

func (s *productService) Search(ctx context.Context, term string) ([]dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.Invalid("term", "is required")
	}
	return mapProducts(s.repo.Search(ctx, term))
}

func (s *productService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	return mapProducts(s.repo.LowStock(ctx))
}

// ── helpers ──────────────────────────────────────────────────────────────────

func productFromRequest(req dto.ProductRequest) (*model.Product, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if req.Quantity == nil {
		return nil, apperror.Invalid("quantity", "is required")
	}
	if err := nonNegativeInt("quantity", *req.Quantity); err != nil {
		return nil, err
	}
	p := &model.Product{
		Name:     name,
		Category: optionalText(req.Category),
		Quantity: *req.Quantity,
	}
	if req.MinStock != nil {
		if err := nonNegativeInt("minStock", *req.MinStock); err != nil {
			return nil, err
		}
		p.MinStock = *req.MinStock
	}
	if p.Price, err = money("price", req.Price); err != nil {
		return nil, err
	}
	return p, nil
}

func mapProducts(list []model.Product, err error) ([]dto.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		out = append(out, toProductResponse(&list[i]))
	}
	return out, nil
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Price:     p.Price,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
