package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
)

const defaultListLimit = 50

// DocumentRegistryUseCase manages the citation metadata registry.
type DocumentRegistryUseCase struct {
	repo ports.DocumentRepository
}

func NewDocumentRegistryUseCase(repo ports.DocumentRepository) *DocumentRegistryUseCase {
	return &DocumentRegistryUseCase{repo: repo}
}

func (uc *DocumentRegistryUseCase) Register(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.WrapError(domain.ErrInvalidInput, "register document", fmt.Errorf("document is required"))
	}
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Title == "" {
		return domain.WrapError(domain.ErrInvalidInput, "register document", fmt.Errorf("title is required"))
	}
	if !domain.IsValidVertical(doc.Vertical) {
		return domain.WrapError(domain.ErrInvalidInput, "register document", fmt.Errorf("unknown vertical %q", doc.Vertical))
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := uc.repo.Create(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (uc *DocumentRegistryUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "get document", fmt.Errorf("id is required"))
	}
	return uc.repo.GetByID(ctx, id)
}

func (uc *DocumentRegistryUseCase) List(ctx context.Context, vertical domain.Vertical, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if vertical != "" && !domain.IsValidVertical(vertical) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list documents", fmt.Errorf("unknown vertical %q", vertical))
	}
	return uc.repo.List(ctx, vertical, limit)
}
