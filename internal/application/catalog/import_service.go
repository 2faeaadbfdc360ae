package catalog

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImportService handles supplier price-list uploads
type ImportService struct {
	userRepo identity.UserRepository
	writer   catalog.CatalogWriter
	logger   *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(userRepo identity.UserRepository, writer catalog.CatalogWriter, logger *zap.Logger) *ImportService {
	return &ImportService{
		userRepo: userRepo,
		writer:   writer,
		logger:   logger,
	}
}

// ImportPriceList parses, validates and atomically applies a price-list
// upload for the calling supplier. Only shop-type accounts may import;
// a malformed document is rejected before any write happens.
func (s *ImportService) ImportPriceList(ctx context.Context, userID uuid.UUID, r io.Reader) (*ImportResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsShop() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts can upload price lists")
	}

	doc, err := catalog.ParsePriceList(r)
	if err != nil {
		return nil, err
	}

	stats, err := s.writer.ReplaceShopCatalog(ctx, userID, doc)
	if err != nil {
		s.logger.Warn("price list import failed",
			zap.String("user_id", userID.String()),
			zap.String("shop", doc.Shop),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("price list imported",
		zap.String("shop", doc.Shop),
		zap.Int("categories", stats.Categories),
		zap.Int("products", stats.Products),
		zap.Int("parameters", stats.Parameters),
	)

	return &ImportResult{
		Shop:       doc.Shop,
		Categories: stats.Categories,
		Products:   stats.Products,
		Parameters: stats.Parameters,
	}, nil
}
