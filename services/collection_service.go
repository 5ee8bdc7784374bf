// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/reorder"
	"github.com/akinalp/sitekit/repository"
)

// CollectionService, sıralanabilir koleksiyonların okuma ve sıralama işlemleri.
type CollectionService interface {
	ListServices(ctx context.Context) (*models.CollectionView[models.Service], error)
	ListFAQs(ctx context.Context, query models.FAQQuery) (*models.CollectionView[models.FAQ], error)

	// Reorder, tam sırayı kalıcı hale getirir ve yeni revizyonla sırayı döner.
	Reorder(ctx context.Context, kind models.CollectionKind, req *models.ReorderRequest) (*models.CollectionOrder, error)

	// Revisions, tüm koleksiyonların güncel revizyonları (WS ready event'i).
	Revisions(ctx context.Context) (map[string]int64, error)

	// Settings, admin panelindeki sürükle-bırak editörünün ayarları.
	Settings() ReorderSettings
}

// ReorderSettings, sürükle-bırak editörünün geometri ve policy ayarları.
type ReorderSettings struct {
	RowTolerance       float64           `json:"row_tolerance"`
	ProximityThreshold float64           `json:"proximity_threshold"`
	Policies           map[string]string `json:"policies"`
}

// NewReorderSettings, config değerlerinden ayarları kurar. Policy adı boşsa
// koleksiyonun varsayılan policy'si kullanılır; bilinmeyen ad hata döner.
func NewReorderSettings(rowTolerance, proximity float64, servicesPolicy, faqsPolicy string) (ReorderSettings, error) {
	resolver := reorder.NewResolver(rowTolerance, proximity)
	settings := ReorderSettings{
		RowTolerance:       resolver.RowTolerance,
		ProximityThreshold: resolver.ProximityThreshold,
		Policies:           make(map[string]string, 2),
	}

	overrides := map[models.CollectionKind]string{
		models.CollectionServices: servicesPolicy,
		models.CollectionFAQs:     faqsPolicy,
	}
	for _, kind := range models.CollectionKinds {
		policy := reorder.DefaultPolicy(kind)
		if name := overrides[kind]; name != "" {
			p, err := reorder.ParsePolicy(name)
			if err != nil {
				return ReorderSettings{}, fmt.Errorf("invalid reorder policy for %s: %w", kind, err)
			}
			policy = p
		}
		settings.Policies[string(kind)] = policy.Name()
	}
	return settings, nil
}

type collectionService struct {
	collections repository.CollectionRepository
	serviceRepo repository.ServiceRepository
	faqRepo     repository.FAQRepository
	guard       *CollectionGuard
	settings    ReorderSettings
	logger      *zap.Logger
}

// NewCollectionService, constructor.
func NewCollectionService(
	collections repository.CollectionRepository,
	serviceRepo repository.ServiceRepository,
	faqRepo repository.FAQRepository,
	guard *CollectionGuard,
	settings ReorderSettings,
	logger *zap.Logger,
) CollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &collectionService{
		collections: collections,
		serviceRepo: serviceRepo,
		faqRepo:     faqRepo,
		guard:       guard,
		settings:    settings,
		logger:      logger.Named("collection"),
	}
}

func (s *collectionService) ListServices(ctx context.Context) (*models.CollectionView[models.Service], error) {
	return cachedRead(ctx, s.guard, models.CollectionServices, cacheKey(models.CollectionServices), func(ctx context.Context) (*models.CollectionView[models.Service], error) {
		return s.serviceRepo.ListActive(ctx)
	})
}

func (s *collectionService) ListFAQs(ctx context.Context, query models.FAQQuery) (*models.CollectionView[models.FAQ], error) {
	if query.Limit < 0 || query.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset cannot be negative", pkg.ErrBadRequest)
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	key := cacheKey(models.CollectionFAQs, query.Search, strconv.Itoa(query.Limit), strconv.Itoa(query.Offset))
	return cachedRead(ctx, s.guard, models.CollectionFAQs, key, func(ctx context.Context) (*models.CollectionView[models.FAQ], error) {
		return s.faqRepo.List(ctx, query)
	})
}

// Reorder, sıralama isteğini uygular.
//
// Akış:
// 1. Yapısal doğrulama (boş değil, benzersiz ID, yoğun 1..N)
// 2. Koleksiyon kilidi altında repository transaction'ı (revizyon CAS + üyelik kontrolü)
// 3. Cache invalidation + collection_reorder broadcast
// 4. Güncel sıra ve revizyon döner
func (s *collectionService) Reorder(ctx context.Context, kind models.CollectionKind, req *models.ReorderRequest) (*models.CollectionOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	revision, err := s.guard.Mutate(ctx, kind, false, func(ctx context.Context) (int64, error) {
		return s.collections.Reorder(ctx, kind, req.Revision, req.Items)
	})
	if err != nil {
		return nil, err
	}

	view, err := s.collections.ListOrder(ctx, kind)
	if err != nil {
		return nil, err
	}

	// Arada başka bir yazma olduysa bile bu isteğin oluşturduğu revizyon raporlanır
	// ki istemci bir sonraki isteğini doğru tabana dayandırsın; daha yeni bir
	// yazma varsa sonraki istek 409 alır ve istemci yeniden yükler.
	view.Revision = revision
	return view, nil
}

func (s *collectionService) Revisions(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.CollectionKinds))
	for _, kind := range models.CollectionKinds {
		rev, err := s.collections.Revision(ctx, kind)
		if err != nil {
			return nil, err
		}
		out[string(kind)] = rev
	}
	return out, nil
}

func (s *collectionService) Settings() ReorderSettings {
	return s.settings
}
