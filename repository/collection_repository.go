package repository

import (
	"context"

	"github.com/akinalp/sitekit/models"
)

// CollectionRepository, sıralanabilir koleksiyonların sıra ve revizyon işlemleri.
//
// Koleksiyonun içeriği (Service, FAQ) kendi repository'sinde tutulur; bu interface
// sadece sıra bilgisiyle çalışır ve her iki koleksiyon için ortaktır.
type CollectionRepository interface {
	// Revision, koleksiyonun güncel revizyonunu döner.
	Revision(ctx context.Context, kind models.CollectionKind) (int64, error)

	// ListOrder, aktif item'ları display_order'a göre sıralı döner.
	ListOrder(ctx context.Context, kind models.CollectionKind) (*models.CollectionOrder, error)

	// Reorder, tam sırayı tek transaction içinde uygular ve yeni revizyonu döner.
	// baseRevision nil değilse ve güncel revizyonla eşleşmiyorsa pkg.ErrConflict döner.
	// Payload aktif item'ların tam bir 1..N permütasyonu değilse pkg.ErrBadRequest döner
	// ve hiçbir satır yazılmaz.
	Reorder(ctx context.Context, kind models.CollectionKind, baseRevision *int64, items []models.OrderUpdate) (int64, error)
}
