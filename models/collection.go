package models

import (
	"fmt"
	"time"
)

// CollectionKind, sıralanabilir bir koleksiyonun adı.
// Go'da enum yerine typed constant kullanılır.
type CollectionKind string

const (
	CollectionServices CollectionKind = "services"
	CollectionFAQs     CollectionKind = "faqs"
)

// CollectionKinds, desteklenen tüm koleksiyonlar.
var CollectionKinds = []CollectionKind{CollectionServices, CollectionFAQs}

// ParseCollectionKind, URL path'inden gelen değeri doğrular.
func ParseCollectionKind(s string) (CollectionKind, error) {
	for _, k := range CollectionKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

// OrderUpdate, tek bir item'ın yeni sıra değeri.
// Batch reorder API'de kullanılır — her item bir entity'nin yeni display_order değerini taşır.
type OrderUpdate struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

// ReorderRequest, koleksiyon sıralama güncelleme isteği.
//
// Items tam sırayı taşır (delta değil). Revision, istemcinin bildiği son
// koleksiyon revizyonudur — verilirse sunucu daha eski revizyonlu isteği 409 ile reddeder.
type ReorderRequest struct {
	Items    []OrderUpdate `json:"items"`
	Revision *int64        `json:"revision,omitempty"`
}

// Validate, isteğin yapısal olarak geçerli olup olmadığını kontrol eder:
// item'lar boş olmamalı, ID'ler benzersiz olmalı ve display_order değerleri
// yoğun bir 1..N permütasyonu oluşturmalı.
//
// ID'lerin gerçekten koleksiyona ait olduğu repository katmanında,
// transaction içinde kontrol edilir.
func (r *ReorderRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("items cannot be empty")
	}
	if r.Revision != nil && *r.Revision < 0 {
		return fmt.Errorf("revision cannot be negative")
	}

	n := len(r.Items)
	seenIDs := make(map[string]bool, n)
	seenPos := make([]bool, n+1)
	for _, item := range r.Items {
		if item.ID == "" {
			return fmt.Errorf("item id cannot be empty")
		}
		if seenIDs[item.ID] {
			return fmt.Errorf("duplicate item id: %s", item.ID)
		}
		seenIDs[item.ID] = true

		if item.DisplayOrder < 1 || item.DisplayOrder > n {
			return fmt.Errorf("display_order %d out of range 1..%d", item.DisplayOrder, n)
		}
		if seenPos[item.DisplayOrder] {
			return fmt.Errorf("duplicate display_order: %d", item.DisplayOrder)
		}
		seenPos[item.DisplayOrder] = true
	}

	return nil
}

// CollectionView, bir koleksiyonun revizyonu ile birlikte sıralı item listesi.
// GET /api/{collection} ve reorder yanıtlarında kullanılır.
type CollectionView[T any] struct {
	Collection CollectionKind `json:"collection"`
	Revision   int64          `json:"revision"`
	Items      []T            `json:"items"`
}

// CollectionOrder, sadece sıra bilgisini taşıyan görünüm.
// Reorder istemcisi tam Service/FAQ nesnelerini bu tipe decode eder (fazla alanlar yok sayılır).
type CollectionOrder = CollectionView[OrderUpdate]

// CollectionEvent, koleksiyon değişikliklerinde WS üzerinden yayınlanan payload.
// Reset true ise istemciler uçuştaki gesture'ı iptal edip koleksiyonu yeniden yüklemelidir.
type CollectionEvent struct {
	Collection CollectionKind `json:"collection"`
	Revision   int64          `json:"revision"`
	Reset      bool           `json:"reset"`
	At         time.Time      `json:"at"`
}
