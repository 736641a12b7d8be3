package storage

import (
	"context"
	"io"
)

// UploadResult описывает сохранённый объект: ключ в бакете, публичный
// адрес и ETag, если хранилище его вернуло.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader абстрагирует объектное хранилище клуба. Единственный
// потребитель сейчас - логотипы видов спорта (ключи sports/<id>/logo_*),
// которые сервис загружает, заменяет и публикует по URL.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
