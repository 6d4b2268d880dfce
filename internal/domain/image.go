package domain

import (
	"path"
	"strings"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/google/uuid"
)

const (
	// MaxImageSize задаёт верхнюю границу размера загружаемого изображения (1 GiB).
	MaxImageSize int64 = 1 << 30

	imageContentTypePrefix = "image/"
	objectKeySeparator     = "_"
	defaultImageName       = "image"
)

var objectNameReplacer = strings.NewReplacer(" ", "_", "(", "", ")", "")

// Image описывает изображение, которое хранится в S3
type Image struct {
	ObjectKey    string
	Data         []byte
	Size         int64
	ContentType  string
	OriginalName string
}

// NewImageFromUpload проверяет загруженный файл и строит для него уникальный ключ объекта.
// Отклоняет файлы, чей Content-Type не начинается с "image/", и файлы больше MaxImageSize.
func NewImageFromUpload(data []byte, contentType string, size int64, originalName string) (*Image, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return nil, err
	}

	return &Image{
		ObjectKey:    NewObjectKey(originalName),
		Data:         data,
		Size:         size,
		ContentType:  contentType,
		OriginalName: originalName,
	}, nil
}

func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), imageContentTypePrefix) {
		return e.ErrInvalidImageType
	}

	if size > MaxImageSize {
		return e.ErrImageTooLarge
	}

	return nil
}

// NewObjectKey возвращает ключ вида "<uuid>_<имя файла>". Каталоги из имени отбрасываются,
// пробелы заменяются на "_", скобки удаляются.
func NewObjectKey(originalName string) string {
	return uuid.NewString() + objectKeySeparator + SanitizeObjectName(originalName)
}

func SanitizeObjectName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		base = ""
	}

	base = objectNameReplacer.Replace(base)
	if base == "" {
		return defaultImageName
	}

	return base
}
