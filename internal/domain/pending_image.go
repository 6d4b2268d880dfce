package domain

import "time"

// PendingImage — ключ объекта, загруженного в хранилище, но ещё не закреплённого за записью продукта.
type PendingImage struct {
	ObjectKey string
	CreatedAt time.Time
}
