package models

import "time"

// ReadingStatus константы для статуса показаний
const (
	ReadingStatusOK      = "ok"
	ReadingStatusWarning = "warning"
	ReadingStatusAlert   = "alert"
)

// Reading представляет физиологические показания (пульс, дистанция до цели),
// отправленные устройством пользователя.
type Reading struct {
	RecordedAt     time.Time `json:"recorded_at"`     // время снятия показаний на устройстве
	CreatedAt      time.Time `json:"created_at"`      // время сохранения на сервере
	UserID         string    `json:"user_id"`         // владелец записи, берется только из токена
	Status         string    `json:"status"`          // ok / warning / alert
	ID             int64     `json:"id"`              // суррогатный ID
	HeartRate      float64   `json:"heart_rate"`      // удары в минуту
	TargetDistance float64   `json:"target_distance"` // дистанция до цели в метрах
}

