package api

import "time"

// Reading физиологическое измерение в ответах сервера
type Reading struct {
	RecordedAt     time.Time `json:"recorded_at"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	ID             int64     `json:"id"`
	HeartRate      float64   `json:"heart_rate"`
	TargetDistance float64   `json:"target_distance"`
}

// AddReadingRequest запрос на добавление измерения.
// Владелец определяется по токену, поле user_id сервер игнорирует.
type AddReadingRequest struct {
	RecordedAt     *time.Time `json:"recorded_at,omitempty"`
	UserID         string     `json:"user_id,omitempty"`
	Status         string     `json:"status"`
	HeartRate      float64    `json:"heart_rate"`
	TargetDistance float64    `json:"target_distance"`
}

// ReadingListResponse страница измерений пользователя
type ReadingListResponse struct {
	Rows  []Reading `json:"rows"`
	Total int64     `json:"total"`
}

// MockReading пример показаний для проверки клиента без устройства
type MockReading struct {
	Status         string  `json:"status"`
	HeartRate      float64 `json:"heart_rate"`
	TargetDistance float64 `json:"target_distance"`
	Timestamp      float64 `json:"timestamp"` // unix секунды
}
