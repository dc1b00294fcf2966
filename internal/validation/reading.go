package validation

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/iudanet/carewatch/internal/models"
)

const (
	// MaxHeartRate верхняя граница пульса, выше считаем ошибкой датчика
	MaxHeartRate = 300.0
	// MaxTargetDistance дальность радара в метрах
	MaxTargetDistance = 50.0
)

// ValidateReading проверяет диапазоны показаний с устройства
func ValidateReading(r *models.Reading) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.HeartRate, validation.Min(0.0), validation.Max(MaxHeartRate)),
		validation.Field(&r.TargetDistance, validation.Min(0.0), validation.Max(MaxTargetDistance)),
		validation.Field(&r.Status, validation.In(
			models.ReadingStatusOK,
			models.ReadingStatusWarning,
			models.ReadingStatusAlert,
		)),
	)
}
