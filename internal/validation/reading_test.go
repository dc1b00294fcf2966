package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/carewatch/internal/models"
)

func TestValidateReading(t *testing.T) {
	tests := []struct {
		reading *models.Reading
		name    string
		wantErr bool
	}{
		{
			name:    "valid reading",
			reading: &models.Reading{HeartRate: 72, TargetDistance: 1.5, Status: models.ReadingStatusOK},
		},
		{
			name:    "zero values",
			reading: &models.Reading{},
		},
		{
			name:    "negative heart rate",
			reading: &models.Reading{HeartRate: -1},
			wantErr: true,
		},
		{
			name:    "heart rate out of range",
			reading: &models.Reading{HeartRate: 400},
			wantErr: true,
		},
		{
			name:    "distance out of range",
			reading: &models.Reading{TargetDistance: 120},
			wantErr: true,
		},
		{
			name:    "unknown status",
			reading: &models.Reading{HeartRate: 70, Status: "dead"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReading(tt.reading)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
