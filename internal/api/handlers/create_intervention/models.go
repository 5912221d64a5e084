package create_intervention

import (
	"time"

	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
)

// CreateInterventionRequest HTTP request model
// Либо slotId, либо пара technicianId + scheduledAt
type CreateInterventionRequest struct {
	ClaimID      *int64     `json:"claimId,omitempty"`
	SlotID       *int64     `json:"slotId,omitempty"`
	TechnicianID *int64     `json:"technicianId,omitempty"`
	ScheduledAt  *time.Time `json:"scheduledAt,omitempty"` // RFC 3339
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateInterventionRequest) ToServiceRequest() *models.CreateInterventionRequest {
	return &models.CreateInterventionRequest{
		ClaimID:      r.ClaimID,
		TechnicianID: r.TechnicianID,
		SlotID:       r.SlotID,
		ScheduledAt:  r.ScheduledAt,
	}
}
