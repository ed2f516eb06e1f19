package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudentsUpdatedEvent struct {
	Type      string `json:"type"`
	StudentID string `json:"student_id"`
	Timestamp string `json:"timestamp"`
}

// NotifyStudentsUpdated tells every dashboard to refetch its student list.
func (h *Hub) NotifyStudentsUpdated(studentID uuid.UUID) {
	if h == nil {
		return
	}

	evt := StudentsUpdatedEvent{
		Type:      "students_updated",
		StudentID: studentID.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("ws event encode failed", zap.Error(err))
		return
	}

	h.Broadcast(b)
}
