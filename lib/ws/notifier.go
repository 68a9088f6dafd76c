package ws

import (
	"fmt"
	"time"

	connectionhub "sap-talent-backend/lib/ws/hub/connection-hub"
	wsmodels "sap-talent-backend/models/ws"
)

// Notifier translates assessment lifecycle events into dashboard pushes.
type Notifier struct{}

func (Notifier) CandidateCompleted(candidateID, candidateName string, score float64) {
	if connectionhub.Instance == nil {
		return
	}
	connectionhub.Instance.Broadcast(wsmodels.ServerMessage{
		Time: time.Now().Format("02.01.2006 15:04:05"),
		Code: wsmodels.EventCandidateCompleted,
		Msg:  fmt.Sprintf("%s finished the assessment with score %.1f of 50 (id: %s)", candidateName, score, candidateID),
	})
}
