package wsmodels

type EventCode string

const (
	EventCandidateCompleted EventCode = "CANDIDATE_COMPLETED"
)

// ServerMessage is a push to a connected dashboard operator.
type ServerMessage struct {
	ToUserID string    `json:"-"`
	Time     string    `json:"time"`
	Code     EventCode `json:"code"`
	Msg      string    `json:"msg"`
}
