package foodpost

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusAccepted  Status = "accepted"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// transitions lists every directed edge of the post state machine.
// Terminal statuses have no outgoing edges.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusReserved, StatusExpired, StatusCancelled},
	StatusReserved:  {StatusAccepted, StatusAvailable, StatusExpired, StatusCancelled},
}

func AllStatuses() []Status {
	return []Status{StatusAvailable, StatusReserved, StatusAccepted, StatusExpired, StatusCancelled}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusAccepted, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
