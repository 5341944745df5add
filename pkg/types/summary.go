package types

import "encoding/json"

type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (p PriorityCounts) Total() int {
	return p.High + p.Medium + p.Low
}

type StatusCounts struct {
	Active       int `json:"active"`
	Acknowledged int `json:"acknowledged"`
	Resolved     int `json:"resolved"`
	Dismissed    int `json:"dismissed"`
}

// Summary aggregates a query result. Status counts are optional and may be
// sent either as top level fields or nested under "status".
type Summary struct {
	ByPriority PriorityCounts `json:"byPriority"`
	ByType     map[string]int `json:"byType,omitempty"`
	Status     *StatusCounts  `json:"status,omitempty"`
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	var raw struct {
		ByPriority   PriorityCounts `json:"byPriority"`
		ByType       map[string]int `json:"byType"`
		Status       *StatusCounts  `json:"status"`
		Active       *int           `json:"active"`
		Acknowledged *int           `json:"acknowledged"`
		Resolved     *int           `json:"resolved"`
		Dismissed    *int           `json:"dismissed"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	s.ByPriority = raw.ByPriority
	s.ByType = raw.ByType
	s.Status = raw.Status

	if s.Status == nil && (raw.Active != nil || raw.Acknowledged != nil || raw.Resolved != nil || raw.Dismissed != nil) {
		deref := func(i *int) int {
			if i == nil {
				return 0
			}
			return *i
		}
		s.Status = &StatusCounts{
			Active:       deref(raw.Active),
			Acknowledged: deref(raw.Acknowledged),
			Resolved:     deref(raw.Resolved),
			Dismissed:    deref(raw.Dismissed),
		}
	}

	return nil
}

// CountStatuses counts the statuses of the given alerts. It is used when the
// remote summary carries no status counts.
func CountStatuses(alerts []Alert) StatusCounts {
	c := StatusCounts{}
	for _, a := range alerts {
		switch a.CurrentStatus() {
		case StatusActive:
			c.Active++
		case StatusAcknowledged:
			c.Acknowledged++
		case StatusResolved:
			c.Resolved++
		case StatusDismissed:
			c.Dismissed++
		}
	}
	return c
}
