package punch

import (
	"encoding/json"
	"sort"
	"time"
)

type Kind string

const (
	KindIn         Kind = "IN"
	KindOut        Kind = "OUT"
	KindBreakStart Kind = "BREAK_START"
	KindBreakEnd   Kind = "BREAK_END"
)

func (k Kind) Valid() bool {
	switch k {
	case KindIn, KindOut, KindBreakStart, KindBreakEnd:
		return true
	}
	return false
}

// opensInterval reports whether k starts a worked interval.
func (k Kind) opensInterval() bool {
	return k == KindIn || k == KindBreakEnd
}

// closesInterval reports whether k ends a worked interval.
func (k Kind) closesInterval() bool {
	return k == KindOut || k == KindBreakStart
}

type Location struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsAuthorized bool    `json:"is_authorized"`
}

// Punch is a single clock event. Only Synced changes after creation.
type Punch struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Kind       Kind
	Synced     bool
	Location   *Location
}

type punchJSON struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Timestamp  int64     `json:"timestamp"`
	Kind       Kind      `json:"type"`
	Synced     bool      `json:"synced"`
	Location   *Location `json:"location,omitempty"`
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (p Punch) MarshalJSON() ([]byte, error) {
	return json.Marshal(punchJSON{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Timestamp:  p.Timestamp.UnixMilli(),
		Kind:       p.Kind,
		Synced:     p.Synced,
		Location:   p.Location,
	})
}

func (p *Punch) UnmarshalJSON(data []byte) error {
	var raw punchJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Punch{
		ID:         raw.ID,
		EmployeeID: raw.EmployeeID,
		Timestamp:  time.UnixMilli(raw.Timestamp),
		Kind:       raw.Kind,
		Synced:     raw.Synced,
		Location:   raw.Location,
	}
	return nil
}

// SortByTime orders punches by ascending timestamp, keeping the relative order
// of equal timestamps.
func SortByTime(punches []Punch) {
	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].Timestamp.Before(punches[j].Timestamp)
	})
}

// Sorted returns an ascending copy of punches.
func Sorted(punches []Punch) []Punch {
	out := make([]Punch, len(punches))
	copy(out, punches)
	SortByTime(out)
	return out
}

// OnDay returns the punches whose timestamp falls in [start, end).
func OnDay(punches []Punch, start, end time.Time) []Punch {
	var out []Punch
	for _, p := range punches {
		if !p.Timestamp.Before(start) && p.Timestamp.Before(end) {
			out = append(out, p)
		}
	}
	return out
}
