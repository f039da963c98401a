// Package models defines the plain records held in the shared entity
// store. All of them serialize to JSON; collections are rewritten whole
// on every mutation.
package models

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusOpen       ProjectStatus = "open"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether a project in this status counts toward a user's
// active-project total.
func (s ProjectStatus) Active() bool {
	return s == StatusOpen || s == StatusInProgress
}

// Project is a collaboration project. The owner is always the first
// member; Members and PendingRequests are disjoint at all times. TeamSize
// is the declared target headcount, which can diverge from len(Members).
type Project struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	TeamSize        int           `json:"teamSize"`
	Timeframe       string        `json:"timeframe"`
	Status          ProjectStatus `json:"status"`
	OwnerID         string        `json:"ownerId"`
	Members         []string      `json:"members"`
	PendingRequests []string      `json:"pendingRequests"`
	CreatedAt       int64         `json:"createdAt"` // unix milliseconds
}

// IsMember reports whether userID is a member of the project.
func (p *Project) IsMember(userID string) bool {
	return contains(p.Members, userID)
}

// IsPending reports whether userID has an outstanding join request.
func (p *Project) IsPending(userID string) bool {
	return contains(p.PendingRequests, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
