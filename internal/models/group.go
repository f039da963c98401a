package models

// Group is a derived view of a project acting as a chat group. It is
// never stored: the id is the project id and the membership is exactly
// the project's members at read time.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupFromProject derives the group view of p.
func GroupFromProject(p *Project) *Group {
	return &Group{ID: p.ID, Name: p.Title, Members: p.Members}
}
