package projections

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/elevatify/elevatify/internal/models"
)

// RecentProjects returns the n most recently created projects userID is
// a member of, newest first. n <= 0 means no limit.
func (v *Projections) RecentProjects(ctx context.Context, userID string, n int) ([]models.Project, error) {
	all, err := v.projects.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recent projects: %w", err)
	}
	mine := make([]models.Project, 0, len(all))
	for i := range all {
		if all[i].IsMember(userID) {
			mine = append(mine, all[i])
		}
	}
	sortNewestFirst(mine)
	if n > 0 && len(mine) > n {
		mine = mine[:n]
	}
	return mine, nil
}

// SearchProjects filters the collection by a case-insensitive substring
// match over title and description, with optional exact category and
// status filters. Empty arguments mean no filter. Results come back
// newest first.
func (v *Projections) SearchProjects(ctx context.Context, query, category string, status models.ProjectStatus) ([]models.Project, error) {
	all, err := v.projects.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Project, 0, len(all))
	for i := range all {
		p := &all[i]
		if category != "" && p.Category != category {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, *p)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ps []models.Project) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt > ps[j].CreatedAt
	})
}
