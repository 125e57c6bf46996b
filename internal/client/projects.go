package client

import (
	"context"
	"fmt"
)

// ListProjects returns all projects, optionally filtered by exact name
// or id. Filtering happens client-side; the API has no query
// parameters for it.
func (c *Client) ListProjects(ctx context.Context, name, id string) ([]Project, error) {
	data, err := c.get(ctx, "/api/v2/projects")
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err := unmarshal(data, &projects); err != nil {
		return nil, err
	}

	filtered := projects[:0]
	for _, p := range projects {
		if name != "" && p.Name() != name {
			continue
		}
		if id != "" && p.ID() != id {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// resolveProjectID turns the selector's project reference into an id,
// looking the project up by name when needed.
func (c *Client) resolveProjectID(ctx context.Context, sel JobSelector) (string, error) {
	if sel.ProjectID != "" {
		return sel.ProjectID, nil
	}
	projects, err := c.ListProjects(ctx, sel.ProjectName, "")
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", fmt.Errorf("project %q not found", sel.ProjectName)
	}
	return projects[0].ID(), nil
}
