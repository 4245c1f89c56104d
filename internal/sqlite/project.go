package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite. The
// aggregate is serialized as one JSON document per row.
type ProjectRepository struct {
	db *DB
}

var _ project.Repository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	query := `
		INSERT INTO projects (id, team_id, title, stage, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.TeamID,
		proj.Title,
		string(proj.Stage),
		string(data),
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT data FROM projects WHERE id = ?`

	var data string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var proj project.Project
	if err := json.Unmarshal([]byte(data), &proj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	return &proj, nil
}

// Update replaces the stored aggregate
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	query := `
		UPDATE projects
		SET team_id = ?, title = ?, stage = ?, data = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.TeamID,
		proj.Title,
		string(proj.Stage),
		string(data),
		proj.UpdatedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns summaries of all projects, oldest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `SELECT data FROM projects ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		var proj project.Project
		if err := json.Unmarshal([]byte(data), &proj); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		summaries = append(summaries, project.Summary{
			ID:           proj.ID,
			TeamID:       proj.TeamID,
			Title:        proj.Title,
			Stage:        proj.Stage,
			ConceptCount: len(proj.Concepts),
			CreatedAt:    proj.CreatedAt,
			UpdatedAt:    proj.UpdatedAt,
		})
	}

	return summaries, rows.Err()
}

// ListByTeam returns a team's projects, oldest first
func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]*project.Project, error) {
	query := `SELECT data FROM projects WHERE team_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		var proj project.Project
		if err := json.Unmarshal([]byte(data), &proj); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, &proj)
	}

	return projects, rows.Err()
}
