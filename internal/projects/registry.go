// Package projects tracks the pipelines created in this process. Each
// project owns one coordinator; the registry holds them in memory and can
// export a project's snapshot to the file store for inspection.
package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"autostream/internal/domain"
	"autostream/internal/gateway"
	"autostream/internal/pipeline"
)

// Info is the listing entry for one project.
type Info struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	CurrentStage domain.Stage `json:"current_stage"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// StateWriter persists exported project state.
type StateWriter interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	URLFor(key string) string
}

// Registry owns the coordinators of all projects created in this process.
// The most recently created project is the active one.
type Registry struct {
	svc   gateway.Service
	log   zerolog.Logger
	state StateWriter

	mu       sync.Mutex
	projects map[string]*pipeline.Coordinator
	order    []string
	active   string
}

// NewRegistry builds an empty registry. state may be nil when export is not
// configured.
func NewRegistry(svc gateway.Service, state StateWriter, log zerolog.Logger) *Registry {
	return &Registry{
		svc:      svc,
		log:      log.With().Str("component", "projects").Logger(),
		state:    state,
		projects: map[string]*pipeline.Coordinator{},
	}
}

// Create starts a new project pipeline and makes it active.
func (r *Registry) Create(name string) *pipeline.Coordinator {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Project"
	}
	id := uuid.NewString()[:8]

	r.mu.Lock()
	defer r.mu.Unlock()
	c := pipeline.New(id, name, r.svc, r.log)
	r.projects[id] = c
	r.order = append(r.order, id)
	r.active = id
	r.log.Info().Str("project_id", id).Str("name", name).Msg("project created")
	return c
}

// Active returns the currently active project's coordinator.
func (r *Registry) Active() (*pipeline.Coordinator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == "" {
		return nil, domain.Validationf("no active project")
	}
	return r.projects[r.active], nil
}

// Get returns the coordinator for the given project ID.
func (r *Registry) Get(id string) (*pipeline.Coordinator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// List returns every project, newest first.
func (r *Registry) List() []Info {
	r.mu.Lock()
	coordinators := make([]*pipeline.Coordinator, 0, len(r.order))
	for _, id := range r.order {
		coordinators = append(coordinators, r.projects[id])
	}
	r.mu.Unlock()

	infos := make([]Info, 0, len(coordinators))
	for _, c := range coordinators {
		snap := c.Snapshot()
		infos = append(infos, Info{
			ID:           snap.ProjectID,
			Name:         snap.ProjectName,
			CurrentStage: snap.Stage,
			CreatedAt:    snap.CreatedAt,
			UpdatedAt:    snap.UpdatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	return infos
}

// Export writes the project's current snapshot as JSON to the state writer
// and returns its retrieval URL.
func (r *Registry) Export(ctx context.Context, id string) (string, error) {
	c, err := r.Get(id)
	if err != nil {
		return "", err
	}
	if r.state == nil {
		return "", domain.Validationf("state export is not configured")
	}
	snap := c.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("projects: encode state: %w", err)
	}
	key, err := r.state.Write(ctx, "projects/"+id+"/state.json", data)
	if err != nil {
		return "", fmt.Errorf("projects: write state: %w", err)
	}
	return r.state.URLFor(key), nil
}
