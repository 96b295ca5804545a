package coordinator

import (
	"context"
	"time"

	"github.com/thenoetrevino/scope/internal/idgen"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/transfer"
	"github.com/thenoetrevino/scope/internal/types"
)

// Info describes the local data set and the current mode.
type Info struct {
	Counts        store.Counts `json:"counts"`
	LastModified  time.Time    `json:"lastModified"`
	RemoteEnabled bool         `json:"remoteEnabled"`
	RemoteURL     string       `json:"remoteUrl,omitempty"`
}

// Info reports entity counts and cache state.
func (c *Coordinator) Info(ctx context.Context) (Info, error) {
	info := Info{
		Counts:        c.store.View().Counts(),
		RemoteEnabled: c.RemoteEnabled(),
	}
	if u, ok := c.remote.(interface{ BaseURL() string }); ok {
		info.RemoteURL = u.BaseURL()
	}
	if c.cache != nil {
		lm, err := c.cache.LastModified(ctx)
		if err != nil {
			return Info{}, err
		}
		info.LastModified = lm
	}
	return info, nil
}

// Refresh replaces the local copy of every project with the remote one.
// In local mode it does nothing.
func (c *Coordinator) Refresh(ctx context.Context) error {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if !c.RemoteEnabled() {
			return nil
		}
		if err := c.refreshProject(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// RefreshProject replaces the local copy of one project with the remote one.
func (c *Coordinator) RefreshProject(ctx context.Context, projectID types.ProjectID) error {
	if err := requireProject(projectID); err != nil {
		return err
	}
	return c.refreshProject(ctx, projectID)
}

// Export returns the whole data set as an export document.
func (c *Coordinator) Export(ctx context.Context) ([]byte, error) {
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return transfer.Export(c.store.Snapshot(), c.now())
}

// ExportFileName returns the suggested file name for an export made now.
func (c *Coordinator) ExportFileName() string {
	return transfer.FileName(c.now())
}

// Import validates an export document and replaces the local data set with
// it. The remote store is not modified.
func (c *Coordinator) Import(ctx context.Context, data []byte) (transfer.Meta, error) {
	snap, meta, err := transfer.Import(data)
	if err != nil {
		return transfer.Meta{}, err
	}
	err = c.store.Write(func(tx *store.Tx) error {
		tx.ReplaceAll(snap)
		if c.cache == nil {
			return nil
		}
		_, err := c.cache.Save(context.WithoutCancel(ctx), tx.Snapshot())
		return err
	})
	if err != nil {
		return transfer.Meta{}, err
	}
	c.logger.Info("data imported", "version", meta.Version, "projects", len(snap.Projects))
	return meta, nil
}

// ClearAll empties the store and the local cache.
func (c *Coordinator) ClearAll(ctx context.Context) error {
	if c.cache != nil {
		if err := c.cache.Clear(ctx); err != nil {
			return err
		}
	}
	c.store.Clear()
	return nil
}

// NextID reserves an identifier for prefix. Sprint and custom column IDs
// are scoped to projectID.
func (c *Coordinator) NextID(ctx context.Context, prefix string, projectID types.ProjectID) (string, error) {
	v := c.store.View()
	var existing []string
	scope := types.GlobalScope
	switch prefix {
	case types.ProjectPrefix:
		existing = v.ProjectIDs()
	case types.TaskPrefix:
		existing = v.TaskIDs()
	case types.RiskPrefix:
		existing = v.RiskIDs()
	case types.MinutesPrefix:
		existing = v.MinutesIDs()
	case types.SprintPrefix:
		existing = v.SprintIDs(projectID)
		scope = string(projectID)
	default:
		existing = v.ColumnIDs(projectID)
		scope = string(projectID)
	}
	id, err := c.allocate(ctx, prefix, scope, existing)
	if err != nil || id != "" {
		return id, err
	}
	return idgen.Next(prefix, existing)
}
