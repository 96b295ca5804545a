package coordinator

import (
	"context"
	"strconv"
	"sync"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/models"
	"github.com/thenoetrevino/scope/internal/relations"
	"github.com/thenoetrevino/scope/internal/store"
	"github.com/thenoetrevino/scope/internal/types"
)

// fakeRemote is an in-process authoritative store. Every method records its
// name; failAll or fail[op] injects errors.
type fakeRemote struct {
	mu      sync.Mutex
	st      *store.Store
	calls   []string
	failAll error
	fail    map[string]error
	seq     map[string]int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		st:   store.New(),
		fail: map[string]error{},
		seq:  map[string]int{},
	}
}

func (f *fakeRemote) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if f.failAll != nil {
		return f.failAll
	}
	return f.fail[op]
}

func (f *fakeRemote) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeRemote) setFailAll(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = err
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRemote) called(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func duplicate(id string) error {
	return apperr.Newf(apperr.KindDuplicateKey, "%s already exists", id)
}

// ============================================================================
// SESSION / IDS
// ============================================================================

func (f *fakeRemote) Health(context.Context) error { return f.hit("Health") }

func (f *fakeRemote) NextID(_ context.Context, prefix, scope string) (string, error) {
	if err := f.hit("NextID"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := prefix + "|" + scope
	f.seq[key]++
	return prefix + strconv.Itoa(f.seq[key]), nil
}

func (f *fakeRemote) FetchScope(_ context.Context, id types.ProjectID) (store.Scope, error) {
	if err := f.hit("FetchScope"); err != nil {
		return store.Scope{}, err
	}
	sc, ok := f.st.View().ProjectScope(id)
	if !ok {
		return store.Scope{}, apperr.NotFound("project", string(id))
	}
	return sc, nil
}

// ============================================================================
// PROJECTS
// ============================================================================

func (f *fakeRemote) ListProjects(context.Context) ([]models.Project, error) {
	if err := f.hit("ListProjects"); err != nil {
		return nil, err
	}
	return f.st.View().Projects(), nil
}

func (f *fakeRemote) GetProject(_ context.Context, id types.ProjectID) (models.Project, error) {
	if err := f.hit("GetProject"); err != nil {
		return models.Project{}, err
	}
	p, ok := f.st.View().Project(id)
	if !ok {
		return models.Project{}, apperr.NotFound("project", string(id))
	}
	return p, nil
}

func (f *fakeRemote) CreateProject(_ context.Context, p models.Project) error {
	if err := f.hit("CreateProject"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Project(p.ID); ok {
			return duplicate(string(p.ID))
		}
		tx.PutProject(p)
		for _, c := range models.DefaultColumns(p.ID) {
			tx.PutColumn(c)
		}
		return nil
	})
}

func (f *fakeRemote) UpdateProject(_ context.Context, p models.Project) error {
	if err := f.hit("UpdateProject"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.PutProject(p)
		return nil
	})
}

func (f *fakeRemote) DeleteProject(_ context.Context, id types.ProjectID) error {
	if err := f.hit("DeleteProject"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Project(id); !ok {
			return apperr.NotFound("project", string(id))
		}
		tx.DeleteProject(id)
		return nil
	})
}

// ============================================================================
// TASKS
// ============================================================================

func (f *fakeRemote) GetTask(_ context.Context, id types.TaskID) (models.Task, error) {
	if err := f.hit("GetTask"); err != nil {
		return models.Task{}, err
	}
	t, ok := f.st.View().Task(id)
	if !ok {
		return models.Task{}, apperr.NotFound("task", string(id))
	}
	return t, nil
}

func (f *fakeRemote) CreateTask(_ context.Context, t models.Task) error {
	if err := f.hit("CreateTask"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Task(t.ID); ok {
			return duplicate(string(t.ID))
		}
		tx.PutTask(t)
		return nil
	})
}

func (f *fakeRemote) UpdateTask(_ context.Context, t models.Task) error {
	if err := f.hit("UpdateTask"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.PutTask(t)
		return nil
	})
}

func (f *fakeRemote) DeleteTask(_ context.Context, id types.TaskID) error {
	if err := f.hit("DeleteTask"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.DeleteTask(id)
		return nil
	})
}

// ============================================================================
// SPRINTS
// ============================================================================

func (f *fakeRemote) GetSprint(_ context.Context, pid types.ProjectID, id types.SprintID) (store.SprintRecord, error) {
	if err := f.hit("GetSprint"); err != nil {
		return store.SprintRecord{}, err
	}
	v := f.st.View()
	s, ok := v.Sprint(pid, id)
	if !ok {
		return store.SprintRecord{}, apperr.NotFound("sprint", string(id))
	}
	return store.SprintRecord{Sprint: s, TaskIDs: v.Members(pid, id)}, nil
}

func (f *fakeRemote) CreateSprint(_ context.Context, rec store.SprintRecord) error {
	if err := f.hit("CreateSprint"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Sprint(rec.ProjectID, rec.ID); ok {
			return duplicate(string(rec.ID))
		}
		tx.PutSprint(rec.Sprint)
		return relations.SetMembers(tx, rec.ProjectID, rec.ID, rec.TaskIDs)
	})
}

func (f *fakeRemote) UpdateSprint(_ context.Context, s models.Sprint) error {
	if err := f.hit("UpdateSprint"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.PutSprint(s)
		return nil
	})
}

func (f *fakeRemote) DeleteSprint(_ context.Context, pid types.ProjectID, id types.SprintID) error {
	if err := f.hit("DeleteSprint"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.DeleteSprint(pid, id)
		return nil
	})
}

func (f *fakeRemote) AttachTask(_ context.Context, pid types.ProjectID, sid types.SprintID, tid types.TaskID) error {
	if err := f.hit("AttachTask"); err != nil {
		return err
	}
	err := f.st.Write(func(tx *store.Tx) error {
		return relations.Attach(tx, pid, tid, sid)
	})
	if apperr.IsKind(err, apperr.KindDuplicateAssociation) {
		return duplicate(string(tid))
	}
	return err
}

func (f *fakeRemote) DetachTask(_ context.Context, pid types.ProjectID, sid types.SprintID, tid types.TaskID) error {
	if err := f.hit("DetachTask"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		return relations.Detach(tx, pid, tid, sid)
	})
}

// ============================================================================
// COLUMNS
// ============================================================================

func (f *fakeRemote) GetColumn(_ context.Context, id types.ColumnID) (models.Column, error) {
	if err := f.hit("GetColumn"); err != nil {
		return models.Column{}, err
	}
	c, ok := f.st.View().Column(id)
	if !ok {
		return models.Column{}, apperr.NotFound("column", string(id))
	}
	return c, nil
}

func (f *fakeRemote) CreateColumn(_ context.Context, c models.Column) error {
	if err := f.hit("CreateColumn"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		_, err := relations.AddColumn(tx, c)
		return err
	})
}

func (f *fakeRemote) UpdateColumn(_ context.Context, c models.Column) error {
	if err := f.hit("UpdateColumn"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		_, err := relations.RenameColumn(tx, c.ID, c.Name)
		return err
	})
}

func (f *fakeRemote) DeleteColumn(_ context.Context, id types.ColumnID) error {
	if err := f.hit("DeleteColumn"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		c, ok := tx.Column(id)
		if !ok {
			return apperr.NotFound("column", string(id))
		}
		_, err := relations.DeleteColumn(tx, c.ProjectID, id)
		return err
	})
}

func (f *fakeRemote) ReorderColumns(_ context.Context, pid types.ProjectID, ordered []types.ColumnID) error {
	if err := f.hit("ReorderColumns"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		return relations.ReorderColumns(tx, pid, ordered)
	})
}

// ============================================================================
// RISKS
// ============================================================================

func (f *fakeRemote) GetRisk(_ context.Context, id types.RiskID) (models.Risk, error) {
	if err := f.hit("GetRisk"); err != nil {
		return models.Risk{}, err
	}
	r, ok := f.st.View().Risk(id)
	if !ok {
		return models.Risk{}, apperr.NotFound("risk", string(id))
	}
	return r, nil
}

func (f *fakeRemote) CreateRisk(_ context.Context, r models.Risk) error {
	if err := f.hit("CreateRisk"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Risk(r.ID); ok {
			return duplicate(string(r.ID))
		}
		tx.PutRisk(r)
		return nil
	})
}

func (f *fakeRemote) UpdateRisk(_ context.Context, r models.Risk) error {
	if err := f.hit("UpdateRisk"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.PutRisk(r)
		return nil
	})
}

func (f *fakeRemote) DeleteRisk(_ context.Context, id types.RiskID) error {
	if err := f.hit("DeleteRisk"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.DeleteRisk(id)
		return nil
	})
}

func (f *fakeRemote) RiskStats(_ context.Context, pid types.ProjectID) (models.RiskStats, error) {
	if err := f.hit("RiskStats"); err != nil {
		return models.RiskStats{}, err
	}
	return models.ComputeRiskStats(f.st.View().Risks(pid)), nil
}

// ============================================================================
// MINUTES
// ============================================================================

func (f *fakeRemote) GetMinutes(_ context.Context, id types.MinutesID) (models.Minutes, error) {
	if err := f.hit("GetMinutes"); err != nil {
		return models.Minutes{}, err
	}
	m, ok := f.st.View().Minutes(id)
	if !ok {
		return models.Minutes{}, apperr.NotFound("minutes", string(id))
	}
	return m, nil
}

func (f *fakeRemote) CreateMinutes(_ context.Context, m models.Minutes) error {
	if err := f.hit("CreateMinutes"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		if _, ok := tx.Minutes(m.ID); ok {
			return duplicate(string(m.ID))
		}
		tx.PutMinutes(m)
		return nil
	})
}

func (f *fakeRemote) UpdateMinutes(_ context.Context, m models.Minutes) error {
	if err := f.hit("UpdateMinutes"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.PutMinutes(m)
		return nil
	})
}

func (f *fakeRemote) DeleteMinutes(_ context.Context, id types.MinutesID) error {
	if err := f.hit("DeleteMinutes"); err != nil {
		return err
	}
	return f.st.Write(func(tx *store.Tx) error {
		tx.DeleteMinutes(id)
		return nil
	})
}
