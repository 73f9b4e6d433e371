package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"workboard/internal/model"
	"workboard/internal/persist"
)

const snapshotVersion = 1

// Snapshot is the persisted shape of the store (key persist.KeyState).
type Snapshot struct {
	Version    int               `json:"version"`
	Workspaces []model.Workspace `json:"workspaces"`
	Spaces     []model.Space     `json:"spaces"`
	Lists      []model.List      `json:"lists"`
	Tasks      []model.Task      `json:"tasks"`

	CurrentWorkspaceID string         `json:"currentWorkspaceId,omitempty"`
	CurrentSpaceID     string         `json:"currentSpaceId,omitempty"`
	CurrentListID      string         `json:"currentListId,omitempty"`
	CurrentTaskID      string         `json:"currentTaskId,omitempty"`
	CurrentView        model.ViewType `json:"currentView"`
}

// Saver receives a fresh snapshot after every mutation. persist.DebouncedSaver implements it.
type Saver interface {
	Notify(v any)
	Flush(ctx context.Context) error
}

type Options struct {
	// Backend, when set, is used by Open to rehydrate and to persist through a DebouncedSaver.
	Backend  persist.Backend
	Debounce time.Duration

	// Saver overrides the saver built from Backend.
	Saver  Saver
	Logger *slog.Logger
	Now    func() time.Time
}

// Store is the in-memory arena of workspaces, spaces, lists and tasks.
// Entities reference each other by id; all methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	workspaces map[string]*model.Workspace
	spaces     map[string]*model.Space
	lists      map[string]*model.List
	tasks      map[string]*model.Task
	order      []string // workspace ids, creation order

	cur  Selection
	view model.ViewType

	saver Saver
	now   func() time.Time
	log   *slog.Logger
}

// New returns an empty store. Persistence is wired only when opts carries a Saver or a Backend.
func New(opts Options) *Store {
	s := &Store{
		workspaces: map[string]*model.Workspace{},
		spaces:     map[string]*model.Space{},
		lists:      map[string]*model.List{},
		tasks:      map[string]*model.Task{},
		view:       model.ViewList,
		saver:      opts.Saver,
		now:        opts.Now,
		log:        opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.saver == nil && opts.Backend != nil {
		s.saver = persist.NewDebouncedSaver(persist.SaverOptions{
			Backend:  opts.Backend,
			Key:      persist.KeyState,
			Debounce: opts.Debounce,
			Logger:   s.log,
		})
	}
	return s
}

// Open builds a store and rehydrates it from opts.Backend.
// A missing snapshot yields an empty store; a corrupt one is an error.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := New(opts)
	if opts.Backend == nil {
		return s, nil
	}
	b, err := opts.Backend.Get(ctx, persist.KeyState)
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("load state: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	s.mu.Lock()
	s.restoreLocked(&snap)
	s.mu.Unlock()
	return s, nil
}

// Flush writes any pending snapshot synchronously.
func (s *Store) Flush(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Flush(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Flush(ctx)
}

// Snapshot returns a deep copy of the whole store in persisted form.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// stamp returns a timestamp strictly after prev.
func (s *Store) stamp(prev time.Time) time.Time {
	t := s.now().UTC()
	if !t.After(prev) {
		t = prev.Add(time.Nanosecond)
	}
	return t
}

func (s *Store) changedLocked() {
	if s.saver == nil {
		return
	}
	snap := s.snapshotLocked()
	s.saver.Notify(&snap)
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:            snapshotVersion,
		Workspaces:         []model.Workspace{},
		Spaces:             []model.Space{},
		Lists:              []model.List{},
		Tasks:              []model.Task{},
		CurrentWorkspaceID: s.cur.WorkspaceID,
		CurrentSpaceID:     s.cur.SpaceID,
		CurrentListID:      s.cur.ListID,
		CurrentTaskID:      s.cur.TaskID,
		CurrentView:        s.view,
	}
	for _, wid := range s.order {
		ws := s.workspaces[wid]
		snap.Workspaces = append(snap.Workspaces, ws.Clone())
		for _, sid := range ws.SpaceIDs {
			sp := s.spaces[sid]
			snap.Spaces = append(snap.Spaces, sp.Clone())
			for _, lid := range sp.ListIDs {
				l := s.lists[lid]
				snap.Lists = append(snap.Lists, l.Clone())
				for _, tid := range l.TaskIDs {
					snap.Tasks = s.appendTaskTreeLocked(snap.Tasks, tid)
				}
			}
		}
	}
	return snap
}

func (s *Store) appendTaskTreeLocked(out []model.Task, id string) []model.Task {
	t := s.tasks[id]
	out = append(out, t.Clone())
	for _, cid := range t.SubtaskIDs {
		out = s.appendTaskTreeLocked(out, cid)
	}
	return out
}

// restoreLocked loads snap into the arena. Dangling references are dropped with a warning
// so the structural invariants hold after load.
func (s *Store) restoreLocked(snap *Snapshot) {
	for i := range snap.Workspaces {
		ws := snap.Workspaces[i].Clone()
		s.workspaces[ws.ID] = &ws
		s.order = append(s.order, ws.ID)
	}
	for i := range snap.Spaces {
		sp := snap.Spaces[i].Clone()
		if _, ok := s.workspaces[sp.WorkspaceID]; !ok {
			s.log.Warn("dropping orphan space", "id", sp.ID, "workspace", sp.WorkspaceID)
			continue
		}
		s.spaces[sp.ID] = &sp
	}
	for i := range snap.Lists {
		l := snap.Lists[i].Clone()
		if _, ok := s.spaces[l.SpaceID]; !ok {
			s.log.Warn("dropping orphan list", "id", l.ID, "space", l.SpaceID)
			continue
		}
		s.lists[l.ID] = &l
	}
	for i := range snap.Tasks {
		t := snap.Tasks[i].Clone()
		if _, ok := s.lists[t.ListID]; !ok {
			s.log.Warn("dropping orphan task", "id", t.ID, "list", t.ListID)
			continue
		}
		if t.Status == "" {
			t.Status = model.StatusTodo
		} else if st, err := model.ParseTaskStatus(string(t.Status)); err == nil {
			t.Status = st
		}
		if t.Priority == "" {
			t.Priority = model.PriorityNormal
		}
		s.tasks[t.ID] = &t
	}

	for _, ws := range s.workspaces {
		ws.SpaceIDs = keepKnown(ws.SpaceIDs, func(id string) bool { return s.spaces[id] != nil })
	}
	for _, sp := range s.spaces {
		sp.ListIDs = keepKnown(sp.ListIDs, func(id string) bool { return s.lists[id] != nil })
	}
	for _, l := range s.lists {
		l.TaskIDs = keepKnown(l.TaskIDs, func(id string) bool { return s.tasks[id] != nil })
	}
	for _, t := range s.tasks {
		t.SubtaskIDs = keepKnown(t.SubtaskIDs, func(id string) bool { return s.tasks[id] != nil })
		t.Dependencies = keepKnown(t.Dependencies, func(id string) bool { return s.tasks[id] != nil })
		if t.ParentID != nil && s.tasks[*t.ParentID] == nil {
			t.ParentID = nil
			s.lists[t.ListID].TaskIDs = appendUnique(s.lists[t.ListID].TaskIDs, t.ID)
		}
	}

	if v := snap.CurrentView; v.Valid() {
		s.view = v
	}
	s.cur = Selection{
		WorkspaceID: snap.CurrentWorkspaceID,
		SpaceID:     snap.CurrentSpaceID,
		ListID:      snap.CurrentListID,
		TaskID:      snap.CurrentTaskID,
	}
	s.repairSelectionLocked()
}

func keepKnown(ids []string, known func(string) bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if known(id) {
			out = append(out, id)
		}
	}
	return out
}

func appendUnique(ids []string, id string) []string {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
