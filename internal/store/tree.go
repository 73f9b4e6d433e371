package store

import "workboard/internal/model"

type TaskNode struct {
	model.Task
	Subtasks []TaskNode `json:"subtasks"`
}

type ListNode struct {
	model.List
	Tasks []TaskNode `json:"tasks"`
}

type SpaceNode struct {
	model.Space
	Lists []ListNode `json:"lists"`
}

type WorkspaceNode struct {
	model.Workspace
	Spaces []SpaceNode `json:"spaces"`
}

// Tree returns the whole hierarchy as nested copies.
func (s *Store) Tree() []WorkspaceNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WorkspaceNode, 0, len(s.order))
	for _, wid := range s.order {
		ws := s.workspaces[wid]
		wn := WorkspaceNode{Workspace: ws.Clone(), Spaces: []SpaceNode{}}
		for _, sid := range ws.SpaceIDs {
			sp := s.spaces[sid]
			sn := SpaceNode{Space: sp.Clone(), Lists: []ListNode{}}
			for _, lid := range sp.ListIDs {
				l := s.lists[lid]
				ln := ListNode{List: l.Clone(), Tasks: []TaskNode{}}
				for _, tid := range l.TaskIDs {
					ln.Tasks = append(ln.Tasks, s.taskNodeLocked(tid))
				}
				sn.Lists = append(sn.Lists, ln)
			}
			wn.Spaces = append(wn.Spaces, sn)
		}
		out = append(out, wn)
	}
	return out
}

func (s *Store) taskNodeLocked(id string) TaskNode {
	t := s.tasks[id]
	n := TaskNode{Task: t.Clone(), Subtasks: []TaskNode{}}
	for _, cid := range t.SubtaskIDs {
		n.Subtasks = append(n.Subtasks, s.taskNodeLocked(cid))
	}
	return n
}
