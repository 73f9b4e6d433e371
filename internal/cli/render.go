package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"workboard/internal/format"
	"workboard/internal/model"
	"workboard/internal/store"
)

// Row types marshal as their plain slices and render as tables in text mode.

type workspaceRows struct {
	items   []model.Workspace
	current string
}

func (r workspaceRows) MarshalJSON() ([]byte, error) { return marshalSlice(r.items) }

func (r workspaceRows) Text() string {
	if len(r.items) == 0 {
		return format.StyleMuted.Render("no workspaces yet")
	}
	t := newTable("", "ID", "NAME", "SPACES", "MEMBERS")
	for _, ws := range r.items {
		t.Row(marker(ws.ID, r.current), ws.ID, format.Truncate(ws.Name, 40), fmt.Sprint(len(ws.SpaceIDs)), fmt.Sprint(len(ws.Members)))
	}
	return t.Render()
}

type spaceRows struct {
	items   []model.Space
	current string
}

func (r spaceRows) MarshalJSON() ([]byte, error) { return marshalSlice(r.items) }

func (r spaceRows) Text() string {
	if len(r.items) == 0 {
		return format.StyleMuted.Render("no spaces yet")
	}
	t := newTable("", "ID", "NAME", "LISTS")
	for _, sp := range r.items {
		t.Row(marker(sp.ID, r.current), sp.ID, format.Swatch(string(sp.Color), format.Truncate(sp.Name, 40)), fmt.Sprint(len(sp.ListIDs)))
	}
	return t.Render()
}

type listRows struct {
	items   []model.List
	current string
}

func (r listRows) MarshalJSON() ([]byte, error) { return marshalSlice(r.items) }

func (r listRows) Text() string {
	if len(r.items) == 0 {
		return format.StyleMuted.Render("no lists yet")
	}
	t := newTable("", "ID", "NAME", "TASKS")
	for _, l := range r.items {
		t.Row(marker(l.ID, r.current), l.ID, format.Truncate(l.Name, 40), fmt.Sprint(len(l.TaskIDs)))
	}
	return t.Render()
}

type taskRows struct {
	items   []model.Task
	current string
}

func (r taskRows) MarshalJSON() ([]byte, error) { return marshalSlice(r.items) }

func (r taskRows) Text() string {
	if len(r.items) == 0 {
		return format.StyleMuted.Render("no tasks")
	}
	t := newTable("", "ID", "TITLE", "STATUS", "PRIORITY", "DUE")
	for _, task := range r.items {
		title := task.Title
		if task.ParentID != nil {
			title = "↳ " + title
		}
		t.Row(
			marker(task.ID, r.current),
			task.ID,
			format.Truncate(title, 48),
			format.Status(string(task.Status)),
			format.Priority(string(task.Priority)),
			dateText(task.DueDate),
		)
	}
	return t.Render()
}

type taskDetail model.Task

func (d taskDetail) Text() string {
	t := model.Task(d)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", format.StyleHeading.Render(t.Title), format.StyleID.Render(t.ID))
	fmt.Fprintf(&b, "%s · %s", format.Status(string(t.Status)), format.Priority(string(t.Priority)))
	if t.DueDate != nil {
		fmt.Fprintf(&b, " · due %s", dateText(t.DueDate))
	}
	b.WriteByte('\n')
	if t.Description != "" {
		b.WriteString("\n" + format.Markdown(t.Description, 80) + "\n")
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", format.StyleMuted.Render("tags"), strings.Join(t.Tags, ", "))
	}
	if len(t.Assignees) > 0 {
		fmt.Fprintf(&b, "%s %s\n", format.StyleMuted.Render("assignees"), strings.Join(t.Assignees, ", "))
	}
	for _, c := range t.Checklists {
		done := 0
		for _, it := range c.Items {
			if it.IsCompleted {
				done++
			}
		}
		fmt.Fprintf(&b, "\n%s %d/%d\n", format.StyleHeading.Render(c.Title), done, len(c.Items))
		for _, it := range c.Items {
			box := "[ ]"
			if it.IsCompleted {
				box = "[x]"
			}
			fmt.Fprintf(&b, "  %s %s %s\n", box, it.Content, format.StyleID.Render(it.ID))
		}
	}
	if len(t.Comments) > 0 {
		fmt.Fprintf(&b, "\n%s\n", format.StyleHeading.Render("Comments"))
		for _, c := range t.Comments {
			fmt.Fprintf(&b, "  %s %s\n", format.StyleMuted.Render(c.CreatedAt.Format("2006-01-02 15:04")), c.Content)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// treeView renders the hierarchy with the selection highlighted.
type treeView struct {
	nodes []store.WorkspaceNode
	sel   store.Selection
}

func (v treeView) MarshalJSON() ([]byte, error) { return marshalSlice(v.nodes) }

func (v treeView) Text() string {
	if len(v.nodes) == 0 {
		return format.StyleMuted.Render("no workspaces yet; try: workboard workspaces create --name <name>")
	}
	var parts []string
	for _, ws := range v.nodes {
		wt := newBranch(v.label(format.StyleHeading.Render(ws.Name), ws.ID, v.sel.WorkspaceID))
		for _, sp := range ws.Spaces {
			st := newBranch(v.label(format.Swatch(string(sp.Color), sp.Name), sp.ID, v.sel.SpaceID))
			for _, l := range sp.Lists {
				lt := newBranch(v.label(l.Name, l.ID, v.sel.ListID))
				for _, tn := range l.Tasks {
					lt.Child(v.taskBranch(tn))
				}
				st.Child(lt)
			}
			wt.Child(st)
		}
		parts = append(parts, wt.String())
	}
	return strings.Join(parts, "\n")
}

func (v treeView) taskBranch(n store.TaskNode) any {
	title := format.Status(string(n.Status)) + " " + format.Truncate(n.Title, 60)
	if n.Priority != model.PriorityNormal {
		title += " " + format.Priority(string(n.Priority))
	}
	label := v.label(title, n.ID, v.sel.TaskID)
	if len(n.Subtasks) == 0 {
		return label
	}
	t := newBranch(label)
	for _, c := range n.Subtasks {
		t.Child(v.taskBranch(c))
	}
	return t
}

func (v treeView) label(name, id, current string) string {
	return marker(id, current) + name + " " + format.StyleID.Render(id)
}

func newBranch(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(format.StyleMuted)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(format.StyleMuted).
		Headers(headers...)
}

func marker(id, current string) string {
	if id != "" && id == current {
		return format.StyleCurrent.Render("● ")
	}
	return ""
}

func dateText(t *time.Time) string {
	if t == nil {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 {
		return u.Format("2006-01-02")
	}
	return u.Format("2006-01-02 15:04")
}

func marshalSlice[T any](xs []T) ([]byte, error) {
	if xs == nil {
		xs = []T{}
	}
	return json.Marshal(xs)
}
