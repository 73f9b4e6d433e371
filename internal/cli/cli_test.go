package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"workboard/internal/model"
	"workboard/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// testEnv isolates config and keeps bcrypt cheap. It returns the base args for a file-backed data dir.
func testEnv(t *testing.T) []string {
	t.Helper()
	t.Setenv("WORKBOARD_CONFIG_DIR", t.TempDir())
	t.Setenv("WORKBOARD_BCRYPT_COST", "4")
	t.Setenv("WORKBOARD_STORAGE", "")
	t.Setenv("WORKBOARD_FORMAT", "")
	return []string{"--dir", t.TempDir(), "--storage", "file"}
}

func TestCLI_EndToEnd(t *testing.T) {
	base := testEnv(t)

	mustRun := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, append(append([]string{}, base...), args...))
		if err != nil {
			t.Fatalf("command failed: workboard %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
		}
		return env
	}
	idOf := func(env map[string]any) string {
		t.Helper()
		id, _ := env["data"].(map[string]any)["id"].(string)
		if id == "" {
			t.Fatalf("expected an id; got: %#v", env["data"])
		}
		return id
	}

	sess := mustRun("auth", "signup", "--email", "ada@example.com", "--password", "correct-horse", "--name", "Ada")
	userID, _ := sess["data"].(map[string]any)["user"].(map[string]any)["id"].(string)
	if userID == "" {
		t.Fatalf("expected signup to return a user; got %#v", sess["data"])
	}

	// The session survives across invocations.
	who := mustRun("auth", "whoami")
	if got := who["data"].(map[string]any)["email"]; got != "ada@example.com" {
		t.Fatalf("whoami: unexpected email %v", got)
	}

	ws := mustRun("workspaces", "create", "--name", "Acme")
	wsID := idOf(ws)
	if members := ws["data"].(map[string]any)["members"].([]any); len(members) != 1 || members[0] != userID {
		t.Fatalf("expected the creator as member; got %v", members)
	}
	spID := idOf(mustRun("spaces", "create", "--name", "Eng", "--color", "blue"))
	mustRun("spaces", "use", spID)
	backlog := idOf(mustRun("lists", "create", "--name", "Backlog"))
	sprint := idOf(mustRun("lists", "create", "--name", "Sprint"))
	mustRun("lists", "use", backlog)

	task := mustRun("tasks", "create", "--title", "Ship it", "--priority", "high", "--due", "2025-02-01", "--tag", "release")
	taskID := idOf(task)
	data := task["data"].(map[string]any)
	if data["status"] != "todo" || data["priority"] != "high" || data["listId"] != backlog {
		t.Fatalf("unexpected task: %#v", data)
	}
	sub := idOf(mustRun("tasks", "subtask", taskID, "--title", "Write notes"))

	mustRun("tasks", "update", taskID, "--status", "IN_PROGRESS")
	shown := mustRun("tasks", "show", taskID)["data"].(map[string]any)
	if shown["status"] != "in-progress" || shown["title"] != "Ship it" {
		t.Fatalf("update should change status only; got %#v", shown)
	}

	mustRun("tasks", "comment", taskID, "--content", "looks good")
	mustRun("tasks", "field", taskID, "--name", "Points", "--type", "number", "--value", "3")
	mustRun("tasks", "time", taskID, "--minutes", "45")

	moved := mustRun("tasks", "move", taskID, "--to", sprint)["data"].(map[string]any)
	if moved["listId"] != sprint {
		t.Fatalf("move: expected list %s; got %v", sprint, moved["listId"])
	}
	if got := mustRun("tasks", "show", sub)["data"].(map[string]any)["listId"]; got != sprint {
		t.Fatalf("subtask should follow its parent; got list %v", got)
	}

	full := mustRun("tasks", "show", taskID)["data"].(map[string]any)
	if comments := full["comments"].([]any); len(comments) != 1 || comments[0].(map[string]any)["createdBy"] != userID {
		t.Fatalf("unexpected comments: %#v", full["comments"])
	}

	mustRun("view", "set", "board")
	if v := mustRun("view", "get")["data"].(map[string]any)["view"]; v != "board" {
		t.Fatalf("view: expected board; got %v", v)
	}

	sel := mustRun("selection")["data"].(map[string]any)
	if sel["currentWorkspaceId"] != wsID || sel["currentSpaceId"] != spID || sel["currentListId"] != backlog {
		t.Fatalf("unexpected selection: %#v", sel)
	}

	tree := mustRun("tree")["data"].([]any)
	if len(tree) != 1 {
		t.Fatalf("tree: expected one workspace; got %d", len(tree))
	}

	mustRun("spaces", "delete", spID)
	sel = mustRun("selection")["data"].(map[string]any)
	if _, ok := sel["currentSpaceId"]; ok {
		t.Fatalf("space pointer should be cleared after cascade; got %#v", sel)
	}

	mustRun("auth", "logout")
	if _, _, err := runCLI(t, append(append([]string{}, base...), "auth", "whoami")); err == nil {
		t.Fatalf("whoami after logout should fail")
	}
}

func TestCLI_TeamsAreSpacesUnderOrganizations(t *testing.T) {
	base := testEnv(t)
	run := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, append(append([]string{}, base...), args...))
		if err != nil {
			t.Fatalf("workboard %v: %v\n%s", args, err, stderr)
		}
		var env struct {
			Data map[string]any `json:"data"`
		}
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("decode: %v\n%s", err, stdout)
		}
		return env.Data
	}

	org := run("organizations", "create", "--name", "Acme")
	team := run("teams", "create", "--name", "Engineering")
	if team["workspaceId"] != org["id"] {
		t.Fatalf("expected a space under %v; got %#v", org["id"], team)
	}
	if got := run("organization", "show")["spaceIds"].([]any); len(got) != 1 || got[0] != team["id"] {
		t.Fatalf("expected the organization to hold the team; got %v", got)
	}
}

func TestCLI_FailedLoginStoresNoSession(t *testing.T) {
	base := testEnv(t)
	sessionFile := filepath.Join(base[1], "session.json")
	noSession := func(step string) {
		t.Helper()
		if _, err := os.Stat(sessionFile); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s: expected no stored session; stat err=%v", step, err)
		}
	}
	run := func(args ...string) error {
		t.Helper()
		_, _, err := runCLI(t, append(append([]string{}, base...), args...))
		return err
	}

	if err := run("auth", "login", "--email", "ada@example.com", "--password", "correct-horse"); err == nil {
		t.Fatalf("login of an unknown user should fail")
	}
	noSession("unknown user")

	if err := run("auth", "signup", "--email", "ada@example.com", "--password", "correct-horse"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := run("auth", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	noSession("after logout")

	if err := run("auth", "login", "--email", "ada@example.com", "--password", "wrong-horse"); err == nil {
		t.Fatalf("login with a wrong password should fail")
	}
	noSession("wrong password")
	if err := run("auth", "whoami"); err == nil {
		t.Fatalf("whoami after a failed login should fail")
	}
}

func TestCLI_ErrorsGoToStderr(t *testing.T) {
	base := testEnv(t)

	stdout, stderr, err := runCLI(t, append(base, "tasks", "show", "tsk-missing"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(stdout) != 0 {
		t.Fatalf("expected no stdout; got %s", stdout)
	}
	if !strings.Contains(string(stderr), "task not found: tsk-missing") {
		t.Fatalf("expected not-found on stderr; got %q", stderr)
	}

	_, stderr, err = runCLI(t, append(base, "spaces", "create", "--name", "Orphan"))
	if err == nil || !strings.Contains(string(stderr), store.ErrNoSelection.Error()) {
		t.Fatalf("expected no-selection error; got err=%v stderr=%q", err, stderr)
	}
}

func TestCLI_TreeText(t *testing.T) {
	base := testEnv(t)
	run := func(args ...string) string {
		t.Helper()
		stdout, stderr, err := runCLI(t, append(append([]string{}, base...), args...))
		if err != nil {
			t.Fatalf("workboard %v: %v\n%s", args, err, stderr)
		}
		return string(stdout)
	}

	run("workspaces", "create", "--name", "Acme")
	run("spaces", "create", "--name", "Eng")

	out := run("--format", "text", "--no-color", "tree")
	for _, want := range []string{"Acme", "Eng", "●"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree text missing %q:\n%s", want, out)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected text, got JSON:\n%s", out)
	}
}

func TestFieldValue(t *testing.T) {
	cases := []struct {
		typ  model.FieldType
		in   string
		want string
	}{
		{model.FieldNumber, "3", `3`},
		{model.FieldText, "hello", `"hello"`},
		{model.FieldText, "3", `"3"`},
		{model.FieldUser, `["u1","u2"]`, `["u1","u2"]`},
		{model.FieldSelect, `{"id":"x","label":"X"}`, `{"id":"x","label":"X"}`},
		{model.FieldDate, "2025-01-02", `"2025-01-02"`},
	}
	for _, c := range cases {
		if got := string(fieldValue(c.typ, c.in)); got != c.want {
			t.Fatalf("fieldValue(%s, %q): expected %s; got %s", c.typ, c.in, c.want, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-02-01")
	if err != nil {
		t.Fatalf("date only: %v", err)
	}
	if !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date only: got %v", got)
	}

	got, err = parseDate("2025-02-01T10:30:00+02:00")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if !got.Equal(time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)) || got.Location() != time.UTC {
		t.Fatalf("rfc3339: got %v", got)
	}

	if _, err := parseDate("2025-02-01 10:30"); err != nil {
		t.Fatalf("local date time: %v", err)
	}
	if _, err := parseDate("next tuesday"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestCLI_Docs(t *testing.T) {
	testEnv(t)

	stdout, stderr, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v\n%s", err, stderr)
	}
	var env struct {
		Data struct {
			Topics []struct{ Name string } `json:"topics"`
		} `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(env.Data.Topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err = runCLI(t, []string{"docs", "hierarchy", "--raw"})
	if err != nil || !strings.HasPrefix(string(stdout), "# Hierarchy") {
		t.Fatalf("raw docs: err=%v out=%q", err, stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}
