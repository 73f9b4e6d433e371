package cli

import (
	"strings"

	"workboard/internal/store"
)

// The id helpers take the first positional argument, falling back to the current selection.

func workspaceArg(rt *runtime, args []string) (string, error) {
	return pick(args, rt.store.Selection().WorkspaceID)
}

func spaceArg(rt *runtime, args []string) (string, error) {
	return pick(args, rt.store.Selection().SpaceID)
}

func listArg(rt *runtime, args []string) (string, error) {
	return pick(args, rt.store.Selection().ListID)
}

func taskArg(rt *runtime, args []string) (string, error) {
	return pick(args, rt.store.Selection().TaskID)
}

func pick(args []string, current string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if current == "" {
		return "", store.ErrNoSelection
	}
	return current, nil
}

func strPtr(s string) *string { return &s }
