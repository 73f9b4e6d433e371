package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"workboard"},
			want: []string{"workboard"},
		},
		{
			name: "direct task id first token",
			in:   []string{"workboard", "tsk-abc123"},
			want: []string{"workboard", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "direct task id after value flag",
			in:   []string{"workboard", "--dir", "./tmp-data", "tsk-abc123"},
			want: []string{"workboard", "--dir", "./tmp-data", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "direct task id after equals flag",
			in:   []string{"workboard", "--storage=file", "tsk-abc123"},
			want: []string{"workboard", "--storage=file", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "direct task id after bool flag",
			in:   []string{"workboard", "--pretty", "tsk-abc123"},
			want: []string{"workboard", "--pretty", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "direct task id after double dash",
			in:   []string{"workboard", "--dir", "./tmp-data", "--", "tsk-abc123"},
			want: []string{"workboard", "--dir", "./tmp-data", "--", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"workboard", "tasks", "show", "tsk-abc123"},
			want: []string{"workboard", "tasks", "show", "tsk-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"workboard", "tsk-"},
			want: []string{"workboard", "tsk-"},
		},
		{
			name: "other ids not rewritten",
			in:   []string{"workboard", "lst-abc123"},
			want: []string{"workboard", "lst-abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTaskLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
