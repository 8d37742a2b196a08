package github

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/proofscout/proofscout/internal/logging"
)

// fakeCall records one executor invocation.
type fakeCall struct {
	name string
	args []string
}

// fakeExecutor returns canned output per gh subcommand and records calls.
type fakeExecutor struct {
	calls   []fakeCall
	outputs map[string][]byte
	errs    map[string]error
}

func (f *fakeExecutor) exec(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, fakeCall{name: name, args: args})
	key := name
	if len(args) > 0 {
		key = name + " " + args[0]
		if len(args) > 1 && (args[0] == "issue" || args[0] == "repo") {
			key += " " + args[1]
		}
	}
	return f.outputs[key], f.errs[key]
}

func newFake() *fakeExecutor {
	return &fakeExecutor{
		outputs: map[string][]byte{},
		errs:    map[string]error{},
	}
}

func TestCheckInstalled(t *testing.T) {
	t.Run("gh present", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh --version"] = []byte("gh version 2.40.0")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		if err := c.CheckInstalled(); err != nil {
			t.Errorf("CheckInstalled() = %v, want nil", err)
		}
	})

	t.Run("gh missing", func(t *testing.T) {
		fake := newFake()
		fake.errs["gh --version"] = &exec.Error{Name: "gh", Err: exec.ErrNotFound}

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		if err := c.CheckInstalled(); !errors.Is(err, ErrGHNotInstalled) {
			t.Errorf("CheckInstalled() = %v, want ErrGHNotInstalled", err)
		}
	})
}

func TestRepoName(t *testing.T) {
	t.Run("detects repository", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh repo view"] = []byte("leanprover-community/mathlib4\n")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		name, err := c.RepoName()
		if err != nil {
			t.Fatalf("RepoName() failed: %v", err)
		}
		if name != "leanprover-community/mathlib4" {
			t.Errorf("RepoName() = %q, want %q", name, "leanprover-community/mathlib4")
		}
	})

	t.Run("empty output", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh repo view"] = []byte("\n")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		if _, err := c.RepoName(); err == nil {
			t.Error("RepoName() should fail on empty output")
		}
	})

	t.Run("auth error classified", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh repo view"] = []byte("To get started with GitHub CLI, please run: gh auth login")
		fake.errs["gh repo view"] = fmt.Errorf("exit status 4")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		if _, err := c.RepoName(); !errors.Is(err, ErrGHAuthRequired) {
			t.Errorf("RepoName() = %v, want ErrGHAuthRequired", err)
		}
	})
}

func TestSearchOpenIssues(t *testing.T) {
	t.Run("builds quoted title query", func(t *testing.T) {
		fake := newFake()

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		if _, err := c.SearchOpenIssues("owner/repo", "Proof obligation for `foo` in `Foo.lean`"); err != nil {
			t.Fatalf("SearchOpenIssues() failed: %v", err)
		}

		if len(fake.calls) != 1 {
			t.Fatalf("executor called %d times, want 1", len(fake.calls))
		}
		args := fake.calls[0].args
		query := args[len(args)-1]
		if !strings.Contains(query, `"Proof obligation for`) {
			t.Errorf("query missing quoted title: %q", query)
		}
		if !strings.Contains(query, "in:title repo:owner/repo is:open") {
			t.Errorf("query missing filters: %q", query)
		}
	})

	t.Run("matching issues returned", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh issue list"] = []byte("42\tOPEN\tProof obligation for `foo` in `Foo.lean`\n")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		got, err := c.SearchOpenIssues("owner/repo", "whatever")
		if err != nil {
			t.Fatalf("SearchOpenIssues() failed: %v", err)
		}
		if got == "" {
			t.Error("SearchOpenIssues() should return the listing")
		}
	})

	t.Run("no issues found is not an error", func(t *testing.T) {
		fake := newFake()
		fake.outputs["gh issue list"] = []byte("no issues found matching your search")
		fake.errs["gh issue list"] = fmt.Errorf("exit status 4")

		c := NewClientWithExecutor(fake.exec, logging.NopLogger())
		got, err := c.SearchOpenIssues("owner/repo", "whatever")
		if err != nil {
			t.Errorf("SearchOpenIssues() = %v, want nil for empty result", err)
		}
		if got != "" {
			t.Errorf("SearchOpenIssues() = %q, want empty", got)
		}
	})
}

func TestCreateIssue(t *testing.T) {
	fake := newFake()

	c := NewClientWithExecutor(fake.exec, logging.NopLogger())
	if err := c.CreateIssue("a title", "a body", "proof wanted"); err != nil {
		t.Fatalf("CreateIssue() failed: %v", err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("executor called %d times, want 1", len(fake.calls))
	}
	args := fake.calls[0].args
	want := []string{"issue", "create", "--title", "a title", "--body", "a body", "--label", "proof wanted"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestClassifyGHError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		output string
		want   error
	}{
		{
			name: "not installed",
			err:  &exec.Error{Name: "gh", Err: exec.ErrNotFound},
			want: ErrGHNotInstalled,
		},
		{
			name:   "auth required",
			err:    fmt.Errorf("exit status 4"),
			output: "error: not logged in to any GitHub hosts",
			want:   ErrGHAuthRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGHError(tt.err, []byte(tt.output))
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyGHError() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unclassified includes output", func(t *testing.T) {
		got := classifyGHError(fmt.Errorf("exit status 1"), []byte("something odd"))
		if !strings.Contains(got.Error(), "something odd") {
			t.Errorf("error should include command output: %v", got)
		}
	})
}
