package imports

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/proofscout/proofscout/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestLoadPackageMap(t *testing.T) {
	t.Run("missing packages directory", func(t *testing.T) {
		pm := LoadPackageMap(t.TempDir())
		if len(pm) != 0 {
			t.Errorf("LoadPackageMap() = %v, want empty map", pm)
		}
	})

	t.Run("capitalizes package names", func(t *testing.T) {
		root := t.TempDir()
		for _, pkg := range []string{"mathlib", "aesop", "Qq"} {
			if err := os.MkdirAll(filepath.Join(root, ".lake", "packages", pkg), 0o755); err != nil {
				t.Fatal(err)
			}
		}

		pm := LoadPackageMap(root)
		if len(pm) != 3 {
			t.Fatalf("LoadPackageMap() has %d entries, want 3", len(pm))
		}
		for _, key := range []string{"Mathlib", "Aesop", "Qq"} {
			if _, ok := pm[key]; !ok {
				t.Errorf("PackageMap missing key %q: %v", key, pm)
			}
		}
		want := filepath.Join(root, ".lake", "packages", "mathlib")
		if pm["Mathlib"] != want {
			t.Errorf("pm[Mathlib] = %q, want %q", pm["Mathlib"], want)
		}
	})
}

func TestResolver_ProjectRootAndSrc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "MyProj/Basic.lean", "def one := 1\n")
	writeFile(t, root, "src/MyProj/Extra.lean", "def two := 2\n")

	r := NewResolver(root, 25000, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), "import MyProj.Basic\nimport MyProj.Extra\n\ndef x := one\n")

	if !strings.Contains(got, "-- Content from: MyProj.Basic") {
		t.Errorf("output missing label for MyProj.Basic:\n%s", got)
	}
	if !strings.Contains(got, "def one := 1") {
		t.Errorf("output missing root-resolved content:\n%s", got)
	}
	if !strings.Contains(got, "-- Content from: MyProj.Extra") {
		t.Errorf("output missing label for MyProj.Extra:\n%s", got)
	}
	if !strings.Contains(got, "def two := 2") {
		t.Errorf("output missing src-resolved content:\n%s", got)
	}
}

func TestResolver_DependencyPackageTakesPrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".lake/packages/mathlib/Mathlib/Data.lean", "-- from package\n")
	writeFile(t, root, "Mathlib/Data.lean", "-- from project root\n")

	r := NewResolver(root, 25000, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Mathlib.Data\n")

	if !strings.Contains(got, "-- from package") {
		t.Errorf("output should contain the dependency package file:\n%s", got)
	}
	if strings.Contains(got, "-- from project root") {
		t.Errorf("output should not contain the shadowed project-root file:\n%s", got)
	}
}

func TestResolver_OversizedImportExcluded(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("-- padding line\n", 80) // well over the threshold below
	writeFile(t, root, "Big.lean", big)
	writeFile(t, root, "Small.lean", "def small := 0\n")

	r := NewResolver(root, 100, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Big\nimport Small\n")

	if strings.Contains(got, "padding line") {
		t.Errorf("oversized import content should be excluded:\n%s", got)
	}
	if strings.Contains(got, "-- Content from: Big") {
		t.Errorf("oversized import should not be labeled:\n%s", got)
	}
	if !strings.Contains(got, "def small := 0") {
		t.Errorf("import below the threshold should still be included:\n%s", got)
	}
}

func TestResolver_UnresolvedImportOmitted(t *testing.T) {
	r := NewResolver(t.TempDir(), 25000, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Nowhere.ToBe.Found\n")
	if got != "" {
		t.Errorf("Resolve() = %q, want empty output for unresolved import", got)
	}
}

func TestResolver_WebSearchFallback(t *testing.T) {
	var queries []string
	search := func(_ context.Context, query string) (string, error) {
		queries = append(queries, query)
		return "found on the web", nil
	}

	root := t.TempDir()
	writeFile(t, root, "Local.lean", "def local' := 1\n")

	r := NewResolver(root, 25000, search, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Local\nimport Missing.Def\n")

	if len(queries) != 1 {
		t.Fatalf("web search called %d times, want 1 (only for the unresolved import)", len(queries))
	}
	if queries[0] != "lean 4 Missing.Def" {
		t.Errorf("query = %q, want %q", queries[0], "lean 4 Missing.Def")
	}
	if !strings.Contains(got, "-- Web search result for: Missing.Def") {
		t.Errorf("output missing web search label:\n%s", got)
	}
	if !strings.Contains(got, "found on the web") {
		t.Errorf("output missing web search content:\n%s", got)
	}
}

func TestResolver_WebSearchFailureOmitted(t *testing.T) {
	search := func(_ context.Context, _ string) (string, error) {
		return "", errors.New("network down")
	}

	r := NewResolver(t.TempDir(), 25000, search, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Missing\n")
	if got != "" {
		t.Errorf("Resolve() = %q, want empty output when web search fails", got)
	}
}

func TestResolver_RepeatedImportAppendedPerOccurrence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Dup.lean", "def dup := 1\n")

	r := NewResolver(root, 25000, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), "import Dup\nimport Dup\n")

	if n := strings.Count(got, "-- Content from: Dup"); n != 2 {
		t.Errorf("repeated import labeled %d times, want 2", n)
	}
}

func TestResolver_IgnoresNonImportLines(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Real.lean", "def real := 1\n")

	content := "-- import Real\n  import Real\ntheorem t : True := trivial\nimport Real\n"
	r := NewResolver(root, 25000, nil, logging.NopLogger())
	got := r.Resolve(context.Background(), content)

	// Only the line-leading import counts.
	if n := strings.Count(got, "-- Content from: Real"); n != 1 {
		t.Errorf("import resolved %d times, want 1 (only leading import lines match)", n)
	}
}
