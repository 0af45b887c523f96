package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"importfix/internal/project"
)

func setupTestTree(t *testing.T, files map[string]string) (*project.Tree, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "importfix-index-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	files["tsconfig.json"] = `{"compilerOptions": {"paths": {"@/*": ["./src/*"]}}}`

	for rel, content := range files {
		p := filepath.Join(tmpDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}

	cfg, err := project.LoadConfig(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("LoadConfig failed: %v", err)
	}
	tree, err := project.Load(cfg)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Load failed: %v", err)
	}
	return tree, func() { os.RemoveAll(tmpDir) }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildIndexesDefaultsAndNamed(t *testing.T) {
	tree, cleanup := setupTestTree(t, map[string]string{
		"src/components/header.tsx": `export default function Header() {}`,
		"src/lib/utils.ts": `export function cn() {}
export const SITE_NAME = 'demo';`,
	})
	defer cleanup()

	idx := Build(tree, testLogger())

	if idx.Size() != 3 {
		t.Fatalf("Expected 3 indexed symbols, got %d", idx.Size())
	}
	rec, ok := idx.Lookup("Header")
	if !ok {
		t.Fatal("Expected 'Header' in index")
	}
	if !rec.IsDefault {
		t.Error("Expected Header to be recorded as a default export")
	}
	if rec.Path != "@/components/header" {
		t.Errorf("Expected path '@/components/header', got '%s'", rec.Path)
	}
	if rec, _ := idx.Lookup("cn"); rec.IsDefault {
		t.Error("Expected cn to be a named export")
	}
}

func TestBuildCollisionFirstPathWins(t *testing.T) {
	tree, cleanup := setupTestTree(t, map[string]string{
		"src/components/button.tsx":    `export default function Button() {}`,
		"src/components/ui/button.tsx": `export function Button() {}`,
	})
	defer cleanup()

	idx := Build(tree, testLogger())

	rec, ok := idx.Lookup("Button")
	if !ok {
		t.Fatal("Expected 'Button' in index")
	}
	// "@/components/button" sorts before "@/components/ui/button".
	if rec.Path != "@/components/button" {
		t.Errorf("Expected first canonical path to win, got '%s'", rec.Path)
	}
	if len(idx.Collisions) != 1 {
		t.Fatalf("Expected 1 collision recorded, got %d", len(idx.Collisions))
	}
	c := idx.Collisions[0]
	if c.Symbol != "Button" || c.Kept != "@/components/button" || c.Dropped != "@/components/ui/button" {
		t.Errorf("Unexpected collision record: %+v", c)
	}
}

func TestBuildOutOfScopeModulesIgnored(t *testing.T) {
	tree, cleanup := setupTestTree(t, map[string]string{
		"src/lib/utils.ts": `export function cn() {}`,
		"scripts/gen.ts":   `export function gen() {}`,
	})
	defer cleanup()

	idx := Build(tree, testLogger())

	if _, ok := idx.Lookup("gen"); ok {
		t.Error("Exports outside the source root should not be indexed")
	}
	if _, ok := idx.Lookup("cn"); !ok {
		t.Error("Expected 'cn' in index")
	}
}

func TestSymbolsSorted(t *testing.T) {
	tree, cleanup := setupTestTree(t, map[string]string{
		"src/lib/utils.ts": `export function zeta() {}
export function alpha() {}`,
	})
	defer cleanup()

	idx := Build(tree, testLogger())
	syms := idx.Symbols()
	if len(syms) != 2 || syms[0] != "alpha" || syms[1] != "zeta" {
		t.Errorf("Expected sorted [alpha zeta], got %v", syms)
	}
}
