package project

import (
	"os"
	"path/filepath"
	"testing"
)

func loadTestTree(t *testing.T, files map[string]string) (*Tree, func()) {
	t.Helper()

	if _, ok := files["tsconfig.json"]; !ok {
		files["tsconfig.json"] = basicTsconfig
	}
	root, cleanup := setupTestProject(t, files)

	cfg, err := LoadConfig(root)
	if err != nil {
		cleanup()
		t.Fatalf("LoadConfig failed: %v", err)
	}
	tree, err := Load(cfg)
	if err != nil {
		cleanup()
		t.Fatalf("Load failed: %v", err)
	}
	return tree, cleanup
}

func TestLoadSkipsVendoredAndDeclarations(t *testing.T) {
	tree, cleanup := loadTestTree(t, map[string]string{
		"src/app/page.tsx":            `export default function Page() {}`,
		"src/types.d.ts":              `declare module 'x';`,
		"node_modules/react/index.js": `module.exports = {};`,
		".next/server/page.js":        `x`,
		"next.config.js":              `module.exports = {};`,
	})
	defer cleanup()

	if len(tree.Modules) != 2 {
		t.Fatalf("Expected 2 modules (page + next.config), got %d", len(tree.Modules))
	}
	if tree.ByRel("src/types.d.ts") != nil {
		t.Error("Declaration files should be skipped")
	}
	if tree.ByRel("node_modules/react/index.js") != nil {
		t.Error("node_modules should be skipped")
	}
}

func TestCanonicalPath(t *testing.T) {
	tree, cleanup := loadTestTree(t, map[string]string{
		"src/app/page.tsx": `export default function Page() {}`,
	})
	defer cleanup()

	cases := map[string]string{
		"src/components/header.tsx":  "@/components/header",
		"src/components/ui/index.ts": "@/components/ui",
		"src/lib/utils.ts":           "@/lib/utils",
		"next.config.js":             "",
	}
	for in, want := range cases {
		if got := tree.CanonicalPath(in); got != want {
			t.Errorf("CanonicalPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestResolveAliasAndRelative(t *testing.T) {
	tree, cleanup := loadTestTree(t, map[string]string{
		"src/app/page.tsx":           `import Header from '@/components/header';`,
		"src/components/header.tsx":  `export default function Header() {}`,
		"src/components/ui/index.ts": `export const Button = 1;`,
	})
	defer cleanup()

	from := tree.ByRel("src/app/page.tsx")

	if m := tree.Resolve("@/components/header", from); m == nil || m.RelPath != "src/components/header.tsx" {
		t.Error("Alias specifier should resolve to the header module")
	}
	if m := tree.Resolve("../components/header", from); m == nil {
		t.Error("Relative specifier should resolve through the importing module's directory")
	}
	if m := tree.Resolve("@/components/ui/index", from); m == nil {
		t.Error("Explicit /index suffix should still resolve")
	}
	if m := tree.Resolve("react", from); m != nil {
		t.Error("External specifiers should not resolve")
	}
}

func TestTargetModules(t *testing.T) {
	tree, cleanup := loadTestTree(t, map[string]string{
		"src/app/page.tsx":          `export default function Page() {}`,
		"src/components/header.tsx": `export default function Header() {}`,
		"next.config.js":            `module.exports = {};`,
	})
	defer cleanup()

	all, err := tree.TargetModules(nil)
	if err != nil {
		t.Fatalf("TargetModules(nil) failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 in-scope modules, got %d", len(all))
	}

	// Accepted forms: root-relative, source-relative, canonical.
	for _, target := range []string{"src/app/page.tsx", "app/page.tsx", "@/app/page"} {
		got, err := tree.TargetModules([]string{target})
		if err != nil {
			t.Errorf("TargetModules(%q) failed: %v", target, err)
			continue
		}
		if len(got) != 1 || got[0].RelPath != "src/app/page.tsx" {
			t.Errorf("TargetModules(%q): expected page module, got %v", target, got)
		}
	}

	if _, err := tree.TargetModules([]string{"src/app/missing.tsx"}); err == nil {
		t.Error("Expected error for unknown target")
	}
}

func TestFlushWritesOnlyDirtyModules(t *testing.T) {
	tree, cleanup := loadTestTree(t, map[string]string{
		"src/a.ts": "export const a = 1;\n",
		"src/b.ts": "export const b = 2;\n",
	})
	defer cleanup()

	a := tree.ByRel("src/a.ts")
	a.Body = append(a.Body, "export const extra = 3;")
	a.Dirty = true

	written, err := tree.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(written) != 1 || written[0] != "src/a.ts" {
		t.Errorf("Expected only src/a.ts written, got %v", written)
	}
	if a.Dirty {
		t.Error("Flush should clear the dirty flag")
	}

	data, err := os.ReadFile(filepath.Join(tree.Cfg.Root, "src", "a.ts"))
	if err != nil {
		t.Fatalf("Failed to read flushed file: %v", err)
	}
	want := "export const a = 1;\nexport const extra = 3;\n"
	if string(data) != want {
		t.Errorf("Flushed content mismatch:\n  want: %q\n  got:  %q", want, string(data))
	}
}
