package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"importfix/pkg/types"
)

// Default tool configuration, used when .importfix.json is absent.
var (
	defaultUtility = types.UtilityImport{Symbol: "cn", Path: "@/lib/utils"}

	defaultNormalizeTargets = []string{
		"components/header",
		"components/footer",
	}
)

// Config holds everything the engine needs to know about a project:
// where its source root is, which alias prefix stands in for it, and
// the tool-level settings (utility symbol, normalization targets).
type Config struct {
	Root      string // absolute project root
	SourceRel string // source root relative to Root, e.g. "src"
	Alias     string // alias prefix, e.g. "@"
	Utility   types.UtilityImport
	Normalize []string // module paths relative to the source root
}

// SourceRoot returns the absolute path of the source root.
func (c *Config) SourceRoot() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.SourceRel))
}

// tsconfigFile is the subset of tsconfig.json the engine reads.
type tsconfigFile struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadConfig reads tsconfig.json (required) and .importfix.json
// (optional) from root. A missing or unreadable tsconfig is fatal.
func LoadConfig(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	tsconfigPath := filepath.Join(absRoot, "tsconfig.json")
	data, err := os.ReadFile(tsconfigPath)
	if err != nil {
		return nil, fmt.Errorf("project configuration: %w", err)
	}

	var tsc tsconfigFile
	if err := json.Unmarshal(stripJSONComments(data), &tsc); err != nil {
		return nil, fmt.Errorf("project configuration %s: %w", tsconfigPath, err)
	}

	alias, sourceRel, err := aliasMapping(&tsc)
	if err != nil {
		return nil, fmt.Errorf("project configuration %s: %w", tsconfigPath, err)
	}

	cfg := &Config{
		Root:      absRoot,
		SourceRel: sourceRel,
		Alias:     alias,
		Utility:   defaultUtility,
		Normalize: append([]string(nil), defaultNormalizeTargets...),
	}

	if err := applyToolConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// aliasMapping extracts the single-segment alias prefix and the source
// root from compilerOptions.paths, e.g. "@/*": ["./src/*"].
func aliasMapping(tsc *tsconfigFile) (alias, sourceRel string, err error) {
	keys := make([]string, 0, len(tsc.CompilerOptions.Paths))
	for k := range tsc.CompilerOptions.Paths {
		keys = append(keys, k)
	}
	// Deterministic pick when several mappings exist.
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasSuffix(key, "/*") {
			continue
		}
		prefix := strings.TrimSuffix(key, "/*")
		if prefix == "" || strings.Contains(prefix, "/") {
			continue // alias must be a single segment
		}
		targets := tsc.CompilerOptions.Paths[key]
		if len(targets) == 0 {
			continue
		}
		target := strings.TrimSuffix(targets[0], "/*")
		target = strings.TrimPrefix(target, "./")
		if target == "" {
			target = "."
		}
		return prefix, target, nil
	}
	return "", "", fmt.Errorf("no alias path mapping found in compilerOptions.paths")
}

// applyToolConfig overlays .importfix.json onto the defaults.
func applyToolConfig(cfg *Config) error {
	path := filepath.Join(cfg.Root, ".importfix.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("tool configuration %s: %w", path, err)
	}

	var tc types.ToolConfig
	if err := json.Unmarshal(data, &tc); err != nil {
		return fmt.Errorf("tool configuration %s: %w", path, err)
	}
	if tc.Utility != nil && tc.Utility.Symbol != "" && tc.Utility.Path != "" {
		cfg.Utility = *tc.Utility
	}
	if tc.Normalize != nil {
		cfg.Normalize = tc.Normalize
	}
	return nil
}

// stripJSONComments removes // and /* */ comments so tsconfig files,
// which allow them, can be decoded as plain JSON. String contents are
// preserved.
func stripJSONComments(data []byte) []byte {
	var out []byte
	inString := false
	inLine := false
	inBlock := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				out = append(out, c)
			}
		case inBlock:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				inBlock = false
				i++
			}
		case inString:
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				i++
				out = append(out, data[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			inLine = true
			i++
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			inBlock = true
			i++
		default:
			out = append(out, c)
		}
	}
	return out
}
