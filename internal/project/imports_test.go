package project

import (
	"strings"
	"testing"

	"importfix/pkg/types"
)

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseImportDefault(t *testing.T) {
	d := ParseImport(`import Header from '@/components/header';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if d.Default != "Header" {
		t.Errorf("Expected default 'Header', got '%s'", d.Default)
	}
	if d.Specifier != "@/components/header" {
		t.Errorf("Expected specifier '@/components/header', got '%s'", d.Specifier)
	}
}

func TestParseImportNamed(t *testing.T) {
	d := ParseImport(`import { Button, Card as UICard } from '@/components/ui/button';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if len(d.Named) != 2 {
		t.Fatalf("Expected 2 named bindings, got %d", len(d.Named))
	}
	if d.Named[1] != "Card as UICard" {
		t.Errorf("Expected alias entry 'Card as UICard', got '%s'", d.Named[1])
	}
	if LocalName(d.Named[1]) != "UICard" {
		t.Errorf("Expected local name 'UICard', got '%s'", LocalName(d.Named[1]))
	}
	if ExportedName(d.Named[1]) != "Card" {
		t.Errorf("Expected exported name 'Card', got '%s'", ExportedName(d.Named[1]))
	}
}

func TestParseImportCombo(t *testing.T) {
	d := ParseImport(`import React, { useState, useEffect } from 'react';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if d.Default != "React" {
		t.Errorf("Expected default 'React', got '%s'", d.Default)
	}
	if len(d.Named) != 2 {
		t.Errorf("Expected 2 named bindings, got %d", len(d.Named))
	}
}

func TestParseImportNamespace(t *testing.T) {
	d := ParseImport(`import * as z from 'zod';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if d.Namespace != "z" {
		t.Errorf("Expected namespace 'z', got '%s'", d.Namespace)
	}
}

func TestParseImportSideEffect(t *testing.T) {
	d := ParseImport(`import './globals.css';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if !d.SideEffect {
		t.Error("Expected side-effect import")
	}
	if d.Specifier != "./globals.css" {
		t.Errorf("Expected specifier './globals.css', got '%s'", d.Specifier)
	}
}

func TestParseImportTypeOnly(t *testing.T) {
	d := ParseImport(`import type { Metadata } from 'next';`)
	if d == nil {
		t.Fatal("ParseImport returned nil")
	}
	if !d.TypeOnly {
		t.Error("Expected type-only import")
	}
	if len(d.Named) != 1 || d.Named[0] != "Metadata" {
		t.Errorf("Expected named [Metadata], got %v", d.Named)
	}
}

func TestParseImportNotAnImport(t *testing.T) {
	for _, line := range []string{
		`const x = 1;`,
		`import(something).then()`,
		`export { Foo } from './foo';`,
	} {
		if d := ParseImport(line); d != nil {
			t.Errorf("Expected nil for %q, got %+v", line, d)
		}
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestRenderImportSingleLine(t *testing.T) {
	d := &types.ImportDecl{Specifier: "react", Named: []string{"useEffect", "useState"}}
	lines := RenderImport(d)
	if len(lines) != 1 {
		t.Fatalf("Expected single line, got %d", len(lines))
	}
	want := `import { useEffect, useState } from 'react';`
	if lines[0] != want {
		t.Errorf("Expected %q, got %q", want, lines[0])
	}
}

func TestRenderImportMultiLine(t *testing.T) {
	d := &types.ImportDecl{
		Specifier: "lucide-react",
		Named:     []string{"ArrowRight", "Check", "Menu", "X"},
	}
	lines := RenderImport(d)
	if len(lines) != 6 {
		t.Fatalf("Expected 6 lines for 4 named bindings, got %d: %v", len(lines), lines)
	}
	if lines[0] != "import {" {
		t.Errorf("Expected opening 'import {', got %q", lines[0])
	}
	if lines[1] != "  ArrowRight," {
		t.Errorf("Expected '  ArrowRight,', got %q", lines[1])
	}
	if lines[4] != "  X" {
		t.Errorf("Expected last binding without comma, got %q", lines[4])
	}
	if lines[5] != "} from 'lucide-react';" {
		t.Errorf("Expected closing from line, got %q", lines[5])
	}
}

func TestRenderImportRoundTrip(t *testing.T) {
	stmts := []string{
		`import Header from '@/components/header';`,
		`import { Button } from '@/components/ui/button';`,
		`import React, { useState } from 'react';`,
		`import * as z from 'zod';`,
		`import './globals.css';`,
		`import type { Metadata } from 'next';`,
	}
	for _, stmt := range stmts {
		d := ParseImport(stmt)
		if d == nil {
			t.Errorf("ParseImport(%q) returned nil", stmt)
			continue
		}
		rendered := strings.Join(RenderImport(d), "\n")
		if rendered != stmt {
			t.Errorf("Round trip changed statement:\n  in:  %s\n  out: %s", stmt, rendered)
		}
	}
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestAddNamedDedupesAndSorts(t *testing.T) {
	d := &types.ImportDecl{Specifier: "react", Named: []string{"useState"}}
	AddNamed(d, "useEffect")
	AddNamed(d, "useState")

	if len(d.Named) != 2 {
		t.Fatalf("Expected 2 named bindings after dedupe, got %d", len(d.Named))
	}
	if d.Named[0] != "useEffect" || d.Named[1] != "useState" {
		t.Errorf("Expected sorted [useEffect useState], got %v", d.Named)
	}
}

func TestRemoveNamed(t *testing.T) {
	d := &types.ImportDecl{Specifier: "x", Named: []string{"A", "B as C"}}

	if !RemoveNamed(d, "C") {
		t.Error("Expected RemoveNamed to match local name of alias entry")
	}
	if RemoveNamed(d, "missing") {
		t.Error("Expected false for absent binding")
	}
	if len(d.Named) != 1 || d.Named[0] != "A" {
		t.Errorf("Expected remaining [A], got %v", d.Named)
	}
}
