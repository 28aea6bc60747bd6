// Package profile describes a Python project for the full report: its
// name, the kind of system it looks like and its structural size.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"codehunter/internal/parser"
)

// DefaultType is used when no framework keyword is found in the imports.
const DefaultType = "Modular Python system"

// frameworks maps import keywords to the kind of system they suggest. A
// keyword matches any imported module containing it.
var frameworks = []struct {
	keyword string
	label   string
}{
	{"flask", "Flask web application"},
	{"fastapi", "FastAPI REST API"},
	{"django", "Django web application"},
	{"pygame", "Interactive system or game built with Pygame"},
	{"tkinter", "Tkinter desktop application"},
	{"openai", "System with AI integration (OpenAI)"},
	{"torch", "Machine learning system (PyTorch)"},
	{"tensorflow", "Machine learning system (TensorFlow)"},
	{"argparse", "Command-line application (CLI)"},
	{"click", "Professional CLI application"},
	{"requests", "System integrating external services over HTTP"},
}

// Structure counts the project's building blocks.
type Structure struct {
	PythonFiles int `json:"python_files" yaml:"python_files"`
	Functions   int `json:"functions" yaml:"functions"`
	Classes     int `json:"classes" yaml:"classes"`
}

// Profile is the descriptive block of the full report.
type Profile struct {
	Name        string    `json:"name" yaml:"name"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	Type        string    `json:"type" yaml:"type"`
	Description string    `json:"description" yaml:"description"`
	Structure   Structure `json:"structure" yaml:"structure"`
}

// Builder accumulates a profile while the orchestrator visits files.
type Builder struct {
	structure Structure
	counts    map[string]int
	order     []string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{counts: make(map[string]int)}
}

// AddFile counts one walked source file, parsed or not.
func (b *Builder) AddFile() {
	b.structure.PythonFiles++
}

// AddUnit counts the functions, classes and framework imports of a parsed
// file.
func (b *Builder) AddUnit(unit *parser.Unit) {
	b.countDefinitions(unit)
	for _, imp := range unit.Imports() {
		if imp.Future {
			continue
		}
		if imp.From {
			if imp.Module != "" {
				b.addImport(imp.Module)
			}
			continue
		}
		for _, n := range imp.Names {
			b.addImport(n.Name)
		}
	}
}

func (b *Builder) addImport(module string) {
	module = strings.ToLower(module)
	for _, fw := range frameworks {
		if !strings.Contains(module, fw.keyword) {
			continue
		}
		if _, seen := b.counts[fw.label]; !seen {
			b.order = append(b.order, fw.label)
		}
		b.counts[fw.label]++
	}
}

// Type returns the most frequent framework label; ties go to the label
// seen first.
func (b *Builder) Type() string {
	best, bestCount := DefaultType, 0
	for _, label := range b.order {
		if c := b.counts[label]; c > bestCount {
			best, bestCount = label, c
		}
	}
	return best
}

// Build returns the profile of the project at root.
func (b *Builder) Build(root string) Profile {
	meta := ReadMetadata(root)
	p := Profile{
		Name:      meta.Name,
		Version:   meta.Version,
		Type:      b.Type(),
		Structure: b.structure,
	}
	p.Description = fmt.Sprintf(
		"%s named '%s', made up of %d Python modules, %d functions and %d classes. "+
			"The project was analyzed by static inspection to assess quality, "+
			"technical risks and internal consistency.",
		p.Type, p.Name, p.Structure.PythonFiles, p.Structure.Functions, p.Structure.Classes)
	return p
}

// Metadata is the project identity declared in pyproject.toml.
type Metadata struct {
	Name    string
	Version string
}

type pyproject struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ReadMetadata reads [project] or [tool.poetry] from root/pyproject.toml.
// A missing or malformed file, or a missing name, falls back to the base
// name of root.
func ReadMetadata(root string) Metadata {
	meta := Metadata{Name: filepath.Base(filepath.Clean(root))}

	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return meta
	}
	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		return meta
	}

	switch {
	case pp.Project.Name != "":
		meta.Name = pp.Project.Name
		meta.Version = pp.Project.Version
	case pp.Tool.Poetry.Name != "":
		meta.Name = pp.Tool.Poetry.Name
		meta.Version = pp.Tool.Poetry.Version
	}
	return meta
}
