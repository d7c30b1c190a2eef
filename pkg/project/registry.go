package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrProjectExists is returned when creating a project whose directory is
// already taken.
var ErrProjectExists = errors.New("project: a project with this name already exists")

// ErrProjectNotFound is returned when importing from a path that does not
// exist.
var ErrProjectNotFound = errors.New("project: not found")

// Registry tracks known project files in a YAML config so sessions survive
// restarts.
type Registry struct {
	path string
}

type registryFile struct {
	Projects []string `yaml:"projects"`
}

// DefaultRegistryPath locates the per-user config file.
func DefaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kiln", "config.yaml")
	}
	return filepath.Join(home, ".kiln", "config.yaml")
}

// OpenRegistry returns a registry backed by the given config path. The file
// is created lazily on first write.
func OpenRegistry(path string) *Registry {
	if path == "" {
		path = DefaultRegistryPath()
	}
	return &Registry{path: path}
}

// Create makes a directory for the project under baseDir, writes its
// project.json, and records it in the registry. Returns the project file path.
func (r *Registry) Create(baseDir string, p Project) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	dir := filepath.Join(baseDir, p.Name)
	if _, err := os.Stat(dir); err == nil {
		return "", ErrProjectExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("project: stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("project: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	if err := p.Save(path); err != nil {
		return "", err
	}
	if err := r.add(path); err != nil {
		return "", err
	}
	return path, nil
}

// Import loads an existing project file and records it in the registry.
func (r *Registry) Import(path string) (Project, error) {
	if path == "" {
		return Project{}, ErrProjectNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, path)
	}
	p, err := Load(path)
	if err != nil {
		return Project{}, err
	}
	if err := r.add(path); err != nil {
		return Project{}, err
	}
	return p, nil
}

// List loads every registered project, skipping entries that no longer load
// so a single broken path doesn't hide the rest.
func (r *Registry) List() ([]Project, error) {
	paths, err := r.Paths()
	if err != nil {
		return nil, err
	}
	projects := make([]Project, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Paths returns the registered project file paths in registration order.
func (r *Registry) Paths() ([]string, error) {
	state, err := r.read()
	if err != nil {
		return nil, err
	}
	return state.Projects, nil
}

func (r *Registry) add(path string) error {
	state, err := r.read()
	if err != nil {
		return err
	}
	for _, existing := range state.Projects {
		if existing == path {
			return nil
		}
	}
	state.Projects = append(state.Projects, path)
	return r.write(state)
}

func (r *Registry) read() (registryFile, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return registryFile{}, nil
	}
	if err != nil {
		return registryFile{}, fmt.Errorf("project: read registry: %w", err)
	}
	var state registryFile
	if err := yaml.Unmarshal(data, &state); err != nil {
		return registryFile{}, fmt.Errorf("project: decode registry: %w", err)
	}
	return state, nil
}

func (r *Registry) write(state registryFile) error {
	payload, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("project: encode registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("project: create registry dir: %w", err)
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return fmt.Errorf("project: write registry: %w", err)
	}
	return nil
}
