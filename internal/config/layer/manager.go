package layer

import (
	"fmt"
	"sort"
	"sync"
)

// Manager manages configuration layers and resolves values across them.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // Sorted by priority (ascending)
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddLayer adds a layer to the manager, replacing any layer with the same
// name. Layers are automatically sorted by priority.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexLocked(layer.Name); i >= 0 {
		m.layers[i] = layer
	} else {
		m.layers = append(m.layers, layer)
	}
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// Layers returns a copy of all layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// Get returns the effective value for a setting path and the layer it came
// from. Values scoped to scope win over unscoped values in any layer; within
// each pass the highest priority layer wins.
func (m *Manager) Get(path, scope string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if scope != "" {
		for i := len(m.layers) - 1; i >= 0; i-- {
			if val, ok := m.layers[i].GetScoped(scope, path); ok {
				return val, m.layers[i], true
			}
		}
	}

	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := m.layers[i].Get(path); ok {
			return val, m.layers[i], true
		}
	}

	return nil, nil, false
}

// Set sets a value in the named layer.
func (m *Manager) Set(layerName, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(layerName)
	if i < 0 {
		return fmt.Errorf("layer %q not found", layerName)
	}
	SetByPath(m.layers[i].Data, path, value)
	return nil
}

// SetScoped sets a value for scope in the named layer.
func (m *Manager) SetScoped(layerName, scope, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(layerName)
	if i < 0 {
		return fmt.Errorf("layer %q not found", layerName)
	}
	SetScoped(m.layers[i].Data, scope, path, value)
	return nil
}

// UpdateLayer replaces all data in the named layer.
func (m *Manager) UpdateLayer(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(name)
	if i < 0 {
		return fmt.Errorf("layer %q not found", name)
	}
	if data == nil {
		data = make(map[string]any)
	}
	m.layers[i].Data = data
	return nil
}

func (m *Manager) indexLocked(name string) int {
	for i, layer := range m.layers {
		if layer.Name == name {
			return i
		}
	}
	return -1
}
