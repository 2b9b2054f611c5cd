package driver

import (
	"sort"
	"sync"
)

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterVideoRecorder return a filter function to get a list of registered VideoRecorders
func FilterVideoRecorder() FilterFn {
	return func(d Driver) bool {
		_, ok := d.(VideoRecorder)
		return ok
	}
}

// FilterAudioRecorder return a filter function to get a list of registered AudioRecorders
func FilterAudioRecorder() FilterFn {
	return func(d Driver) bool {
		_, ok := d.(AudioRecorder)
		return ok
	}
}

// FilterDeviceType returns a filter function to match specified device type.
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterID returns a filter function to match specified ID.
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// FilterNot returns a filter function to take logical inverse of given filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

var manager = NewManager()

// NewManager creates an empty Manager. Most callers want GetManager.
func NewManager() *Manager {
	return &Manager{drivers: make(map[string]Driver)}
}

// GetManager gets manager singleton instance
func GetManager() *Manager {
	return manager
}

// Register registers adapter to be discoverable by Query
func (m *Manager) Register(a Adapter, info Info) error {
	d, err := wrapAdapter(a, info)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.drivers[d.ID()] = d
	m.mu.Unlock()
	return nil
}

// Unregister removes the driver with the given ID. Unknown IDs are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	delete(m.drivers, id)
	m.mu.Unlock()
}

// Query queries by using f to filter drivers, and simply return the filtered results.
// Results are ordered by priority, highest first.
func (m *Manager) Query(f FilterFn) []Driver {
	m.mu.RLock()
	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if ok := f(d); ok {
			results = append(results, d)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := results[i].Info().Priority, results[j].Info().Priority
		if pi != pj {
			return pi > pj
		}
		return results[i].Info().Label < results[j].Info().Label
	})
	return results
}
