package storage

import "github.com/joshuapare/jbkv"

// storageData is a layered NodeData view over an ordered, non-empty list of
// underlying NodeData layers (bottom to top = lowest to highest priority),
// grounded on the original implementation's StorageNodeData.
type storageData struct {
	layers []jbkv.NodeData // bottom first, top last
}

func newStorageData(layers []jbkv.NodeData) *storageData {
	if len(layers) == 0 {
		panic("storage: storageData requires at least one layer")
	}
	return &storageData{layers: layers}
}

// Read probes layers from top to bottom and returns the first hit.
func (d *storageData) Read(key string) (jbkv.Value, bool) {
	for i := len(d.layers) - 1; i >= 0; i-- {
		if v, ok := d.layers[i].Read(key); ok {
			return v, true
		}
	}
	return jbkv.Value{}, false
}

// Write keeps an existing key on its original layer (Update on the topmost
// layer that already has it); a brand-new key lands on the topmost layer.
// This is the resolved Open Question from spec.md §9: write/update
// symmetry, so a write to an existing key never migrates it to a different
// layer and unmount cleanly restores the pre-mount view.
func (d *storageData) Write(key string, value jbkv.Value) {
	if d.Update(key, value) {
		return
	}
	d.topLayer().Write(key, value)
}

// Update probes top to bottom and updates the first layer containing key.
func (d *storageData) Update(key string, value jbkv.Value) bool {
	for i := len(d.layers) - 1; i >= 0; i-- {
		if d.layers[i].Update(key, value) {
			return true
		}
	}
	return false
}

// Remove deletes key from every layer that contains it.
func (d *storageData) Remove(key string) bool {
	result := false
	for i := len(d.layers) - 1; i >= 0; i-- {
		if d.layers[i].Remove(key) {
			result = true
		}
	}
	return result
}

// Enumerate walks layers top to bottom, yielding each key on first sighting
// and suppressing duplicates from lower layers.
func (d *storageData) Enumerate() []jbkv.KeyValue {
	used := make(map[string]struct{})
	var result []jbkv.KeyValue
	for i := len(d.layers) - 1; i >= 0; i-- {
		for _, kv := range d.layers[i].Enumerate() {
			if _, ok := used[kv.Key]; ok {
				continue
			}
			used[kv.Key] = struct{}{}
			result = append(result, kv)
		}
	}
	return result
}

func (d *storageData) topLayer() jbkv.NodeData {
	return d.layers[len(d.layers)-1]
}
