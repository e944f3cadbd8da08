// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// SaveRegistry writes reg as indented JSON.
func SaveRegistry(path string, reg *ActivityRegistry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity with id.
func (r *ActivityRegistry) Find(id string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Diff lists how got departs from want, one line per activity. Schemas are
// compared after a JSON round trip so numeric and slice types match.
func Diff(want, got *ActivityRegistry) ([]string, error) {
	var out []string
	for _, w := range want.Activities {
		g, ok := got.Find(w.ID)
		if !ok {
			out = append(out, fmt.Sprintf("%s: missing", w.ID))
			continue
		}
		same, err := sameActivity(w, g)
		if err != nil {
			return nil, err
		}
		if !same {
			out = append(out, fmt.Sprintf("%s: out of date", w.ID))
		}
	}
	for _, g := range got.Activities {
		if _, ok := want.Find(g.ID); !ok {
			out = append(out, fmt.Sprintf("%s: not served by any worker", g.ID))
		}
	}
	sort.Strings(out)
	return out, nil
}

func sameActivity(a, b Activity) (bool, error) {
	na, err := normalize(a)
	if err != nil {
		return false, err
	}
	nb, err := normalize(b)
	if err != nil {
		return false, err
	}
	return reflect.DeepEqual(na, nb), nil
}

func normalize(a Activity) (interface{}, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var v interface{}
	err = json.Unmarshal(data, &v)
	return v, err
}
