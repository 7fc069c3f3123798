package mdm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed dataset.json
var defaultDataset []byte

// Dataset is the static content of the dashboard.
type Dataset struct {
	Tenants    []Tenant        `json:"tenants"`
	Devices    []Device        `json:"devices"`
	Plans      []FinancingPlan `json:"plans"`
	Operations []Operation     `json:"operations"`
	Activities []Activity      `json:"activities"`
}

// DefaultDataset returns the dataset embedded in the binary.
func DefaultDataset() *Dataset {
	d, err := DecodeDataset(strings.NewReader(string(defaultDataset)))
	if err != nil {
		panic(fmt.Sprintf("embedded dataset is invalid: %v", err))
	}
	return d
}

// LoadDataset reads a dataset file, or the default one if filename is empty.
func LoadDataset(filename string) (*Dataset, error) {
	if filename == "" {
		return DefaultDataset(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode dataset %q: %w", filename, err)
	}
	return d, nil
}

// DecodeDataset reads a JSON dataset.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var d Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Tenant finds a tenant by id or name. The AllTenants pseudo tenant is
// always found.
func (d *Dataset) Tenant(key string) (Tenant, bool) {
	if strings.EqualFold(key, AllTenants) {
		return Tenant{ID: "all", Name: AllTenants}, true
	}
	for _, t := range d.Tenants {
		if t.ID == key || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return Tenant{}, false
}

// Device finds a device by id.
func (d *Dataset) Device(id string) (Device, bool) {
	for _, dev := range d.Devices {
		if dev.ID == id {
			return dev, true
		}
	}
	return Device{}, false
}

// Plan finds the financing plan of the given duration.
func (d *Dataset) Plan(months int) (FinancingPlan, bool) {
	for _, p := range d.Plans {
		if p.Months == months {
			return p, true
		}
	}
	return FinancingPlan{}, false
}

// Operation finds an operation by id.
func (d *Dataset) Operation(id string) (Operation, bool) {
	for _, op := range d.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// OperationGroup is a category of the operations picker.
type OperationGroup struct {
	Category   OperationCategory `json:"category"`
	Operations []Operation       `json:"operations"`
}

// OperationsByCategory groups the operations in picker order, skipping
// categories without operations.
func (d *Dataset) OperationsByCategory() []OperationGroup {
	var groups []OperationGroup
	for _, c := range OperationCategories() {
		var ops []Operation
		for _, op := range d.Operations {
			if op.Category == c {
				ops = append(ops, op)
			}
		}
		if len(ops) > 0 {
			groups = append(groups, OperationGroup{Category: c, Operations: ops})
		}
	}
	return groups
}
