// Package mdm models a multi-tenant mobile device management dashboard:
// tenants, enrolled iOS devices, their financing plans and the operations an
// operator can send to a device.
package mdm

import (
	"fmt"
	"strconv"
	"strings"
)

// AllTenants is the name of the pseudo tenant that matches every device.
const AllTenants = "All Tenants"

// Tenant is a reseller owning a fleet of devices.
type Tenant struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Stats TenantStats `json:"stats"`
}

// TenantStats are the headline figures shown in the tenant picker.
type TenantStats struct {
	Devices         int    `json:"devices"`
	Revenue         string `json:"revenue"`
	ActiveFinancing int    `json:"activeFinancing"`
}

// DeviceStatus is the connectivity status of a device.
type DeviceStatus string

const (
	Online  DeviceStatus = "online"
	Offline DeviceStatus = "offline"
	Warning DeviceStatus = "warning"
)

// ParseDeviceStatus parses a status filter. "all" and "" return ok=false,
// meaning no filtering.
func ParseDeviceStatus(s string) (status DeviceStatus, ok bool, err error) {
	switch DeviceStatus(strings.ToLower(s)) {
	case "", "all":
		return "", false, nil
	case Online, Offline, Warning:
		return DeviceStatus(strings.ToLower(s)), true, nil
	}
	return "", false, fmt.Errorf("invalid device status %q: must be all, online, offline or warning", s)
}

// Device is an enrolled phone.
type Device struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Model        string       `json:"model"`
	User         string       `json:"user"`
	LastSeen     string       `json:"lastSeen"`
	BatteryLevel int          `json:"batteryLevel"`
	Location     string       `json:"location"`
	OSVersion    string       `json:"osVersion"`
	Tenant       string       `json:"tenant"`
	Status       DeviceStatus `json:"status"`
	Financing    *Financing   `json:"financing,omitempty"`
}

// LowBattery reports whether the battery level is below 20%.
func (d Device) LowBattery() bool { return d.BatteryLevel < 20 }

// PaymentStatus is the state of a financing contract.
type PaymentStatus string

const (
	OnTime    PaymentStatus = "on-time"
	Overdue   PaymentStatus = "overdue"
	Completed PaymentStatus = "completed"
)

// Financing is the installment contract of a device.
type Financing struct {
	Plan        string        `json:"plan"` // "3-month", "6-month" or "12-month"
	Paid        int           `json:"paid"`
	Total       int           `json:"total"`
	NextPayment string        `json:"nextPayment"`
	Status      PaymentStatus `json:"status"`
}

// Months parses the plan duration, 0 if the plan is malformed.
func (f Financing) Months() int {
	n, err := strconv.Atoi(strings.TrimSuffix(f.Plan, "-month"))
	if err != nil {
		return 0
	}
	return n
}

// FinancingPlan is an offer available to customers.
type FinancingPlan struct {
	Months       int     `json:"months"`
	InterestRate float64 `json:"interestRate"` // in percent
	Label        string  `json:"label"`
}

// OperationCategory groups device operations in the picker.
type OperationCategory string

// OperationCategories returns the categories in picker order.
func OperationCategories() []OperationCategory {
	return []OperationCategory{
		"test", "reset", "security", "communication", "customization",
		"maintenance", "system", "mode", "apps", "restrictions",
		"management", "information",
	}
}

// Operation is a remote command that can be sent to a device.
type Operation struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Category OperationCategory `json:"category"`
}

// Activity is an entry of the recent activity feed.
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // enrollment, payment, command or alert
	Description string `json:"description"`
	Time        string `json:"time"`
}

// Tab is a dashboard view.
type Tab string

const (
	Overview     Tab = "overview"
	Devices      Tab = "devices"
	FinancingTab Tab = "financing"
	Applications Tab = "applications"
	Policies     Tab = "policies"
	Analytics    Tab = "analytics"
	Users        Tab = "users"
	Settings     Tab = "settings"
)

// Tabs returns the tabs in navigation order.
func Tabs() []Tab {
	return []Tab{Overview, Devices, FinancingTab, Applications, Policies, Analytics, Users, Settings}
}

// ParseTab parses a tab id.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if string(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid tab %q", s)
}
