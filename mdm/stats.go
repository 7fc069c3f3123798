package mdm

import (
	"strings"

	"github.com/etnz/inky"
	"github.com/shopspring/decimal"
)

// DevicePrice is the cash price of every financed device.
var DevicePrice = THB(25000)

// Filter selects devices in the devices view.
type Filter struct {
	Tenant string       // tenant name, AllTenants or "" for every device
	Query  string       // matched case-insensitively against name, user and model
	Status DeviceStatus // "" for every status
}

func (f Filter) match(d Device) bool {
	if f.Tenant != "" && f.Tenant != AllTenants && d.Tenant != f.Tenant {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.User), q) &&
			!strings.Contains(strings.ToLower(d.Model), q) {
			return false
		}
	}
	return f.Status == "" || d.Status == f.Status
}

// FilterDevices returns the devices matching the filter, in dataset order.
func (d *Dataset) FilterDevices(f Filter) []Device {
	var devices []Device
	for _, dev := range d.Devices {
		if f.match(dev) {
			devices = append(devices, dev)
		}
	}
	return devices
}

// Revenue is what the customer pays over the whole contract: the device
// price plus the interest of its plan. Unknown plans carry no interest.
func (d *Dataset) Revenue(f Financing) Baht {
	p, _ := d.Plan(f.Months())
	rate := decimal.NewFromFloat(p.InterestRate).Shift(-2)
	return Baht{DevicePrice.value.Mul(rate.Add(decimal.NewFromInt(1)))}
}

// Installment is the monthly amount of a contract.
func (d *Dataset) Installment(f Financing) Baht {
	if f.Total <= 0 {
		return Baht{}
	}
	return d.Revenue(f).Div(f.Total)
}

// OverviewStats are the headline figures of the overview tab.
type OverviewStats struct {
	Total    int  `json:"total"`
	Online   int  `json:"online"`
	Warning  int  `json:"warning"`
	Offline  int  `json:"offline"`
	Financed int  `json:"financed"`
	Revenue  Baht `json:"revenue"`
}

// Overview computes the overview figures of a list of devices.
func (d *Dataset) Overview(devices []Device) OverviewStats {
	s := OverviewStats{Total: len(devices)}
	for _, dev := range devices {
		switch dev.Status {
		case Online:
			s.Online++
		case Warning:
			s.Warning++
		case Offline:
			s.Offline++
		}
		if dev.Financing != nil {
			s.Financed++
			s.Revenue = s.Revenue.Add(d.Revenue(*dev.Financing))
		}
	}
	return s
}

// FinancingStats are the figures of the financing tab.
type FinancingStats struct {
	Revenue         Baht         `json:"revenue"`
	CollectionRate  inky.Percent `json:"collectionRate"`
	ActiveContracts int          `json:"activeContracts"`
	OverdueAmount   Baht         `json:"overdueAmount"`
	Plans           []PlanStats  `json:"plans"`
}

// PlanStats are the figures of one financing plan.
type PlanStats struct {
	Plan    FinancingPlan `json:"plan"`
	Count   int           `json:"count"`
	Revenue Baht          `json:"revenue"`
	OnTime  int           `json:"onTime"`
	Overdue int           `json:"overdue"`
}

// OnTimeRate is the share of on-time contracts, 0 without contracts.
func (p PlanStats) OnTimeRate() inky.Percent {
	if p.Count == 0 {
		return 0
	}
	return inky.Percent(float64(p.OnTime) / float64(p.Count) * 100)
}

// Financing computes the financing figures of a list of devices. The
// overdue amount counts one missed installment per overdue contract.
func (d *Dataset) Financing(devices []Device) FinancingStats {
	var s FinancingStats
	onTime := 0
	for _, dev := range devices {
		f := dev.Financing
		if f == nil {
			continue
		}
		s.ActiveContracts++
		s.Revenue = s.Revenue.Add(d.Revenue(*f))
		switch f.Status {
		case OnTime:
			onTime++
		case Overdue:
			s.OverdueAmount = s.OverdueAmount.Add(d.Installment(*f))
		}
	}
	if s.ActiveContracts > 0 {
		s.CollectionRate = inky.Percent(float64(onTime) / float64(s.ActiveContracts) * 100)
	}
	for _, p := range d.Plans {
		s.Plans = append(s.Plans, d.PlanStats(devices, p.Months))
	}
	return s
}

// PlanStats computes the figures of the plan of the given duration.
func (d *Dataset) PlanStats(devices []Device, months int) PlanStats {
	p, ok := d.Plan(months)
	if !ok {
		p = FinancingPlan{Months: months}
	}
	s := PlanStats{Plan: p}
	for _, dev := range devices {
		f := dev.Financing
		if f == nil || f.Months() != months {
			continue
		}
		s.Count++
		s.Revenue = s.Revenue.Add(d.Revenue(*f))
		switch f.Status {
		case OnTime:
			s.OnTime++
		case Overdue:
			s.Overdue++
		}
	}
	return s
}
