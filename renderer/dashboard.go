package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/inky/mdm"
	md "github.com/nao1215/markdown"
)

// Dashboard is the content of one dashboard tab.
type Dashboard struct {
	Data   *mdm.Dataset
	View   mdm.View
	Filter mdm.Filter // applied on top of the selected tenant in the devices tab
}

type placeholder struct{ title, description string }

var placeholders = map[mdm.Tab]placeholder{
	mdm.Applications: {"Application Management", "Deploy and manage applications across your device fleet. Configure app restrictions and monitor installation status."},
	mdm.Policies:     {"Security Policies", "Create and enforce security policies for your devices. Set passcode requirements, restrictions, and compliance rules."},
	mdm.Analytics:    {"Analytics & Reports", "View detailed analytics and generate reports on device usage, compliance, and financing performance."},
	mdm.Users:        {"User Management", "Manage user accounts, permissions, and access controls for your MDM system."},
	mdm.Settings:     {"System Settings", "Configure system-wide settings, integrations, and tenant-specific customizations."},
}

// DashboardMarkdown renders the active tab of the dashboard.
func DashboardMarkdown(d *Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	filter := d.Filter
	filter.Tenant = d.View.Tenant.Name
	devices := d.Data.FilterDevices(mdm.Filter{Tenant: filter.Tenant})

	switch d.View.Tab {
	case mdm.Overview:
		doc.H1(fmt.Sprintf("%s · Overview", d.View.Tenant.Name))
		s := d.Data.Overview(devices)
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Metric", "Value", ""},
			Rows: [][]string{
				{"Total Devices", fmt.Sprint(s.Total), fmt.Sprintf("%d online", s.Online)},
				{"Total Revenue", s.Revenue.Compact(), "This month"},
				{"Warnings", fmt.Sprint(s.Warning), fmt.Sprintf("%d offline", s.Offline)},
				{"Active Financing", fmt.Sprint(s.Financed), "Contracts"},
			},
		})
		doc.H2("Recent Activity")
		var items []string
		for _, a := range d.Data.Activities {
			items = append(items, fmt.Sprintf("%s %s", a.Description, md.Italic(a.Time)))
		}
		doc.BulletList(items...)

	case mdm.Devices:
		doc.H1(fmt.Sprintf("%s · Devices", d.View.Tenant.Name))
		filtered := d.Data.FilterDevices(filter)
		if len(filtered) == 0 {
			doc.PlainText("No devices found matching your criteria.")
			break
		}
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"ID", "Device", "User", "Status", "Battery", "Location", "Last Seen", "Financing"},
		}
		for _, dev := range filtered {
			battery := fmt.Sprintf("%d%%", dev.BatteryLevel)
			if dev.LowBattery() {
				battery = md.Bold(battery)
			}
			financing := "-"
			if f := dev.Financing; f != nil {
				financing = fmt.Sprintf("%d/%d %s", f.Paid, f.Total, f.Status)
			}
			table.Rows = append(table.Rows, []string{
				dev.ID, dev.Name, dev.User, string(dev.Status), battery, dev.Location, dev.LastSeen, financing,
			})
		}
		doc.Table(table)

	case mdm.FinancingTab:
		doc.H1(fmt.Sprintf("%s · Financing", d.View.Tenant.Name))
		s := d.Data.Financing(devices)
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Revenue", s.Revenue.Compact()},
				{"Collection Rate", fmt.Sprintf("%.0f%%", float64(s.CollectionRate))},
				{"Active Contracts", fmt.Sprint(s.ActiveContracts)},
				{"Overdue Amount", s.OverdueAmount.Compact()},
			},
		})
		doc.H2("Plans")
		plans := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Plan", "Devices", "Revenue", "On Time", "Overdue"},
		}
		for _, p := range s.Plans {
			plans.Rows = append(plans.Rows, []string{
				fmt.Sprintf("%s (%g%% interest)", p.Plan.Label, p.Plan.InterestRate),
				fmt.Sprint(p.Count),
				p.Revenue.String(),
				fmt.Sprintf("%.0f%%", float64(p.OnTimeRate())),
				fmt.Sprint(p.Overdue),
			})
		}
		doc.Table(plans)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"Device", "User", "Plan", "Progress", "Monthly", "Next Payment", "Status"},
		}
		for _, dev := range devices {
			f := dev.Financing
			if f == nil {
				continue
			}
			table.Rows = append(table.Rows, []string{
				dev.Name, dev.User, f.Plan,
				fmt.Sprintf("%d/%d", f.Paid, f.Total),
				d.Data.Installment(*f).String(),
				f.NextPayment,
				string(f.Status),
			})
		}
		if len(table.Rows) > 0 {
			doc.H2("Contracts")
			doc.Table(table)
		}

	default:
		p, ok := placeholders[d.View.Tab]
		if !ok {
			p = placeholder{title: string(d.View.Tab)}
		}
		if p.description == "" {
			p.description = "This section is under development and will be available soon."
		}
		doc.H1(p.title)
		doc.PlainText(p.description)
	}
	return doc.String()
}

// OperationsMarkdown lists the operations available on a device, by category.
func OperationsMarkdown(groups []mdm.OperationGroup) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Device Operations")
	for _, g := range groups {
		doc.H2(string(g.Category))
		var items []string
		for _, op := range g.Operations {
			items = append(items, fmt.Sprintf("%s %s", md.Code(op.ID), op.Label))
		}
		doc.BulletList(items...)
	}
	return doc.String()
}
