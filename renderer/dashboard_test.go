package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/inky"
	"github.com/etnz/inky/chart"
	"github.com/etnz/inky/mdm"
)

func TestDashboardMarkdown(t *testing.T) {
	data := mdm.DefaultDataset()
	all, _ := data.Tenant(mdm.AllTenants)
	leasing, _ := data.Tenant("M Leasing")

	testCases := []struct {
		name    string
		view    mdm.View
		filter  mdm.Filter
		want    []string
		notWant []string
	}{
		{
			name: "overview",
			view: mdm.View{Tab: mdm.Overview, Tenant: all},
			want: []string{"All Tenants · Overview", "Total Devices", "฿132.0K", "3 online", "Recent Activity", "iPhone 15 - นิภา enrolled"},
		},
		{
			name:    "devices of a tenant",
			view:    mdm.View{Tab: mdm.Devices, Tenant: leasing},
			want:    []string{"M Leasing · Devices", "iPhone 11 - วิชัย", "warning", "5/6 on-time"},
			notWant: []string{"iPhone 12"},
		},
		{
			name:   "devices with query",
			view:   mdm.View{Tab: mdm.Devices, Tenant: all},
			filter: mdm.Filter{Query: "pro"},
			want:   []string{"iPhone 14 Pro"},
			notWant: []string{
				"iPhone 12 -", "iPhone 13 -",
			},
		},
		{
			name:   "devices without match",
			view:   mdm.View{Tab: mdm.Devices, Tenant: all},
			filter: mdm.Filter{Status: mdm.Offline, Query: "15"},
			want:   []string{"No devices found matching your criteria."},
		},
		{
			name: "financing",
			view: mdm.View{Tab: mdm.FinancingTab, Tenant: all},
			want: []string{"Collection Rate", "80%", "฿9.2K", "3-Month Plan (10% interest)", "Contracts", "Dec 10"},
		},
		{
			name:    "financing of a tenant without device",
			view:    mdm.View{Tab: mdm.FinancingTab, Tenant: mustTenant(t, data, "General")},
			want:    []string{"General · Financing", "Plans"},
			notWant: []string{"## Contracts"},
		},
		{
			name: "placeholder",
			view: mdm.View{Tab: mdm.Policies, Tenant: all},
			want: []string{"Security Policies", "passcode requirements"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DashboardMarkdown(&Dashboard{Data: data, View: tc.view, Filter: tc.filter})
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("DashboardMarkdown() does not contain %q:\n%s", w, got)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(got, w) {
					t.Errorf("DashboardMarkdown() contains %q:\n%s", w, got)
				}
			}
		})
	}
}

func mustTenant(t *testing.T, data *mdm.Dataset, name string) mdm.Tenant {
	t.Helper()
	tenant, ok := data.Tenant(name)
	if !ok {
		t.Fatalf("unknown tenant %q", name)
	}
	return tenant
}

func TestOperationsMarkdown(t *testing.T) {
	got := OperationsMarkdown(mdm.DefaultDataset().OperationsByCategory())
	for _, w := range []string{"Device Operations", "## security", "`lock`", "`network_info`"} {
		if !strings.Contains(got, w) {
			t.Errorf("OperationsMarkdown() does not contain %q", w)
		}
	}
	if strings.Contains(got, "## management") {
		t.Error("OperationsMarkdown() lists the empty management category")
	}
}

func TestCatalogMarkdown(t *testing.T) {
	got := CatalogMarkdown(inky.DefaultCatalog().Assets())
	for _, w := range []string{"Asset Catalog", "20 assets.", "**BTC**", "$42,500.00", "$0.00000080", "+25.70%"} {
		if !strings.Contains(got, w) {
			t.Errorf("CatalogMarkdown() does not contain %q", w)
		}
	}
}

func TestSegmentsMarkdown(t *testing.T) {
	d, _ := chart.NewDonut(chart.DefaultGeometry, []chart.Entry{{Label: "crypto", Count: 3}, {Label: "meme", Count: 1}})
	got := SegmentsMarkdown(&d)
	for _, w := range []string{"4 Assets", "crypto", "75%", "25%"} {
		if !strings.Contains(got, w) {
			t.Errorf("SegmentsMarkdown() does not contain %q", w)
		}
	}
}
