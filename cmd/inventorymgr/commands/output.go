package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/catherinevee/inventorymgr/pkg/models"
)

const timeLayout = "2006-01-02 15:04"

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator(" ")
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func renderScopes(w io.Writer, scopes []models.Scope) {
	if len(scopes) == 0 {
		fmt.Fprintln(w, "No compartments found")
		return
	}

	table := newTable(w, []string{"Name", "ID", "Parent", "State", "Created"})
	for _, s := range scopes {
		name := s.Name
		if s.IsRoot() {
			name = color.CyanString(name)
		}
		parent := s.ParentID
		if parent == "" {
			parent = "-"
		}
		created := "-"
		if s.TimeCreated != nil {
			created = s.TimeCreated.Format(timeLayout)
		}
		table.Append([]string{name, s.ID, parent, colorState(s.LifecycleState), created})
	}
	table.Render()
}

func renderResources(w io.Writer, resources []models.Resource, withScope bool) {
	if len(resources) == 0 {
		fmt.Fprintln(w, "No resources found")
		return
	}

	header := []string{"Name", "Type", "State", "Details", "ID"}
	if withScope {
		header = append(header, "Compartment")
	}

	table := newTable(w, header)
	for _, r := range resources {
		name := r.DisplayName
		if r.IsChild() && !strings.HasPrefix(name, models.ChildPrefix) {
			name = models.ChildPrefix + name
		}
		row := []string{name, string(r.Type), colorState(r.LifecycleState), details(r), r.ID}
		if withScope {
			row = append(row, r.SourceScope)
		}
		table.Append(row)
	}
	table.Render()
}

func renderAggregate(w io.Writer, resp *models.AggregateResponse) {
	withScope := resp.CompartmentID == models.AllCompartments

	fmt.Fprintln(w, color.CyanString(strings.Repeat("=", 60)))
	fmt.Fprintln(w, color.CyanString("Inventory of %s", resp.CompartmentID))
	fmt.Fprintln(w, color.CyanString(strings.Repeat("=", 60)))

	for _, c := range models.AllCategories() {
		resources, ok := resp.Resources[c]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", color.New(color.Bold).Sprint(c), len(resources))
		renderResources(w, resources, withScope)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total resources:      %s\n", color.GreenString("%d", resp.TotalResources))
	if withScope {
		fmt.Fprintf(w, "Compartments queried: %d\n", resp.CompartmentsQueried)
	}
	fmt.Fprintf(w, "Last updated:         %s\n", resp.LastUpdated.Format(timeLayout))
}

func renderMetrics(w io.Writer, m *models.ResourceMetrics) {
	table := newTable(w, []string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Resource", m.ResourceID},
		{"Type", string(m.ResourceType)},
		{"CPU utilization", fmt.Sprintf("%.2f%%", m.Metrics.CPUUtilization)},
		{"Memory utilization", fmt.Sprintf("%.2f%%", m.Metrics.MemoryUtilization)},
		{"Network bytes in", fmt.Sprintf("%d", m.Metrics.NetworkBytesIn)},
		{"Network bytes out", fmt.Sprintf("%d", m.Metrics.NetworkBytesOut)},
		{"Health", colorHealth(m.HealthStatus)},
		{"Sampled at", m.Timestamp.Format(timeLayout)},
	})
	table.Render()
}

// details summarizes the kind-specific payload in one cell
func details(r models.Resource) string {
	switch {
	case r.Compute != nil:
		return fmt.Sprintf("%s %s", r.Compute.Shape, r.Compute.AvailabilityDomain)
	case r.DBSystem != nil:
		return fmt.Sprintf("%s %s, %d cores, %d GB, %d node(s)", r.DBSystem.Shape, r.DBSystem.DatabaseEdition,
			r.DBSystem.CPUCoreCount, r.DBSystem.DataStorageSizeInGBs, r.DBSystem.NodeCount)
	case r.Database != nil:
		return fmt.Sprintf("%s %s", r.Database.DBName, r.Database.DBWorkload)
	case r.AutonomousDatabase != nil:
		return fmt.Sprintf("%s %s, %d cores, %d TB", r.AutonomousDatabase.DBName, r.AutonomousDatabase.DBWorkload,
			r.AutonomousDatabase.CPUCoreCount, r.AutonomousDatabase.DataStorageSizeInTBs)
	case r.Cluster != nil:
		return "kubernetes " + r.Cluster.KubernetesVersion
	case r.Gateway != nil:
		return r.Gateway.Hostname
	case r.LoadBalancer != nil:
		visibility := "public"
		if r.LoadBalancer.IsPrivate {
			visibility = "private"
		}
		return fmt.Sprintf("%s %s", r.LoadBalancer.ShapeName, visibility)
	case r.Network != nil:
		return r.Network.CIDRBlock
	case r.Volume != nil:
		return fmt.Sprintf("%d GB %s", r.Volume.SizeInGBs, r.Volume.AvailabilityDomain)
	case r.FileSystem != nil:
		return fmt.Sprintf("%d bytes %s", r.FileSystem.MeteredBytes, r.FileSystem.AvailabilityDomain)
	}
	return ""
}

func colorState(state string) string {
	switch strings.ToUpper(state) {
	case "RUNNING", "AVAILABLE", "ACTIVE":
		return color.GreenString(state)
	case "FAILED", "TERMINATED", "DELETED":
		return color.RedString(state)
	case "":
		return "-"
	default:
		return color.YellowString(state)
	}
}

func colorHealth(status string) string {
	switch status {
	case models.HealthHealthy:
		return color.GreenString(status)
	case models.HealthWarning:
		return color.YellowString(status)
	case models.HealthCritical:
		return color.RedString(status)
	default:
		return status
	}
}
