package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/catherinevee/inventorymgr/internal/discovery"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func newCompartmentsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "compartments",
		Aliases: []string{"scopes"},
		Short:   "List the tenancy and its compartments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			scopes := a.Engine.ListScopes(cmd.Context())
			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, scopes)
			}
			renderScopes(out, scopes)
			return nil
		},
	}
}

func newResourcesCommand(opts *globalOptions) *cobra.Command {
	var compartment string

	cmd := &cobra.Command{
		Use:   "resources <category>",
		Short: "List one category of resources in a compartment",
		Long: fmt.Sprintf(`List one category of resources in a compartment.

Categories: %s`, categoryNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			resources, err := a.Engine.ListResources(cmd.Context(), args[0], compartment)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, resources)
			}
			renderResources(out, resources, false)
			fmt.Fprintf(out, "\n%d resource(s)\n", len(resources))
			return nil
		},
	}

	cmd.Flags().StringVar(&compartment, "compartment", "", "Compartment id (defaults to the tenancy)")
	return cmd
}

func newAllCommand(opts *globalOptions) *cobra.Command {
	var (
		compartment string
		types       []string
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Aggregate every category across one or all compartments",
		Long: `Aggregate every category across one or all compartments. Omitting
--compartment, or passing the tenancy id, queries every active compartment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Engine.GetAllResources(cmd.Context(), compartment, types)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, resp)
			}
			renderAggregate(out, resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&compartment, "compartment", "", "Compartment id (empty for all compartments)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Restrict to these categories (comma separated)")
	return cmd
}

func newMetricsCommand(opts *globalOptions) *cobra.Command {
	var resourceType string

	cmd := &cobra.Command{
		Use:   "metrics <resource-id>",
		Short: "Show utilization metrics of one resource",
		Long: fmt.Sprintf(`Show utilization metrics of one resource.

Resource types: %s`, metricTypeNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.Engine.GetResourceMetrics(cmd.Context(), args[0], resourceType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, m)
			}
			renderMetrics(out, m)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resourceType, "type", "t", string(models.ResourceTypeComputeInstance), "Resource type")
	return cmd
}

func newInvalidateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <compartment-id>",
		Short: "Drop the cached inventory of a compartment",
		Long: `Drop the cached inventory of a compartment. Only meaningful with a
shared cache backend such as redis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			deleted := a.Engine.Invalidate(cmd.Context(), args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d cache key(s) for %s\n",
				color.GreenString("Invalidated"), deleted, args[0])
			return nil
		},
	}
}

func categoryNames() string {
	names := make([]string, 0, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func metricTypeNames() string {
	types := discovery.MetricResourceTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
