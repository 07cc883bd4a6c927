package main

import (
	"github.com/spf13/cobra"

	harp "github.com/bruno-rino/harp"
	"github.com/bruno-rino/harp/internal/hlog"
)

var listConversionsCmd = &cobra.Command{
	Use:   "list-conversions",
	Short: "Print every registered conversion.",
	Long: `list-conversions dumps harp.DefaultRegistry the way resolver.ListConversions(nil)
does: every registered conversion's output and source signatures, in
registration order, with no product-specific applicability filtering.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := harp.NewResolver(harp.DefaultRegistry, nil, hlog.Entry("resolver"))
		cmd.Print(resolver.ListConversions(nil))
		return nil
	},
	DisableAutoGenTag: true,
}
