package main

import (
	"Go2NetTemplates/internal/report"
	"fmt"

	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	flags := &runFlags{}
	var templateID int

	cmd := &cobra.Command{
		Use:   "find <capture>",
		Short: "Classify a capture and print its templates",
		Example: `  # Print every template of a pcapng capture
  pcap-templates find traffic.pcapng

  # Print template 0 only, for IP packets captured without a link header
  pcap-templates find --header-offset 0 --template 0 raw.pcap`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, result, logger, err := flags.run(cmd, args[0])
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			if templateID < 0 {
				fmt.Fprint(out, report.Render(result.Report, cfg.Report.MaxWidth))
				return nil
			}
			t, ok := result.Report.Template(templateID)
			if !ok {
				return fmt.Errorf("template %d not found (%d templates)", templateID, len(result.Report.Templates))
			}
			fmt.Fprintln(out, report.TemplateTable(t, cfg.Report.MaxWidth))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&templateID, "template", -1, "Print only the template with this id")
	return cmd
}
