package main

import (
	"Go2NetTemplates/pkg/pcap"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newGenCmd() *cobra.Command {
	var (
		outputFile  string
		packetCount int
		seed        uint64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a synthetic capture for trying out find and serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			opts := pcap.GenerateOptions{
				Count:  packetCount,
				Seed:   seed,
				Pcapng: strings.HasSuffix(outputFile, ".pcapng"),
			}
			if err := pcap.Generate(f, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d packets into %s\n", packetCount, outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "test.pcap", "Output capture path (.pcapng selects pcapng)")
	cmd.Flags().IntVarP(&packetCount, "count", "c", 1000, "Number of packets to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
