package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/harness"
	"github.com/sarchlab/markbench/memory"
	"github.com/sarchlab/markbench/validate"
	"github.com/sarchlab/markbench/workload"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Print the reference profile table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			harness.PrintProfiles(cmd.OutOrStdout(), validate.DefaultProfiles())
		},
	}
}

func newFingerprintCmd() *cobra.Command {
	var (
		size  uint32
		execs uint32
	)

	cmd := &cobra.Command{
		Use:   "fingerprint seed1 seed2 seed3",
		Short: "Print the seedcrc of a seed triple and the profile it selects",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			seeds, profile := config.ResolveSeeds(workload.Seeds{
				Seed1: int16(config.ParseValue(args[0])),
				Seed2: int16(config.ParseValue(args[1])),
				Seed3: int16(config.ParseValue(args[2])),
			})
			mask := config.ResolveExecs(workload.Mask(execs))
			layout := memory.Partition(size, mask)
			fp := validate.Fingerprint(seeds, layout.PerAlgorithm)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "seeds            : 0x%04x 0x%04x 0x%04x (%s)\n",
				uint16(seeds.Seed1), uint16(seeds.Seed2), uint16(seeds.Seed3), profile)
			_, _ = fmt.Fprintf(out, "size             : %d\n", layout.PerAlgorithm)
			_, _ = fmt.Fprintf(out, "seedcrc          : 0x%04x\n", fp)

			if p, ok := validate.DefaultProfiles().Lookup(fp); ok {
				_, _ = fmt.Fprintf(out, "profile          : %d %s\n", p.ID, p.Name)
			} else {
				_, _ = fmt.Fprintln(out, "profile          : none")
			}
		},
	}

	cmd.Flags().Uint32Var(&size, "size", config.DefaultTotalSize, "memory budget per context in bytes")
	cmd.Flags().Uint32Var(&execs, "execs", 0, "kernel mask (0 = all)")

	return cmd
}
