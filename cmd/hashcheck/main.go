package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/hashbench/internal/hashes"
)

var (
	hashIDs []string
	verify  bool
)

var rootCmd = &cobra.Command{
	Use:   "hashcheck [input...]",
	Short: "Print the digest of each input under every hash function",
	Long: `hashcheck prints one "id<TAB>digest" line per hash function and input.
Inputs are taken from the arguments, or one per line from stdin when no
arguments are given.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		adapters, err := hashes.NewAll(hashIDs)
		if err != nil {
			return err
		}

		inputs := args
		if len(inputs) == 0 {
			inputs, err = readLines(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
		}

		return check(cmd.OutOrStdout(), adapters, inputs, verify)
	},
}

func init() {
	rootCmd.Flags().StringSliceVar(&hashIDs, "hashes", hashes.IDs(), "Hash functions to run")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Digest every input twice and flag mismatches")
}

func check(w io.Writer, adapters []hashes.Adapter, inputs []string, verify bool) error {
	mismatches := 0
	for _, in := range inputs {
		for _, a := range adapters {
			digest, err := a.Digest([]byte(in))
			if err != nil {
				fmt.Fprintf(w, "%s\tERROR: %v\n", a.ID(), err)
				continue
			}
			if verify {
				again, err := a.Digest([]byte(in))
				if err != nil {
					mismatches++
					fmt.Fprintf(w, "%s\t%s\t✗ second digest failed: %v\n", a.ID(), digest, err)
					continue
				}
				if again != digest {
					mismatches++
					fmt.Fprintf(w, "%s\t%s\t✗ second digest %s\n", a.ID(), digest, again)
					continue
				}
			}
			fmt.Fprintf(w, "%s\t%s\n", a.ID(), digest)
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d non-deterministic digests", mismatches)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
