package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/user/hashbench/internal/benchmark"
	"github.com/user/hashbench/internal/hashes"
	"github.com/user/hashbench/internal/output"
	"github.com/user/hashbench/internal/server"
	"github.com/user/hashbench/internal/source"
	"github.com/user/hashbench/pkg/sysinfo"
)

var (
	hashIDs      []string
	sourceIDs    []string
	samples      int
	rounds       int
	parallel     int
	seed         uint64
	wordList     string
	cursorPolicy string
	outputFormat string
	outputFile   string
	configFile   string
	verbose      bool
	showProgress bool
	timeout      int
	webMode      bool
	webPort      string
	webWorkers   int
	listOnly     bool
)

var rootCmd = &cobra.Command{
	Use:   "hashbench",
	Short: "Compare hash functions for speed and collisions",
	Long: `hashbench hashes samples drawn from several input sources with every
selected hash function and reports, per pair, how many distinct inputs
collided and how long hashing took.

Run without flags it sweeps the default hash functions over 10,000 numeric
codes, common English words and random tokens.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&hashIDs, "hashes", "H", hashes.DefaultIDs, "Hash functions to compare (see --list)")
	rootCmd.Flags().StringSliceVarP(&sourceIDs, "sources", "s", source.DefaultIDs, "Input sources (see --list)")
	rootCmd.Flags().IntVarP(&samples, "samples", "n", benchmark.DefaultSamples, "Samples drawn per pair")
	rootCmd.Flags().IntVarP(&rounds, "rounds", "r", benchmark.DefaultRounds, "Timed rounds per pair")
	rootCmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of pairs measured concurrently")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the random sources (default: unseeded)")
	rootCmd.Flags().StringVar(&wordList, "wordlist", source.DefaultWordList, "Word list file for the words source")
	rootCmd.Flags().StringVar(&cursorPolicy, "cursor", string(benchmark.CursorReset), "Source cursor policy between pairs (reset, shared)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format ("+strings.Join(output.Formats, ", ")+")")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "JSON config file; explicit flags override it")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print system information and pair failures")
	rootCmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress bar")
	rootCmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "Timeout in seconds for the whole sweep (0: none)")
	rootCmd.Flags().BoolVarP(&webMode, "web", "w", false, "Run in web server mode")
	rootCmd.Flags().StringVar(&webPort, "port", "8080", "Web server port")
	rootCmd.Flags().IntVar(&webWorkers, "workers", 1, "Sweeps run concurrently in web mode")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List hash functions and sources, then exit")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if listOnly {
		return printCatalog(cmd.OutOrStdout())
	}

	if webMode {
		srv, err := server.NewServerWithWorkers(webPort, webWorkers)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		log.Printf("Starting hashbench web server on http://localhost:%s", webPort)
		log.Println("Press Ctrl+C to stop")

		return srv.Start()
	}

	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(outputFormat)
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	writer, closeOutput, err := openOutput(outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	runner, err := benchmark.NewRunnerFromConfig(config)
	if err != nil {
		return err
	}

	sysInfo, err := sysinfo.Collect()
	if err != nil {
		return fmt.Errorf("failed to collect system info: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := runner.RunContext(ctx)

	outputData := output.Data{
		SystemInfo: sysInfo,
		Results:    results,
		Config:     runner.Config(),
	}
	if err := formatter.Format(writer, outputData); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("sweep interrupted: %w", runErr)
	}
	return nil
}

// openOutput opens the report destination up front so an unwritable path
// fails before the sweep runs.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// buildConfig layers the config file, if any, under the flags the user set
// explicitly.
func buildConfig(cmd *cobra.Command) (benchmark.Config, error) {
	config := benchmark.DefaultConfig()
	if configFile != "" {
		loaded, err := loadConfig(configFile)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("hashes") || len(config.Hashes) == 0 {
		config.Hashes = hashIDs
	}
	if flags.Changed("sources") || len(config.Sources) == 0 {
		config.Sources = sourceIDs
	}
	if flags.Changed("samples") || config.Samples == 0 {
		config.Samples = samples
	}
	if flags.Changed("rounds") || config.Rounds == 0 {
		config.Rounds = rounds
	}
	if flags.Changed("parallel") || config.Parallel == 0 {
		config.Parallel = parallel
	}
	if flags.Changed("seed") {
		s := seed
		config.Seed = &s
	}
	if flags.Changed("wordlist") || config.WordList == "" {
		config.WordList = wordList
	}
	if flags.Changed("cursor") || config.CursorPolicy == "" {
		config.CursorPolicy = benchmark.CursorPolicy(cursorPolicy)
	}
	if flags.Changed("progress") {
		config.ShowProgress = showProgress
	}
	if flags.Changed("timeout") {
		config.Timeout = timeout
	}
	if flags.Changed("verbose") {
		config.Verbose = verbose
	}

	return config, nil
}

func loadConfig(path string) (benchmark.Config, error) {
	var config benchmark.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

func printCatalog(w io.Writer) error {
	defaults := make(map[string]bool)
	for _, id := range hashes.DefaultIDs {
		defaults[id] = true
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Hash", "Bits", "Name", "Default"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, a := range hashes.All() {
		mark := ""
		if defaults[a.ID()] {
			mark = "yes"
		}
		table.Append([]string{a.ID(), strconv.Itoa(a.Bits()), a.Name(), mark})
	}
	table.Render()

	fmt.Fprintln(w)

	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Name"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, info := range source.List() {
		table.Append([]string{info.ID, info.Name})
	}
	table.Render()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, source.ErrResourceUnavailable) {
			fmt.Fprintln(os.Stderr, "Hint: pass --wordlist or drop the words source with --sources")
		}
		os.Exit(1)
	}
}
