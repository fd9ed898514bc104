// Command vanityforge searches for secp256k1 keypairs whose bitcoin-style
// address matches a base-58 prefix or a regular expression.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/chainforge/vanityforge"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagVerbose        bool
	flagRegex          bool
	flagCaseInsensitve bool
	flagNamecoin       bool
	flagTestnet        bool
	flagThreads        int
	flagPatternFile    string
	flagJSON           bool
)

var rootCmd = &cobra.Command{
	Use:   "vanityforge [patterns...]",
	Short: "Search for vanity secp256k1 addresses matching base-58 prefixes or regexes",
	Long: `vanityforge brute-forces secp256k1 keypairs whose derived bitcoin-style
address begins with a chosen base-58 prefix, or matches a regular
expression, printing each match's address and private key as it is found.`,
	RunE: runSearch,
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print per-pattern difficulty, thread count, and match hex key material")
	rootCmd.Flags().BoolVarP(&flagRegex, "regex", "r", false, "regex mode: patterns are regular expressions over the full address")
	rootCmd.Flags().BoolVarP(&flagCaseInsensitve, "case-insensitive", "i", false, "case-insensitive prefix matching (ignored in regex mode)")
	rootCmd.Flags().BoolVarP(&flagNamecoin, "namecoin", "N", false, "use the namecoin address version (52)")
	rootCmd.Flags().BoolVarP(&flagTestnet, "testnet", "T", false, "use bitcoin testnet versions (address 111, private 239)")
	rootCmd.Flags().IntVarP(&flagThreads, "threads", "t", 0, "worker thread count (default: CPU count)")
	rootCmd.Flags().StringVarP(&flagPatternFile, "file", "f", "", "read patterns from PATH, one per line (- for stdin)")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit matches as JSON lines instead of the plain-text stdout contract")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	patterns := append([]string{}, args...)
	if flagPatternFile != "" {
		fromFile, err := readPatternFile(flagPatternFile)
		if err != nil {
			log.Error().Err(err).Msg("failed to read pattern file")
			os.Exit(1)
		}
		patterns = append(patterns, fromFile...)
	}
	if flagCaseInsensitve && flagRegex {
		log.Warn().Msg("-i is ignored in regex mode")
	}

	addressVersion, privateVersion := byte(0), byte(128)
	switch {
	case flagNamecoin:
		addressVersion, privateVersion = vanityforge.NamecoinParams.AddressVersion, vanityforge.NamecoinParams.PrivateVersion
	case flagTestnet:
		addressVersion, privateVersion = vanityforge.TestnetParams.AddressVersion, vanityforge.TestnetParams.PrivateVersion
	}

	threads := flagThreads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if flagVerbose {
		log.Info().Int("threads", threads).Msg("starting search")
	}

	if flagRegex {
		runRegexSearch(patterns, addressVersion, privateVersion, threads)
	} else {
		runPrefixSearch(patterns, addressVersion, privateVersion, threads)
	}
	return nil
}

func readPatternFile(path string) ([]string, error) {
	if path == "-" {
		return vanityforge.ReadPatterns(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vanityforge.ReadPatterns(f)
}

func runPrefixSearch(patterns []string, addressVersion, privateVersion byte, threads int) int {
	ctx := vanityforge.NewPrefixContext(addressVersion)
	active := 0
	for _, p := range patterns {
		warning, err := ctx.AddPattern(p, flagCaseInsensitve)
		if warning != "" {
			log.Warn().Msg(warning)
		}
		if err != nil {
			log.Warn().Err(err).Str("pattern", p).Msg("skipping pattern")
			continue
		}
		active++
		if flagVerbose {
			if chance := ctx.Chance(); chance != nil {
				log.Info().Str("pattern", p).Str("difficulty", chance.Text('f', 0)).Msg("pattern added")
			}
		}
	}
	if active == 0 {
		log.Error().Msg("no usable patterns; nothing to search for")
		os.Exit(1)
	}

	co := vanityforge.NewPrefixCoordinator(ctx, addressVersion, privateVersion, threads, flagVerbose)
	return runCoordinator(co)
}

func runRegexSearch(patterns []string, addressVersion, privateVersion byte, threads int) int {
	ctx := vanityforge.NewRegexContext()
	active := 0
	for _, p := range patterns {
		if err := ctx.AddPattern(p); err != nil {
			log.Warn().Err(err).Str("pattern", p).Msg("skipping pattern")
			continue
		}
		active++
	}
	if active == 0 {
		log.Error().Msg("no usable patterns; nothing to search for")
		os.Exit(1)
	}

	co := vanityforge.NewRegexCoordinator(ctx, addressVersion, privateVersion, threads, flagVerbose)
	return runCoordinator(co)
}

// runCoordinator drives the search to completion, laying the supplemental
// --json flag over the stdout contract at the CLI boundary: the library's
// Coordinator only knows the plain-text format, so JSON mode uses
// RunWithCallback directly instead.
func runCoordinator(co *vanityforge.Coordinator) int {
	if !flagJSON {
		return co.Run(os.Stdout)
	}
	return co.RunWithCallback(func(m vanityforge.Match) {
		if !flagVerbose {
			m.PublicKeyHex, m.PrivateKeyHex = "", ""
		}
		encoded, err := json.Marshal(m)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal match")
			return
		}
		fmt.Println(string(encoded))
	})
}
