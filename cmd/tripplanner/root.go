package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tripplanner/internal/config"
)

type rootOptions struct {
	envFile     string
	provider    string
	model       string
	requestPath string
	outDir      string
	quiet       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "tripplanner",
		Short: "Build, evaluate and revise travel itineraries",
		Long: `tripplanner builds a day-by-day itinerary from a vacation request and
the activity catalog, scores it with a fixed evaluation suite and lets an
LLM reviewer revise it with a small set of tools.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", "", "env file to load (default config.env, then .env)")
	pf.StringVar(&opts.provider, "provider", "", "LLM provider: openai, gemini or fake (overrides "+config.KeyProvider+")")
	pf.StringVar(&opts.model, "model", "", "reviewer model (overrides "+config.KeyModel+")")
	pf.StringVar(&opts.requestPath, "request", "", "vacation request JSON file (default: built-in sample request)")
	pf.StringVarP(&opts.outDir, "out", "o", "out", "output directory")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress log output")

	root.AddCommand(
		newPlanCmd(opts),
		newEvaluateCmd(opts),
		newReviseCmd(opts),
		newServeToolsCmd(opts),
	)
	return root
}

func (o *rootOptions) logger() *log.Logger {
	if o.quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	overrides := map[string]string{
		config.KeyProvider: o.provider,
		config.KeyModel:    o.model,
	}
	if o.envFile != "" {
		return config.LoadWithOverrides(overrides, o.envFile)
	}
	return config.LoadWithOverrides(overrides)
}
