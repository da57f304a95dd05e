// Command explore asks the generation service for place recommendations
// using a YAML profile.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"settlease-backend/internal/explore/domain"
	"settlease-backend/internal/explore/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultEndpoint = "http://localhost:5000/generate-content"

type options struct {
	profile     string
	categories  []string
	title       string
	endpoint    string
	timeout     time.Duration
	concurrency int
	strict      bool
	jsonOut     bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "explore",
		Short: "Get place recommendations for a profile",
		Long: `Builds the profile paragraph and category prompt from a YAML profile,
posts them to the generation service and prints the recommendation cards.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.profile, "profile", "p", "profile.yaml", "YAML profile file")
	flags.StringSliceVarP(&opts.categories, "category", "c", nil, "category title, repeatable (default: every category in the profile)")
	flags.StringVar(&opts.title, "title", "", "search under this title instead of the category's own (single category only)")

	root.Flags().StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "generation service URL")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (0 = none)")
	root.Flags().IntVar(&opts.concurrency, "concurrency", 3, "parallel requests for several categories")
	root.Flags().BoolVar(&opts.strict, "strict", false, "fail instead of printing an empty result")
	root.Flags().BoolVar(&opts.jsonOut, "json", false, "print JSON")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(newPromptCmd(opts))
	return root
}

func newPromptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the system instruction and search prompt without sending them",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := LoadProfile(opts.profile)
			if err != nil {
				return err
			}
			categories, err := selectCategories(profile, opts)
			if err != nil {
				return err
			}
			requester := usecase.NewRequester("", nil, nil)
			for _, category := range categories {
				req := requester.BuildRequest(profile.Input(category, opts.title))
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n## system_instruction\n%s\n\n## search_prompt\n%s\n\n",
					category.Title, req.SystemInstruction, req.SearchPrompt)
			}
			return nil
		},
	}
}

func runExplore(cmd *cobra.Command, opts *options) error {
	profile, err := LoadProfile(opts.profile)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync()

	requester := usecase.NewRequester(opts.endpoint, &http.Client{Timeout: opts.timeout}, logger)
	categories, err := selectCategories(profile, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(categories) == 1 {
		in := profile.Input(categories[0], opts.title)
		var cards []domain.RecommendationCard
		if opts.strict {
			if cards, err = requester.RequestRecommendations(ctx, in); err != nil {
				return err
			}
		} else {
			cards = requester.GenerateRecommendations(ctx, in)
		}
		return printResults(out, []usecase.CategoryResult{{Category: categories[0].Title, Cards: cards}}, opts.jsonOut)
	}

	results := requester.ExploreCategories(ctx, profile.Input(domain.Category{}, ""), categories, opts.concurrency)
	if opts.strict {
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%s: %w", r.Category, r.Err)
			}
		}
	}
	return printResults(out, results, opts.jsonOut)
}

var errTitleWithManyCategories = errors.New("--title needs exactly one category")

// selectCategories resolves the categories to explore and checks --title against them
func selectCategories(profile *Profile, opts *options) ([]domain.Category, error) {
	categories := selectedCategories(profile, opts.categories)
	if len(categories) == 0 {
		return nil, fmt.Errorf("no category given and none in %s", opts.profile)
	}
	if opts.title != "" && len(categories) > 1 {
		return nil, fmt.Errorf("%w, got %d", errTitleWithManyCategories, len(categories))
	}
	return categories, nil
}

func selectedCategories(profile *Profile, titles []string) []domain.Category {
	if len(titles) == 0 {
		return profile.Categories
	}
	categories := make([]domain.Category, 0, len(titles))
	for _, title := range titles {
		categories = append(categories, profile.Category(title))
	}
	return categories
}

func printResults(w io.Writer, results []usecase.CategoryResult, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		fmt.Fprintf(w, "== %s ==\n", r.Category)
		if r.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", r.Error)
			continue
		}
		if len(r.Cards) == 0 {
			fmt.Fprintln(w, "  no recommendations")
			continue
		}
		for _, c := range r.Cards {
			fmt.Fprintf(w, "- %s (%s)\n  %s\n  %s\n  confidence %.2f\n", c.Title, c.Place, c.Address, c.PersonalizedSummary, c.Confidence)
		}
	}
	return nil
}
