package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/classicnews/internal/ai"
	"github.com/matheuskafuri/classicnews/internal/content"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize URL",
	Short: "Summarize an article page",
	Long: `Fetch an article page, extract its paragraphs and print a short
summary from the configured provider. A relative path is resolved against siteUrl.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := oneShot(cmd)
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.New("summarizer is not configured: set summarizer.apiKey or CLASSICNEWS_AI_KEY")
		}

		ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.RequestDuration()+cfg.Summarizer.TimeoutDuration())
		defer cancel()
		text, err := p.Summarize(ctx, cfg.ArticleURL(args[0]))
		if err != nil {
			return describeSummaryError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

// describeSummaryError adds a hint for the common failures.
func describeSummaryError(err error) error {
	var apiErr *ai.APIError
	switch {
	case errors.Is(err, content.ErrNoContainer):
		return fmt.Errorf("%w (enable summarizer.fallback for pages outside the portal)", err)
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		return fmt.Errorf("%w (check the API key)", err)
	default:
		return err
	}
}
