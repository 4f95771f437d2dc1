package main

// Preview the prompts (and optionally the completion) the pipeline would
// produce for a brief, without touching storage:
//   go run ./cmd/prompttest -topic "EV charging" -content-type whitepaper -industry tech -complete

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"content-backend/internal/generation"
	"content-backend/internal/llm"
	"content-backend/internal/llm/openrouter"
	"content-backend/internal/shared/config"
	"content-backend/internal/templates"
)

func main() {
	cfg := config.Load()

	topic := flag.String("topic", "", "Content topic")
	tone := flag.String("tone", "", "Desired tone")
	audience := flag.String("audience", "", "Target audience")
	wordCount := flag.Int("words", 500, "Target word count")
	industry := flag.String("industry", "", "Industry")
	contentType := flag.String("content-type", "blog", "Content type")
	briefText := flag.String("brief", "", "Additional brief text")
	budgetTier := flag.String("budget", "standard", "Budget tier (economy, standard, premium)")
	model := flag.String("model", "", "Model override (default: selector decision)")
	complete := flag.Bool("complete", false, "Call the configured provider with the prompts")
	flag.Parse()

	if strings.TrimSpace(*topic) == "" {
		exitErr("topic is required")
	}

	params := templates.StandardParams(*topic, *tone, *audience, *wordCount, *briefText, *industry, *contentType)
	prompts := templates.DefaultPrompts(params)

	chosen := strings.TrimSpace(*model)
	if chosen == "" {
		chosen = generation.NewSelector(nil).Select(*contentType, *industry, *wordCount, *budgetTier)
	}

	fmt.Printf("model: %s\n\n--- system prompt ---\n%s\n\n--- user prompt ---\n%s\n", chosen, prompts.SystemPrompt, prompts.UserPrompt)

	if !*complete {
		return
	}

	client, err := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterURL)
	if err != nil {
		exitErr(fmt.Sprintf("openrouter client: %v", err))
	}

	text, err := client.Complete(context.Background(), llm.CompletionRequest{
		Model:        chosen,
		SystemPrompt: prompts.SystemPrompt,
		UserPrompt:   prompts.UserPrompt,
		MaxTokens:    *wordCount * 3,
		Temperature:  0.7,
	})
	if err != nil {
		exitErr(fmt.Sprintf("completion: %v", err))
	}

	fmt.Printf("\n--- completion ---\n%s\n", text)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
