package cmd

import (
	"context"
	"fmt"

	"github.com/akarpov/jobtrack/internal/ai"
	"github.com/akarpov/jobtrack/internal/ai/gemini"
	"github.com/akarpov/jobtrack/internal/digest"
	"github.com/akarpov/jobtrack/internal/prefs"
	"github.com/akarpov/jobtrack/internal/secrets"
	"github.com/akarpov/jobtrack/internal/tracker"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	actionCopy  = "Copy digest text"
	actionEmail = "Compose email draft"
	actionQuit  = "Quit"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show today's top-10 digest, generating it on first run",
	Run: func(cmd *cobra.Command, _ []string) {
		runDigest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().Bool("no-prompt", false, "print the digest and exit without the action menu")
	digestCmd.Flags().Bool("email", false, "print an email draft instead of the action menu")
}

func runDigest(cmd *cobra.Command) {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	jobCatalog, err := loadCatalog(config)
	if err != nil {
		log.Fatal("loading the job catalog", zap.Error(err))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	profile, ok := prefs.NewStore(kv).Load()
	if !ok {
		log.Fatal("no preferences saved",
			zap.String("hint", "run 'jobtrack prefs set' first; the digest is ranked by your profile"),
		)
	}

	generator := digest.NewGenerator(jobCatalog, kv)
	dateKey := generator.DateKey()

	_, existed := generator.Load(dateKey)
	entries, err := generator.Generate(profile)
	if err != nil {
		log.Fatal("generating the digest", zap.Error(err))
	}
	if existed {
		log.Debug("digest already frozen for today", zap.String("date", dateKey))
	}

	fmt.Println(digest.RenderMessage(dateKey, entries))

	history := tracker.NewStore(kv).History()
	if activity := digest.RecentActivity(jobCatalog, history); len(activity) > 0 {
		fmt.Println("\nRecent activity:")
		for _, a := range activity {
			line := a.JobTitle
			if a.Company != "" {
				line += " — " + a.Company
			}
			fmt.Printf("  %s: %s (%s)\n", line, a.Status, a.Date.Local().Format("2006-01-02"))
		}
	}

	if flagBool(cmd, "email") {
		fmt.Println()
		fmt.Println(emailDraft(cmd.Context(), config, log, dateKey, entries))
		return
	}
	if flagBool(cmd, "no-prompt") {
		return
	}

	prompt := promptui.Select{
		Label: "Action",
		Items: []string{actionCopy, actionEmail, actionQuit},
	}
	_, action, err := prompt.Run()
	if err != nil {
		log.Debug("action menu dismissed", zap.Error(err))
		return
	}

	switch action {
	case actionCopy:
		fmt.Println()
		fmt.Println(digest.RenderMessage(dateKey, entries))
	case actionEmail:
		fmt.Println()
		fmt.Println(emailDraft(cmd.Context(), config, log, dateKey, entries))
	}
}

// emailDraft returns an AI-composed draft when a provider is configured and
// reachable, otherwise a plain draft built from the frozen digest.
func emailDraft(ctx context.Context, config *Config, log *zap.Logger, dateKey string, entries []digest.Entry) string {
	composer, err := newComposer(ctx, config, log)
	if err != nil {
		log.Warn("ai composer unavailable, using the plain draft", zap.Error(err))
	}
	if composer != nil {
		draft, err := composer.Compose(ctx, dateKey, entries)
		if err == nil {
			return draft
		}
		log.Warn("ai compose failed, using the plain draft", zap.Error(err))
	}

	return fmt.Sprintf("Subject: My 9AM Job Digest\n\n%s", digest.RenderMessage(dateKey, entries))
}

// newComposer builds the configured AI composer, or (nil, nil) when the AI
// integration is disabled.
func newComposer(ctx context.Context, config *Config, log *zap.Logger) (ai.Composer, error) {
	if config.AI == nil || !config.AI.Enabled {
		return nil, nil
	}

	switch config.AI.Provider {
	case "", "gemini":
	default:
		return nil, fmt.Errorf("unknown ai provider %q", config.AI.Provider)
	}

	geminiConfig := config.AI.Gemini
	if geminiConfig == nil {
		geminiConfig = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiConfig.APIKey,
		File:  geminiConfig.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiConfig.Model, geminiConfig.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	log.Debug("ai composer ready", zap.String("model", generator.Model()))
	return gemini.NewComposer(generator, geminiConfig.MaxLogLength, log), nil
}
