package cmd

import (
	"fmt"
	"strings"

	"github.com/akarpov/jobtrack/internal/prefs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or update the matching preference profile",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preference profile",
	Run: func(_ *cobra.Command, _ []string) {
		runPrefsShow()
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preference fields and save the profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runPrefsSet(cmd)
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)

	prefsSetCmd.Flags().String("keywords", "", "comma-separated role keywords (e.g. 'react, frontend')")
	prefsSetCmd.Flags().StringSlice("locations", nil, "preferred locations, repeatable")
	prefsSetCmd.Flags().StringSlice("modes", nil, "preferred work modes (Remote/Hybrid/Onsite), repeatable")
	prefsSetCmd.Flags().String("experience", "", "experience level (Fresher/Junior/Mid/Senior)")
	prefsSetCmd.Flags().String("skills", "", "comma-separated skills")
	prefsSetCmd.Flags().Int("min-score", 0, "minimum match score for --matches-only listings")
}

func runPrefsShow() {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	profile, ok := prefs.NewStore(kv).Load()
	if !ok {
		fmt.Println("No preferences saved yet. Run 'jobtrack prefs set' to create a profile.")
		return
	}

	fmt.Printf("Role keywords:   %s\n", orDash(profile.RoleKeywords))
	fmt.Printf("Locations:       %s\n", orDash(strings.Join(profile.PreferredLocations, ", ")))
	fmt.Printf("Work modes:      %s\n", orDash(strings.Join(profile.PreferredMode, ", ")))
	fmt.Printf("Experience:      %s\n", orDash(profile.ExperienceLevel))
	fmt.Printf("Skills:          %s\n", orDash(profile.Skills))
	fmt.Printf("Min match score: %d%%\n", profile.MinMatchScore)
}

func runPrefsSet(cmd *cobra.Command) {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	prefStore := prefs.NewStore(kv)
	profile, ok := prefStore.Load()
	if !ok {
		profile = prefs.Default()
	}

	// Only flags the user passed override the stored profile; the rest
	// of it carries over so partial updates work.
	if cmd.Flags().Changed("keywords") {
		profile.RoleKeywords = flagString(cmd, "keywords")
	}
	if cmd.Flags().Changed("locations") {
		profile.PreferredLocations, _ = cmd.Flags().GetStringSlice("locations")
	}
	if cmd.Flags().Changed("modes") {
		profile.PreferredMode, _ = cmd.Flags().GetStringSlice("modes")
	}
	if cmd.Flags().Changed("experience") {
		profile.ExperienceLevel = flagString(cmd, "experience")
	}
	if cmd.Flags().Changed("skills") {
		profile.Skills = flagString(cmd, "skills")
	}
	if cmd.Flags().Changed("min-score") {
		score, _ := cmd.Flags().GetInt("min-score")
		if score < 0 || score > 100 {
			log.Fatal("min-score must be between 0 and 100", zap.Int("got", score))
		}
		profile.MinMatchScore = score
	}

	if err := prefStore.Save(profile); err != nil {
		log.Fatal("saving preferences", zap.Error(err))
	}

	fmt.Println("Preferences saved.")
	if profile.IsEmpty() {
		fmt.Println("The profile is empty, so every job scores 0%.")
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
