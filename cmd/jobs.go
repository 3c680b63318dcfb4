package cmd

import (
	"fmt"
	"strings"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/filtering"
	"github.com/akarpov/jobtrack/internal/matching"
	"github.com/akarpov/jobtrack/internal/prefs"
	"github.com/akarpov/jobtrack/internal/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs with match scores, filters, and sorting",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("keyword", "k", "", "filter by title or company substring")
	jobsCmd.Flags().String("location", "", "filter by exact location")
	jobsCmd.Flags().String("mode", "", "filter by work mode (Remote/Hybrid/Onsite)")
	jobsCmd.Flags().String("experience", "", "filter by experience level")
	jobsCmd.Flags().String("source", "", "filter by posting source")
	jobsCmd.Flags().String("status", "", "filter by application status")
	jobsCmd.Flags().Bool("saved", false, "show only bookmarked jobs")
	jobsCmd.Flags().Bool("matches-only", false, "hide jobs below the preference match threshold")
	jobsCmd.Flags().String("sort", filtering.SortLatest, "sort order: latest, match, or salary")
}

func runJobs(cmd *cobra.Command) {
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

	profile, hasProfile := prefs.NewStore(kv).Load()
	if !hasProfile {
		log.Warn("no preferences saved, match scores disabled",
			zap.String("hint", "run 'jobtrack prefs set' to activate matching"),
		)
		profile = prefs.Default()
	}

	scores := matching.ScoreAll(jobCatalog, profile)
	tracked := tracker.NewStore(kv)

	steps := []filtering.Filter{
		filtering.NewKeyword(flagString(cmd, "keyword")),
		filtering.NewLocation(flagString(cmd, "location")),
		filtering.NewMode(flagString(cmd, "mode")),
		filtering.NewExperience(flagString(cmd, "experience")),
		filtering.NewSource(flagString(cmd, "source")),
	}

	if raw := flagString(cmd, "status"); raw != "" {
		want, err := tracker.ParseStatus(raw)
		if err != nil {
			log.Fatal("invalid status filter", zap.Error(err))
		}
		steps = append(steps, filtering.NewStatus(want, tracked.AllStatuses()))
	}

	if flagBool(cmd, "saved") {
		steps = append(steps, filtering.NewSavedOnly(tracked.Saved()))
	}

	if flagBool(cmd, "matches-only") {
		if !hasProfile {
			log.Fatal("matches-only requires saved preferences")
		}
		steps = append(steps, filtering.NewMinScore(scores, profile.MinMatchScore))
	}

	jobs := filtering.New(steps, log).Run(jobCatalog.Jobs)
	filtering.Sort(jobs, flagString(cmd, "sort"), scores)

	if len(jobs) == 0 {
		fmt.Println("No roles match your criteria. Adjust filters or lower threshold.")
		return
	}

	for _, job := range jobs {
		printJob(job, scores, tracked, hasProfile)
	}

	log.Debug("listed jobs", zap.Int("count", len(jobs)))
}

func printJob(job *catalog.Job, scores map[string]int, tracked *tracker.Store, hasProfile bool) {
	marks := []string{string(tracked.Status(job.ID))}
	if hasProfile {
		marks = append([]string{fmt.Sprintf("Match: %d%%", scores[job.ID])}, marks...)
	}
	if tracked.IsSaved(job.ID) {
		marks = append(marks, "Saved")
	}

	fmt.Printf("%s  %s — %s\n", job.ID, job.Title, job.Company)
	fmt.Printf("         %s · %s · %s · %s · %s · %dd ago\n",
		job.Location, job.Mode, job.Experience, job.SalaryRange, job.Source, job.PostedDaysAgo)
	fmt.Printf("         %s\n", strings.Join(marks, " · "))
	fmt.Printf("         %s\n", job.ApplyURL)
}

func flagString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func flagBool(cmd *cobra.Command, name string) bool {
	value, _ := cmd.Flags().GetBool(name)
	return value
}
