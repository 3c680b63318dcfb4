package cmd

import (
	"fmt"

	"github.com/akarpov/jobtrack/internal/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var saveCmd = &cobra.Command{
	Use:   "save <job-id>",
	Short: "Bookmark a job, or remove the bookmark if already saved",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runSave(args[0])
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List bookmarked jobs",
	Run: func(_ *cobra.Command, _ []string) {
		runSaved()
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
}

func runSave(jobID string) {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	jobCatalog, err := loadCatalog(config)
	if err != nil {
		log.Fatal("loading the job catalog", zap.Error(err))
	}

	job := jobCatalog.FindByID(jobID)
	if job == nil {
		log.Fatal("unknown job id", zap.String("job_id", jobID))
	}

	kv, err := openKV(config)
	if err != nil {
		log.Fatal("opening the state database", zap.Error(err))
	}
	defer kv.Close()

	tracked := tracker.NewStore(kv)
	saved, err := tracked.ToggleSaved(jobID)
	if err != nil {
		log.Fatal("toggling the bookmark", zap.Error(err))
	}

	if tracked.IsSaved(jobID) {
		fmt.Printf("Saved %s — %s (%d saved total)\n", job.Title, job.Company, len(saved))
	} else {
		fmt.Printf("Removed %s — %s (%d saved total)\n", job.Title, job.Company, len(saved))
	}
}

func runSaved() {
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

	tracked := tracker.NewStore(kv)
	saved := tracked.Saved()
	if len(saved) == 0 {
		fmt.Println("No saved jobs yet. Use 'jobtrack save <job-id>' to bookmark one.")
		return
	}

	for _, id := range saved {
		job := jobCatalog.FindByID(id)
		if job == nil {
			fmt.Printf("%s  Unknown (no longer in the catalog)\n", id)
			continue
		}
		fmt.Printf("%s  %s — %s · %s · %s\n", job.ID, job.Title, job.Company, job.Location, tracked.Status(job.ID))
	}
}
