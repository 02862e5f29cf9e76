package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"whale-watcher/internal/repository"
	"whale-watcher/internal/service"

	"github.com/spf13/cobra"
)

var runMode string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one evaluation pass and exit",
	Run:   RunOnce,
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", string(service.RunModeOnce),
		"notification scope: once, digest or weekly")
}

func RunOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode, err := parseRunMode(runMode)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.cache,
		appDep.mailer,
		appDep.telegramBot,
	)

	if err := services.EngineService.Run(ctx, mode); err != nil {
		log.Fatalf("Evaluation run failed: %v", err)
	}
}

func parseRunMode(raw string) (service.RunMode, error) {
	switch service.RunMode(raw) {
	case service.RunModeOnce, service.RunModeDigest, service.RunModeWeekly:
		return service.RunMode(raw), nil
	default:
		return "", fmt.Errorf("unknown mode %q", raw)
	}
}
