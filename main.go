package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "dataconnector/internal/config"
	"dataconnector/internal/domain"
	router "dataconnector/internal/http"
	"dataconnector/internal/repositories"
	"dataconnector/internal/services"
	"dataconnector/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dataconnector",
		Short:        "Read-only query API over CRM, support and analytics datasets",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newQueryCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func loadService() (intconfig.Env, services.DataService, error) {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return intconfig.Env{}, services.DataService{}, err
	}
	utils.InitLogger(env.LogLevel, env.LogPretty)

	svc := services.NewDataService(
		repositories.NewFileSources(env.DataDir),
		services.PageLimits{Default: env.DefaultPageSize, Max: env.MaxPageSize},
	)
	return env, svc, nil
}

func runServe(ctx context.Context) error {
	env, svc, err := loadService()
	if err != nil {
		return err
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := router.NewRouter(env, svc)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", env.AppAddr).Str("data_dir", env.DataDir).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(env.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

type queryFlags struct {
	source    string
	page      int
	pageSize  int
	voiceMode bool
	summarize bool
	sortBy    string
	order     string
}

func newQueryCmd() *cobra.Command {
	var f queryFlags
	filterValues := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one data query and print the JSON response",
		Example: "  dataconnector query --source support --status open --page-size 5\n" +
			"  dataconnector query --source analytics --metric revenue --start-date 2024-01-01",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := loadService()
			if err != nil {
				return err
			}
			raw := domain.RawQuery{
				Source:    f.source,
				Page:      f.page,
				PageSize:  f.pageSize,
				VoiceMode: f.voiceMode,
				Summarize: f.summarize,
				Order:     f.order,
			}
			if !cmd.Flags().Changed("page-size") {
				raw.PageSize = svc.Limits.Default
			}
			if cmd.Flags().Changed("sort-by") {
				raw.SortBy = &f.sortBy
			}
			set := func(flag string) *string {
				if !cmd.Flags().Changed(flag) {
					return nil
				}
				return filterValues[flag]
			}
			raw.Status = set("status")
			raw.Priority = set("priority")
			raw.Metric = set("metric")
			raw.StartDate = set("start-date")
			raw.EndDate = set("end-date")

			resp, err := svc.Query(cmd.Context(), raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.source, "source", "", "data source: crm, support or analytics")
	flags.IntVar(&f.page, "page", 1, "page number (starts from 1)")
	flags.IntVar(&f.pageSize, "page-size", 0, "records per page (defaults to the configured page size)")
	flags.BoolVar(&f.voiceMode, "voice-mode", true, "cap the page size for voice clients")
	flags.BoolVar(&f.summarize, "summarize", false, "reduce each record to its summary fields")
	flags.StringVar(&f.sortBy, "sort-by", "", "field to sort by")
	flags.StringVar(&f.order, "order", domain.OrderDesc, "sort order: asc or desc")
	for _, name := range []string{"status", "priority", "metric", "start-date", "end-date"} {
		filterValues[name] = flags.String(name, "", name+" filter")
	}
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
