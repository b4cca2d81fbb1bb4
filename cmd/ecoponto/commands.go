package main

import (
	"fmt"
	"strings"

	"ecoponto/internal/config"
	"ecoponto/internal/logger"
	"ecoponto/internal/model"
	"ecoponto/internal/service"
	"ecoponto/internal/view"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	backend  string
	provider string
	verbose  bool

	address string
	lat     float64
	lon     float64
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "ecoponto",
		Short:         "Ask whether an item is recyclable and where to drop it off",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "recycling backend base URL (overrides RECYCLING_API_BASE)")
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "geocoding provider: nominatim or google (overrides GEOCODING_PROVIDER)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(newCheckCmd(opts), newFindCmd(opts), newAssociateCmd(opts))
	return root
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <item>",
		Short: "Classify an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := opts.orchestrator(cmd)
			if err != nil {
				return err
			}

			result, err := orch.Classify(cmd.Context(), strings.Join(args, " "))
			if werr := view.WriteClassificationText(cmd.OutOrStdout(), result); werr != nil {
				return werr
			}
			return err
		},
	}
}

func newFindCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <item>",
		Short: "Classify an item and list nearby collection points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := opts.orchestrator(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := orch.Classify(cmd.Context(), strings.Join(args, " "))
			if werr := view.WriteClassificationText(out, result); werr != nil {
				return werr
			}
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			location, err := orch.SearchLocation(cmd.Context(), opts.locateRequest(cmd))
			if werr := view.WriteLocationText(out, location); werr != nil {
				return werr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.address, "address", "", "search near this address")
	cmd.Flags().Float64Var(&opts.lat, "lat", 0, "search near this latitude")
	cmd.Flags().Float64Var(&opts.lon, "lon", 0, "search near this longitude")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsMutuallyExclusive("address", "lat")
	return cmd
}

func newAssociateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "associate",
		Short: "Register a recycling association (not available yet)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := opts.orchestrator(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), orch.SubmitAssociation().Message)
			return err
		},
	}
}

// orchestrator wires a one-shot orchestrator from the environment and flags
func (o *cliOptions) orchestrator(cmd *cobra.Command) (*service.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Backend.BaseURL = o.backend
	}
	if o.provider != "" {
		cfg.Geocoding.Provider = o.provider
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var log logrus.FieldLogger = logger.Discard()
	if o.verbose {
		l := logger.New(config.LoggingConfig{Level: "debug", Format: "text"})
		l.SetOutput(cmd.ErrOrStderr())
		log = l
	}

	maps, err := service.NewMapsProvider(&cfg.Geocoding, log)
	if err != nil {
		return nil, err
	}
	backend := service.NewRecyclingClient(cfg.Backend.BaseURL, cfg.BackendTimeout(), log)

	return service.NewOrchestrator(backend, maps, service.PositionOptionsFrom(cfg.Geolocation), log), nil
}

// locateRequest picks the address, the given coordinate, or no device at all
func (o *cliOptions) locateRequest(cmd *cobra.Command) service.LocateRequest {
	switch {
	case cmd.Flags().Changed("address"):
		return service.LocateRequest{Mode: model.ModeAddress, Address: o.address}
	case cmd.Flags().Changed("lat"):
		return service.LocateRequest{
			Mode:   model.ModeDevice,
			Device: service.StaticPosition{Latitude: o.lat, Longitude: o.lon},
		}
	default:
		return service.LocateRequest{Mode: model.ModeDevice}
	}
}
