package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/aura/internal/domain/model"
)

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "render mode (radial, layered, swirl, linear, particle, fractal, randomizer)")
	cmd.Flags().Int64("seed", 0, "seed for the randomized parts of the layout")
}

// renderFlags returns the resolved mode and the seed if one was given.
func (a *app) renderFlags(cmd *cobra.Command) (model.RenderRequest, error) {
	name, err := cmd.Flags().GetString("mode")
	if err != nil {
		return model.RenderRequest{}, err
	}
	req := model.RenderRequest{Mode: a.svc.ResolveMode(name)}
	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return req, err
		}
		req.Seed = &seed
	}
	return req, nil
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an aura from a weather observation",
		Long: `Render an aura from weather given as flags or as a JSON observation.

Examples:
  # A summer thunderstorm as a particle field
  aura render --temperature 28 --weather-code 95 --wind-speed 60 --mode particle

  # Replay a stored observation with a fixed seed and print CSS
  aura render -i observation.json --seed 42 -o css`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.renderFlags(cmd)
			if err != nil {
				return err
			}
			if req.Observation, err = observationFromFlags(cmd.Flags(), cmd.InOrStdin()); err != nil {
				return err
			}
			r, err := a.svc.Render(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeRendering(cmd.OutOrStdout(), r, a.format)
		},
	}
	addRenderFlags(cmd)
	addObservationFlags(cmd.Flags())
	return cmd
}

func newFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [place]",
		Short: "Render an aura from the current weather at a place",
		Long: `Fetch current weather for a place name or coordinates and render its aura.

Examples:
  aura fetch Reykjavik --mode layered
  aura fetch --lat 27.99 --lon 86.93 --alt 5364
  aura fetch "Sahara Desert" --source synthetic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.renderFlags(cmd)
			if err != nil {
				return err
			}
			req := model.LiveRequest{
				Query: strings.TrimSpace(strings.Join(args, " ")),
				Mode:  base.Mode,
				Seed:  base.Seed,
			}
			for name, dst := range map[string]**float64{"lat": &req.Latitude, "lon": &req.Longitude, "alt": &req.Altitude} {
				if !cmd.Flags().Changed(name) {
					continue
				}
				v, err := cmd.Flags().GetFloat64(name)
				if err != nil {
					return err
				}
				*dst = &v
			}
			r, err := a.svc.RenderLive(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeRendering(cmd.OutOrStdout(), r, a.format)
		},
	}
	addRenderFlags(cmd)
	cmd.Flags().Float64("lat", 0, "latitude in degrees")
	cmd.Flags().Float64("lon", 0, "longitude in degrees")
	cmd.Flags().Float64("alt", 0, "altitude in m (looked up when omitted)")
	return cmd
}

func newRandomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Render the aura of a random notable place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.renderFlags(cmd)
			if err != nil {
				return err
			}
			r, err := a.svc.RenderRandomPlace(cmd.Context(), req.Mode, req.Seed)
			if err != nil {
				return err
			}
			return writeRendering(cmd.OutOrStdout(), r, a.format)
		},
	}
	addRenderFlags(cmd)
	return cmd
}
