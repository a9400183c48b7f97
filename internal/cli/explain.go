package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/aura/internal/domain/aura"
	"github.com/okian/aura/internal/domain/severity"
)

func newExplainCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain the severity score of a weather observation",
		Long: `Score an observation and list the factors that moved it, largest first.

Example:
  aura explain --weather-code 65 --precipitation 12 --wind-speed 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := observationFromFlags(cmd.Flags(), cmd.InOrStdin())
			if err != nil {
				return err
			}
			e := severity.Explain(severity.Score(obs.Snapshot()))
			w := cmd.OutOrStdout()

			switch a.format {
			case formatJSON:
				return writeJSON(w, e)
			case formatCSS:
				return fmt.Errorf("%w: explain has no css output", ErrFormat)
			}

			if _, err := fmt.Fprintf(w, "%s, severity %.0f%%\n\n", e.Label, e.Score*100); err != nil {
				return err
			}
			t := NewTable([]string{"FACTOR", "VALUE", "WEIGHT", "SHARE"})
			for _, f := range e.Factors {
				t.AddRow([]string{f.DisplayName, num(f.Value), num(f.Weight), fmt.Sprintf("%.0f%%", f.Share*100)})
			}
			_, err = fmt.Fprint(w, t.Render())
			return err
		},
	}
	addObservationFlags(cmd.Flags())
	return cmd
}

func newModesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List render modes and what drives them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := aura.DescribeAll()
			w := cmd.OutOrStdout()
			if a.format == formatJSON {
				return writeJSON(w, infos)
			}

			effects, err := cmd.Flags().GetBool("effects")
			if err != nil {
				return err
			}
			if !effects {
				t := NewTable([]string{"MODE", "TITLE"})
				for _, info := range infos {
					t.AddRow([]string{info.Mode.String(), info.Title})
				}
				_, err = fmt.Fprint(w, t.Render())
				return err
			}
			for _, info := range infos {
				if _, err := fmt.Fprintf(w, "%s (%s)\n", info.Title, info.Mode); err != nil {
					return err
				}
				for _, e := range info.Effects {
					if _, err := fmt.Fprintf(w, "  - %s\n", e); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("effects", "e", false, "list the weather inputs each mode reacts to")
	return cmd
}
