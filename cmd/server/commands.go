package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/encoding"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

func printJSON(w io.Writer, v interface{}) error {
	data, err := encoding.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newSampleCommand(cfgPath *string) *cobra.Command {
	var (
		mode     int
		seed     string
		explicit []string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the ordered scenario IDs for a mode and seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgPath)
			if err != nil {
				return err
			}
			smp, err := newSampler(cfg)
			if err != nil {
				return err
			}

			sel, err := smp.SelectWithExplicit(mode, seed, explicit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range sel.ScenarioIDs {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&mode, "mode", 32, "Number of scenarios: 16, 32 or 64")
	cmd.Flags().StringVar(&seed, "seed", "", "Seed; the same seed always yields the same selection")
	cmd.Flags().StringSliceVar(&explicit, "explicit", nil, "Scenario IDs to use instead when they form a valid selection")
	return cmd
}

type simulationOutput struct {
	RunID    string                  `json:"run_id"`
	Persona  string                  `json:"persona"`
	Mode     int                     `json:"mode"`
	Seed     string                  `json:"seed"`
	Scores   analysis.FunctionScores `json:"scores"`
	Types    typology.Types          `json:"types"`
	Resolved int                     `json:"resolved"`
}

func newSimulateCommand(cfgPath *string) *cobra.Command {
	var req assessment.SimulationRequest

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run and store an assessment answered by a built-in persona",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgPath)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			run, err := a.assessment.Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), simulationOutput{
				RunID:    run.ID,
				Persona:  req.Persona,
				Mode:     run.Mode,
				Seed:     run.Seed,
				Scores:   run.Scores,
				Types:    run.Types,
				Resolved: run.Resolved,
			})
		},
	}

	cmd.Flags().StringVar(&req.Persona, "persona", "strategist", "Built-in persona name")
	cmd.Flags().IntVar(&req.Mode, "mode", 64, "Number of scenarios: 16, 32 or 64")
	cmd.Flags().StringVar(&req.Seed, "seed", "", "Seed; empty draws a fresh one")
	return cmd
}

type corpusSummary struct {
	Scenarios   int                                                  `json:"scenarios"`
	ByArchetype map[corpus.Archetype]map[corpus.SituationContext]int `json:"by_archetype"`
}

func newScenariosCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Print scenario counts by archetype and context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgPath)
			if err != nil {
				return err
			}
			smp, err := newSampler(cfg)
			if err != nil {
				return err
			}

			c := smp.Corpus()
			return printJSON(cmd.OutOrStdout(), corpusSummary{
				Scenarios:   c.Len(),
				ByArchetype: c.Summary(),
			})
		},
	}
}
