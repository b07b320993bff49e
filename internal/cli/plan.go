package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yigit/mathplan/internal/app/services"
	"github.com/yigit/mathplan/internal/config"
	"github.com/yigit/mathplan/internal/domain/mathplan"
	"github.com/yigit/mathplan/internal/pkg/logger"
	"github.com/yigit/mathplan/internal/seed"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a student's math sequences offline",
	Long: `Compute the critical, recommended and typical math sequences of a student
without a database.

The fixture is a YAML dataset with courses, groups, prerequisites, majors and
student records. Without --fixture the built-in catalog and sample student
are used. Without --major the student's selected majors are planned.`,
	RunE: runPlan,
}

var (
	planFixture     string
	planStudent     string
	planMajors      []string
	planVariant     string
	planCanRegister []string
	planJSON        bool
)

func init() {
	planCmd.Flags().StringVarP(&planFixture, "fixture", "f", "", "YAML dataset to plan against")
	planCmd.Flags().StringVarP(&planStudent, "student", "s", "", "student id (default: first student in the fixture)")
	planCmd.Flags().StringSliceVarP(&planMajors, "major", "m", nil, "program code to plan for (repeatable)")
	planCmd.Flags().StringVar(&planVariant, "variant", "", "only show one variant: critical, recommended or typical")
	planCmd.Flags().StringSliceVar(&planCanRegister, "can-register", nil, "courses the student may register for, to check semester 1 eligibility")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Output the plan as JSON")
	rootCmd.AddCommand(planCmd)
}

func loadFixture() (*seed.Dataset, error) {
	if planFixture == "" {
		return seed.DefaultDataset()
	}
	return seed.LoadDataset(planFixture)
}

// planningReference builds the planner policy from the planning.* keys on top of the
// built-in exclusions, clearances and core policy, the same way the API server does.
func planningReference() (mathplan.Reference, int, error) {
	var cfg config.Config
	cfg.Planning.Core = mathplan.DefaultCorePolicy()
	cfg.Planning.Exclusions = mathplan.DefaultExclusions()
	cfg.Planning.Clearances = mathplan.DefaultClearances()

	err := viper.UnmarshalKey("planning", &cfg.Planning, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.ZeroFields = true
	})
	if err != nil {
		return mathplan.Reference{}, 0, fmt.Errorf("invalid planning configuration: %w", err)
	}
	return cfg.PlanningReference(), viper.GetInt("planning.max_majors"), nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	variant, err := services.ParseVariant(planVariant)
	if err != nil {
		return err
	}

	ref, maxMajors, err := planningReference()
	if err != nil {
		return err
	}

	ds, err := loadFixture()
	if err != nil {
		return err
	}

	studentID := planStudent
	if studentID == "" {
		if len(ds.Students) == 0 {
			return fmt.Errorf("fixture has no students: pass one with the fixture")
		}
		studentID = ds.Students[0].Student.ID
	}

	lgr := logger.Component("cli")
	catalog := services.NewCatalogService(ds, ref, 0, lgr)
	plans := services.NewPlanService(catalog, ds, 0, maxMajors, lgr)

	plan, err := plans.StudentPlan(context.Background(), studentID, planMajors)
	if err != nil {
		return fmt.Errorf("failed to compute plan: %w", err)
	}

	response, err := plan.Response(variant, planCanRegister)
	if err != nil {
		return err
	}

	if planJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), renderPlan(response))
	return err
}
