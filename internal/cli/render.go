package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yigit/mathplan/internal/app/models/dto"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	mutedColor   = lipgloss.Color("#6B7280")
	greenColor   = lipgloss.Color("#10B981")
	yellowColor  = lipgloss.Color("#F59E0B")
	redColor     = lipgloss.Color("#EF4444")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	variantStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	bucketStyle  = lipgloss.NewStyle().Bold(true).PaddingLeft(2)
	itemStyle    = lipgloss.NewStyle().PaddingLeft(4)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	doneStyle    = lipgloss.NewStyle().Foreground(greenColor)
	pendingStyle = lipgloss.NewStyle().Foreground(yellowColor)
	failStyle    = lipgloss.NewStyle().Foreground(redColor)
)

// renderPlan formats a plan for the terminal. Lipgloss drops the colors when
// the output is not a TTY, so the text stays readable in pipes and tests.
func renderPlan(plan dto.PlanResponse) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Math plan for student "+plan.StudentID) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("majors: %s  catalog: %s", strings.Join(plan.Majors, ", "), plan.CatalogVersion)) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("transfer credits: %.1f  core credits: %.1f", plan.TransferCredits, plan.CoreCredits)) + "\n")

	for _, seq := range plan.Variants {
		b.WriteString("\n" + variantStyle.Render(strings.ToUpper(seq.Variant)) + "\n")

		for _, bucket := range seq.Buckets {
			if !bucket.HasData {
				continue
			}
			b.WriteString(bucketStyle.Render(bucketTitle(bucket.Name)) + "\n")
			for _, c := range bucket.Courses {
				b.WriteString(itemStyle.Render(renderCourse(c)) + "\n")
			}
			for _, g := range bucket.Groups {
				b.WriteString(itemStyle.Render(renderGroup(g)) + "\n")
			}
		}

		if seq.PreArrivalPending > 0 {
			b.WriteString(pendingStyle.Render(fmt.Sprintf("  %d course(s) to finish before arrival", seq.PreArrivalPending)) + "\n")
		}
		if seq.EligibleForSemester1 != nil {
			if *seq.EligibleForSemester1 {
				b.WriteString(doneStyle.Render("  eligible for semester 1 courses") + "\n")
			} else {
				b.WriteString(failStyle.Render("  not yet eligible for semester 1 courses") + "\n")
			}
		}
	}

	return b.String()
}

func bucketTitle(name string) string {
	switch name {
	case "pre-arrival":
		return "Before arrival"
	case "semester1":
		return "Semester 1"
	case "semester2":
		return "Semester 2"
	default:
		return "Additional"
	}
}

func renderCourse(c dto.PlannedCourseResponse) string {
	line := fmt.Sprintf("%-10s %d cr", c.Label, c.Credits)
	if c.RequiredGrade != nil {
		line += fmt.Sprintf("  min grade %.1f", *c.RequiredGrade)
	}

	status := mutedStyle.Render(strings.ToLower(c.Status))
	if c.Sufficient {
		status = doneStyle.Render(strings.ToLower(c.Status))
	}
	line += "  " + status

	if c.AddedAsPrerequisite {
		line += mutedStyle.Render("  (prerequisite)")
	}
	return line
}

func renderGroup(g dto.PlannedGroupResponse) string {
	line := g.Description
	if g.RemainingCredits != nil && *g.RemainingCredits > 0 {
		line += pendingStyle.Render(fmt.Sprintf("  %d cr remaining", *g.RemainingCredits))
	}
	if g.Satisfied {
		line += doneStyle.Render("  satisfied")
	}
	return line
}
