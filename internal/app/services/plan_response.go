package services

import (
	"fmt"
	"strings"

	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
)

// ParseVariant lower-cases a requested plan variant. An empty variant selects all of them.
func ParseVariant(variant string) (string, error) {
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		return "", nil
	}
	for _, name := range dto.VariantNames {
		if name == variant {
			return variant, nil
		}
	}
	return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown variant %q: use one of %s", variant, strings.Join(dto.VariantNames, ", "))).
		WithCode(string(dto.ErrorCodeUnknownVariant)).
		WithDetails(map[string]interface{}{"field": "variant", "allowed": dto.VariantNames})
}

// Response maps the plan to its API shape, keeping only the requested variant.
func (p *Plan) Response(variant string, canRegister []string) (dto.PlanResponse, error) {
	variant, err := ParseVariant(variant)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	variants, ok := dto.NewSequenceResponses(p.Recommendations, variant, p.Reference.Courses, canRegister)
	if !ok {
		return dto.PlanResponse{}, fmt.Errorf("%w: plan has no %s variant", apperrors.ErrBadRequest, variant)
	}
	return dto.PlanResponse{
		PlanID:          p.ID,
		StudentID:       p.StudentID,
		Majors:          p.Majors,
		CatalogVersion:  p.CatalogVersion,
		ComputedAt:      p.ComputedAt,
		TransferCredits: p.TransferCredits,
		CoreCredits:     p.CoreCredits,
		Variants:        variants,
	}, nil
}
