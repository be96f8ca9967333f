package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanMaterialInput is one material line of a plan request. Quantity and
// unit price travel as decimal strings to avoid float drift on the wire.
type PlanMaterialInput struct {
	MaterialID    string          `json:"material_id" binding:"required"`
	MaterialName  string          `json:"material_name" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Supplier      string          `json:"supplier"`
	HeritageGrade string          `json:"heritage_grade"`
}

// CreatePlanRequest carries the conservation plan form
type CreatePlanRequest struct {
	WorkDescription   string              `json:"work_description" binding:"required"`
	Materials         []PlanMaterialInput `json:"materials" binding:"required,min=1"`
	EffortHours       float64             `json:"effort_hours" binding:"required,gt=0"`
	EffortLevel       string              `json:"effort_level" binding:"required"`
	ConservationNotes string              `json:"conservation_notes"`
}

// PlanService writes and reads conservation plans. A plan is 1:1 with its
// assessment and immutable once created.
type PlanService interface {
	CreatePlan(ctx context.Context, assessmentID, actorID string, req CreatePlanRequest) (*model.ConservationPlan, error)
	GetByAssessment(ctx context.Context, assessmentID string) (*model.ConservationPlan, error)
}

type planService struct {
	plans       repository.PlanRepository
	assessments repository.AssessmentRepository
	audits      repository.AuditRepository
}

// NewPlanService returns a new instance of PlanService
func NewPlanService(plans repository.PlanRepository, assessments repository.AssessmentRepository, audits repository.AuditRepository) PlanService {
	return &planService{plans: plans, assessments: assessments, audits: audits}
}

// ComputeTotalCost sums quantity times unit price across the lines and
// rounds the sum, not the lines, to two decimal places. Per-line rounding
// loses sub-cent amounts on fractional quantities of high-value materials.
func ComputeTotalCost(materials []model.MaterialRequirement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.Quantity.Mul(m.UnitPrice))
	}
	return total.Round(2)
}

func (s *planService) CreatePlan(ctx context.Context, assessmentID, actorID string, req CreatePlanRequest) (*model.ConservationPlan, error) {
	if !model.ValidEffortLevel(req.EffortLevel) {
		return nil, fmt.Errorf("unknown effort level %q", req.EffortLevel)
	}

	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	if _, err := s.plans.GetByAssessment(ctx, assessmentID); err == nil {
		return nil, fmt.Errorf("assessment %s already has a conservation plan: %w", assessmentID, workflow.ErrInvalidState)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing plan: %w", err)
	}

	materials := make([]model.MaterialRequirement, 0, len(req.Materials))
	for _, in := range req.Materials {
		materials = append(materials, model.MaterialRequirement{
			MaterialID:    in.MaterialID,
			MaterialName:  in.MaterialName,
			Quantity:      in.Quantity,
			Unit:          in.Unit,
			UnitPrice:     in.UnitPrice,
			TotalPrice:    in.Quantity.Mul(in.UnitPrice),
			Supplier:      in.Supplier,
			HeritageGrade: in.HeritageGrade,
		})
	}

	plan := &model.ConservationPlan{
		AssessmentID:      assessment.ID,
		WorkDescription:   req.WorkDescription,
		Materials:         materials,
		TotalCost:         ComputeTotalCost(materials),
		EffortHours:       req.EffortHours,
		EffortLevel:       req.EffortLevel,
		ConservationNotes: req.ConservationNotes,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	if actor, parseErr := uuid.Parse(actorID); parseErr == nil {
		recordAudit(ctx, s.audits, actor, model.ActionCreatePlan,
			plan.ID.String(), assessment.DoorLocation, map[string]interface{}{
				"assessment_id": assessmentID,
				"total_cost":    plan.TotalCost.String(),
				"effort_level":  plan.EffortLevel,
			})
	}

	return plan, nil
}

func (s *planService) GetByAssessment(ctx context.Context, assessmentID string) (*model.ConservationPlan, error) {
	return s.plans.GetByAssessment(ctx, assessmentID)
}
