package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/repository/memory"
	"backend/internal/vision"
)

type stubAnalyzer struct {
	analysis *model.AIAnalysis
	err      error
}

func (s *stubAnalyzer) AnalyzeDoor(ctx context.Context, image []byte, mediaType string) (*model.AIAnalysis, error) {
	return s.analysis, s.err
}

func newAnalysisFixture(t *testing.T, analyzer vision.Analyzer) (AnalysisService, repository.AssessmentRepository, string) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	sites := memory.NewSiteRepository(store)
	assessments := memory.NewAssessmentRepository(store)

	site := model.Site{Name: "Harlech Castle"}
	if err := sites.Create(ctx, &site); err != nil {
		t.Fatalf("seed site: %v", err)
	}
	assessment := model.Assessment{SiteID: site.ID, DoorLocation: "Gatehouse passage"}
	if err := assessments.Create(ctx, &assessment); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}

	svc := NewAnalysisService(assessments, analyzer, memory.NewAuditRepository(store))
	return svc, assessments, assessment.ID.String()
}

func TestAnalyzeDoorAppliesSingleMutation(t *testing.T) {
	svc, assessments, id := newAnalysisFixture(t, &stubAnalyzer{
		analysis: &model.AIAnalysis{
			DoorType:     "studded gatehouse door",
			UrgencyLevel: model.UrgencyHigh,
		},
	})

	updated, err := svc.AnalyzeDoor(context.Background(), id, "", []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("AnalyzeDoor: %v", err)
	}
	if updated.DoorType != "studded gatehouse door" {
		t.Errorf("DoorType = %q", updated.DoorType)
	}
	if updated.ConditionRating != 2 {
		t.Errorf("ConditionRating = %d, want 2 for high urgency", updated.ConditionRating)
	}
	if updated.AIAnalysis == nil || updated.AIAnalysis.UrgencyLevel != model.UrgencyHigh {
		t.Error("analysis payload missing on the assessment")
	}

	stored, err := assessments.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ConditionRating != 2 || stored.DoorType != "studded gatehouse door" {
		t.Error("mutation not persisted")
	}
}

func TestAnalyzeDoorFailureLeavesAssessmentUntouched(t *testing.T) {
	upstreamErr := fmt.Errorf("%w: model overloaded", vision.ErrUpstream)
	svc, assessments, id := newAnalysisFixture(t, &stubAnalyzer{err: upstreamErr})

	before, err := assessments.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err = svc.AnalyzeDoor(context.Background(), id, "", []byte("img"), "image/jpeg")
	if !errors.Is(err, vision.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}

	after, err := assessments.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.AIAnalysis != nil {
		t.Error("analysis written despite failure")
	}
	if after.DoorType != before.DoorType || after.ConditionRating != before.ConditionRating {
		t.Error("assessment mutated despite failure")
	}
}

func TestAnalyzeDoorUnknownAssessment(t *testing.T) {
	svc, _, _ := newAnalysisFixture(t, &stubAnalyzer{analysis: &model.AIAnalysis{DoorType: "x"}})
	_, err := svc.AnalyzeDoor(context.Background(), "b2c8b4be-0000-0000-0000-000000000000", "", []byte("img"), "image/jpeg")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
