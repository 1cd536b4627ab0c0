package report

import (
	"strings"
	"testing"

	"complyq/internal/model"
)

func testProject() *model.Project {
	return &model.Project{
		ID:          "p1",
		Name:        "Claims Triage Model",
		Description: "Scores incoming insurance claims for manual review priority.",
		Status:      model.ProjectStatusActive,
	}
}

func TestRenderFillsAnswers(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	rec := model.NewAssessmentRecord("p1")
	rec, err = rec.SetField("aiSystemDescription", "Gradient-boosted claims classifier")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}

	html, err := r.Render(rec, testProject(), "Review access controls quarterly.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Claims Triage Model",
		"Gradient-boosted claims classifier",
		"Review access controls quarterly.",
		"Risk level",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRenderEmptyFieldsFallBack(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	html, err := r.Render(model.NewAssessmentRecord("p1"), testProject(), "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, NotProvided) {
		t.Error("empty answers should render as the fallback string")
	}
	if !strings.Contains(html, "Pending") {
		t.Error("empty record should render risk level Pending")
	}
	if !strings.Contains(html, "0%") {
		t.Error("empty record should render 0% completion")
	}
}

func TestRenderAutoSections(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	rec := model.NewAssessmentRecord("p1").MarkAutoSections([]int{8})
	html, err := r.Render(rec, testProject(), "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "Satisfied by registered audit-directory records.") {
		t.Error("completed auto section not marked satisfied")
	}
	if !strings.Contains(html, "No qualifying records registered.") {
		t.Error("incomplete auto sections should be marked unsatisfied")
	}
}

func TestRenderRequiresInputs(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.Render(nil, testProject(), ""); err == nil {
		t.Error("expected error for nil record")
	}
	if _, err := r.Render(model.NewAssessmentRecord("p1"), nil, ""); err == nil {
		t.Error("expected error for nil project")
	}
}

func TestDefaultBoilerplateCoversAllSections(t *testing.T) {
	b, err := DefaultBoilerplate()
	if err != nil {
		t.Fatalf("DefaultBoilerplate: %v", err)
	}
	for n := 1; n <= 13; n++ {
		if b.SectionIntro(n) == "" {
			t.Errorf("no boilerplate for section %d", n)
		}
	}
	if b.Disclaimer == "" {
		t.Error("missing disclaimer")
	}
}
