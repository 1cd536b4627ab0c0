// Package schema is the single source of truth for the questionnaire
// layout: every field id, its section, and the auto-completed section
// slots. UI handlers, progress computation and the report renderer all
// read from here so the field list cannot drift between consumers.
package schema

// SectionKind distinguishes user-filled sections from sections whose
// completeness is derived from project artifacts.
type SectionKind string

const (
	KindUser SectionKind = "user"
	KindAuto SectionKind = "auto"
)

// Field is one questionnaire entry inside a user section.
type Field struct {
	ID     string
	Prompt string
}

// Section groups fields under a numbered heading. Auto sections carry no
// fields; their completion comes from the project directory signal.
type Section struct {
	Number int
	Title  string
	Kind   SectionKind
	Fields []Field
}

// Sections returns the full questionnaire layout in declaration order.
func Sections() []Section {
	return sections
}

var sections = []Section{
	{
		Number: 1,
		Title:  "System Overview",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "aiSystemDescription", Prompt: "Describe the AI system, its model type and core capabilities."},
			{ID: "intendedPurpose", Prompt: "What is the intended purpose and who are the intended users?"},
			{ID: "deploymentContext", Prompt: "In what environment and workflow is the system deployed?"},
		},
	},
	{
		Number: 2,
		Title:  "Governance & Accountability",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "rolesDocumented", Prompt: "Are roles and responsibilities for the AI system documented?"},
			{ID: "oversightMechanism", Prompt: "What human oversight mechanism is in place?"},
			{ID: "incidentResponsePlan", Prompt: "Describe the incident response plan for AI failures."},
		},
	},
	{
		Number: 3,
		Title:  "Data & Privacy",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "dataSources", Prompt: "What data sources feed training and inference?"},
			{ID: "personalDataUse", Prompt: "Is personal data processed, and on what legal basis?"},
			{ID: "privacyByDesign", Prompt: "How are privacy-by-design principles applied?"},
			{ID: "dataRetention", Prompt: "What are the data retention and deletion policies?"},
		},
	},
	{
		Number: 4,
		Title:  "Security",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "securityControls", Prompt: "What security controls protect the model and its data?"},
			{ID: "accessManagement", Prompt: "How is access to the system and its outputs managed?"},
			{ID: "adversarialTesting", Prompt: "Has the system been tested against adversarial inputs?"},
		},
	},
	{
		Number: 5,
		Title:  "Fairness & Bias",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "biasAssessment", Prompt: "Has a bias assessment been performed on training data and outputs?"},
			{ID: "fairnessMetrics", Prompt: "Which fairness metrics are tracked?"},
			{ID: "demographicImpact", Prompt: "What impact does the system have across demographic groups?"},
		},
	},
	{
		Number: 6,
		Title:  "Transparency",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "explainability", Prompt: "Can individual decisions be explained to affected persons?"},
			{ID: "userNotification", Prompt: "Are users notified when they interact with the AI system?"},
			{ID: "decisionAppeal", Prompt: "Is there a process to contest or appeal automated decisions?"},
		},
	},
	{
		Number: 7,
		Title:  "Monitoring & Maintenance",
		Kind:   KindUser,
		Fields: []Field{
			{ID: "performanceMonitoring", Prompt: "How is model performance monitored in production?"},
			{ID: "driftDetection", Prompt: "How is data or concept drift detected?"},
			{ID: "updateProcess", Prompt: "What is the process for model updates and re-validation?"},
		},
	},
	{Number: 8, Title: "Model Inventory", Kind: KindAuto},
	{Number: 9, Title: "Dataset Inventory", Kind: KindAuto},
	{Number: 10, Title: "Evaluation Results", Kind: KindAuto},
	{Number: 11, Title: "Technical Documentation", Kind: KindAuto},
	{Number: 12, Title: "Risk Register", Kind: KindAuto},
	{Number: 13, Title: "Audit Trail", Kind: KindAuto},
}

var fieldSection = func() map[string]int {
	m := make(map[string]int)
	for _, s := range sections {
		for _, f := range s.Fields {
			m[f.ID] = s.Number
		}
	}
	return m
}()

// FieldIDs returns every user-editable field id in section order.
func FieldIDs() []string {
	ids := make([]string, 0, UserFieldCount())
	for _, s := range sections {
		for _, f := range s.Fields {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// IsKnownField reports whether id is a declared questionnaire field.
func IsKnownField(id string) bool {
	_, ok := fieldSection[id]
	return ok
}

// SectionOf returns the section number a field belongs to, or 0 when the
// field is unknown.
func SectionOf(fieldID string) int {
	return fieldSection[fieldID]
}

// UserSections returns only the sections with user-editable fields.
func UserSections() []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Kind == KindUser {
			out = append(out, s)
		}
	}
	return out
}

// AutoSectionNumbers returns the numbers of all auto-completed sections.
func AutoSectionNumbers() []int {
	out := make([]int, 0, AutoSectionSlots())
	for _, s := range sections {
		if s.Kind == KindAuto {
			out = append(out, s.Number)
		}
	}
	return out
}

// UserFieldCount is the total number of user-editable fields (U in the
// progress formula).
func UserFieldCount() int {
	n := 0
	for _, s := range sections {
		n += len(s.Fields)
	}
	return n
}

// AutoSectionSlots is the fixed number of auto-section slots (A in the
// progress formula).
func AutoSectionSlots() int {
	n := 0
	for _, s := range sections {
		if s.Kind == KindAuto {
			n++
		}
	}
	return n
}
