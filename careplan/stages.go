// Copyright 2025 CarePlanGen
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package careplan

// StageDefinition describes one step of the sequential care-plan pipeline.
// The five stages follow the ADPIE nursing process: assessment, diagnosis
// and goal setting, interventions, evaluation criteria, then summary and
// administrative coordination.
type StageDefinition struct {
	// Name is the stable machine identifier, e.g. "stage_1_assessment_setup".
	Name string

	// AccordionTitle is the human-readable title shown in the client UI.
	AccordionTitle string

	// Focus is the stage-specific instruction substituted into the base
	// system prompt.
	Focus string

	// PropertyPaths are the dotted schema paths this stage generates or
	// updates. A "*" segment descends into an array's item schema.
	PropertyPaths []string

	// RequiredPaths mark which top-level properties the stage output must
	// contain.
	RequiredPaths []string
}

// Stage name identifiers.
const (
	StageAssessmentSetup     = "stage_1_assessment_setup"
	StageDiagnosisGoals      = "stage_2_diagnosis_goals"
	StageInterventions       = "stage_3_interventions"
	StageEvaluationCriteria  = "stage_4_evaluation_criteria"
	StageSummaryCoordination = "stage_5_summary_admin_coordination"
)

// Stages is the ordered pipeline definition. Stage order is semantic:
// later stages fill in structures whose shells earlier stages created.
var Stages = []StageDefinition{
	{
		Name:           StageAssessmentSetup,
		AccordionTitle: "Stage 1: Comprehensive Assessment, Diagnoses & Assessments List",
		Focus: "Conduct a comprehensive initial assessment. Populate demographics, vitals, history, and detailed additional assessment fields. " +
			"Generate an `assessmentList` of up to 10 items, each with `type`, `rationale`, and `status`. " +
			"Create initial nursing diagnoses up to 5, including diagnosis name, related factors, and evidence. " +
			"Populate the `aiAgents` array with their initial contributions.",
		PropertyPaths: []string{
			"patientData", "clinicalData",
			"assessment_subjective_chief_complaint", "assessment_subjective_hpi",
			"assessment_subjective_goals", "assessment_subjective_other",
			"assessment_objective_vitals_summary", "assessment_objective_physical_exam",
			"assessment_objective_diagnostics", "assessment_objective_meds_reviewed", "assessment_objective_other",
			"recommendedAssessmentsList",
			"nursingDiagnoses",
			"aiAgents",
		},
		RequiredPaths: []string{
			"patientData", "clinicalData", "assessment_subjective_chief_complaint",
			"nursingDiagnoses", "recommendedAssessmentsList", "aiAgents",
		},
	},
	{
		Name:           StageDiagnosisGoals,
		AccordionTitle: "Stage 2: Nursing Diagnoses Refinement & Goal Setting (up to 5 goals/diagnosis)",
		Focus: "Based on the assessment and initial diagnoses, refine `diagnosis_evidence` or `diagnosis_risk_factors` for each of the up to 5 NANDA diagnoses. " +
			"Then, for each confirmed nursing diagnosis, develop up to 5 specific, measurable, achievable, relevant, and time-bound (SMART) " +
			"patient-centered goals. Populate ONLY the `goals` array for each nursing diagnosis, including `goal_description`, `goal_target_date`, `goal_outcomes`, and `goal_rationale`. " +
			"Update `aiAgents` with their `planningContribution`. " +
			"Ensure the output strictly adheres to the JSON schema provided for this stage.",
		PropertyPaths: []string{
			"nursingDiagnoses.*.diagnosis_evidence", "nursingDiagnoses.*.diagnosis_risk_factors",
			"nursingDiagnoses.*.goals",
			"aiAgents",
		},
		RequiredPaths: []string{"nursingDiagnoses"},
	},
	{
		Name:           StageInterventions,
		AccordionTitle: "Stage 3: Intervention Planning (20 interventions/goal)",
		Focus: "For each goal (up to 5 goals per diagnosis), develop a comprehensive set of 20 evidence-based nursing interventions " +
			"(specifically 15 general interventions and 5 health teaching interventions). " +
			"Populate ONLY the `interventions` array within each `goal` object. Each intervention must include `interventionText`, `interventionType` (e.g., 'general', 'health_teaching'), and `rationale`. " +
			"Update `aiAgents` with their `implementationContribution`. " +
			"The output must strictly follow the JSON schema for this stage.",
		PropertyPaths: []string{
			"nursingDiagnoses.*.goals.*.interventions",
			"aiAgents",
		},
		RequiredPaths: []string{"nursingDiagnoses"},
	},
	{
		Name:           StageEvaluationCriteria,
		AccordionTitle: "Stage 4: Evaluation Criteria Planning (1 evaluation/goal)",
		Focus: "For each goal (up to 5 goals per diagnosis), define specific evaluation criteria. " +
			"Populate ONLY the `evaluation` object within each `goal` object. This object must include `evaluationText`, `evaluationMethod`, `evaluationTargetDate`, and `evaluationStatus`. " +
			"Update `aiAgents` with their `evaluationContribution`. " +
			"The output must strictly follow the JSON schema for this stage.",
		PropertyPaths: []string{
			"nursingDiagnoses.*.goals.*.evaluation",
			"aiAgents",
		},
		RequiredPaths: []string{"nursingDiagnoses"},
	},
	{
		Name:           StageSummaryCoordination,
		AccordionTitle: "Stage 5: Interdisciplinary Plan, Summary & Administrative Support",
		Focus: "Develop an `interdisciplinaryPlan` identifying key collaborations. " +
			"Provide an `overall_plan_summary`. Define clear `next_steps` for ongoing care. " +
			"Identify any `priorAuthItems` required. Update `aiAgents` with final `confidenceScore` and overall `insights`. " +
			"Generate `sourcesData` used throughout the plan. " +
			"Create `notification_title`, `notification_message`, and details for care team communication. " +
			"Strictly adhere to the JSON schema provided for this stage for all generated fields.",
		PropertyPaths: []string{
			"interdisciplinaryPlan",
			"overall_plan_summary", "next_steps",
			"priorAuthItems", "aiAgents", "sourcesData",
			"notification_title", "notification_message",
			"notification_detail_1", "notification_detail_2",
		},
		RequiredPaths: []string{"interdisciplinaryPlan", "overall_plan_summary", "next_steps", "aiAgents"},
	},
}

// baseSystemPrompt frames every stage request. The %s slot receives the
// stage's Focus text.
const baseSystemPrompt = "You are an expert clinical AI. Based on the full patient context and any previously generated care plan sections provided in the user message, " +
	"your task for this specific stage is to: %s. " +
	"Generate ONLY the data specified by the JSON schema provided for this stage. " +
	"Do not regenerate or include any fields that are not part of this stage's specific schema."
