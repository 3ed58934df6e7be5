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

package docjson

// Typed read views over the accumulating care-plan document.
//
// The document itself stays a Value tree so the merger can operate
// structurally; these wrappers give the rest of the system (and tests)
// named access to the fields that matter without scattering string keys.
// Diagnoses and goals are positionally indexed: index i in one generation
// stage corresponds to index i in every later stage.

// Diagnosis-level field names in the document schema.
const (
	KeyNursingDiagnoses  = "nursingDiagnoses"
	KeyDiagnosisNANDA    = "diagnosis_nanda"
	KeyDiagnosisRelated  = "diagnosis_related_to"
	KeyDiagnosisEvidence = "diagnosis_evidence"
	KeyDiagnosisIsRisk   = "diagnosis_is_risk"
	KeyDiagnosisRisks    = "diagnosis_risk_factors"
	KeyGoals             = "goals"
	KeyInterventions     = "interventions"
	KeyEvaluation        = "evaluation"
)

// CarePlanDocument is a typed view over the accumulating document object.
type CarePlanDocument struct {
	root Object
}

// NewCarePlanDocument wraps a document object. A nil object is treated as an
// empty document.
func NewCarePlanDocument(root Object) CarePlanDocument {
	return CarePlanDocument{root: root}
}

// Root returns the underlying object.
func (d CarePlanDocument) Root() Object { return d.root }

// PatientData returns the patient demographic block.
func (d CarePlanDocument) PatientData() Object { return d.root.GetObject("patientData") }

// ClinicalData returns the labs/medications/treatments block.
func (d CarePlanDocument) ClinicalData() Object { return d.root.GetObject("clinicalData") }

// Diagnoses returns the positionally ordered nursing diagnoses.
func (d CarePlanDocument) Diagnoses() []NursingDiagnosis {
	arr := d.root.GetArray(KeyNursingDiagnoses)
	out := make([]NursingDiagnosis, 0, len(arr))
	for _, v := range arr {
		if obj, ok := v.(Object); ok {
			out = append(out, NursingDiagnosis{obj: obj})
		}
	}
	return out
}

// PriorAuthItems returns the prior-authorization items array.
func (d CarePlanDocument) PriorAuthItems() Array { return d.root.GetArray("priorAuthItems") }

// Sources returns the cited sources array.
func (d CarePlanDocument) Sources() Array { return d.root.GetArray("sourcesData") }

// InterdisciplinaryPlan returns the interdisciplinary plan array.
func (d CarePlanDocument) InterdisciplinaryPlan() Array {
	return d.root.GetArray("interdisciplinaryPlan")
}

// PlanSummary returns the overall plan summary text.
func (d CarePlanDocument) PlanSummary() string { return d.root.GetString("overall_plan_summary") }

// NextSteps returns the next-step strings.
func (d CarePlanDocument) NextSteps() []string { return d.root.GetArray("next_steps").Strings() }

// NursingDiagnosis is a typed view over one diagnosis object.
type NursingDiagnosis struct {
	obj Object
}

// Label returns the NANDA diagnosis label.
func (n NursingDiagnosis) Label() string { return n.obj.GetString(KeyDiagnosisNANDA) }

// RelatedTo returns the etiology ("related to") text.
func (n NursingDiagnosis) RelatedTo() string { return n.obj.GetString(KeyDiagnosisRelated) }

// IsRisk reports whether this is a risk-type diagnosis.
func (n NursingDiagnosis) IsRisk() bool {
	b, _ := n.obj[KeyDiagnosisIsRisk].(Bool)
	return bool(b)
}

// Evidence returns the "as evidenced by" items.
func (n NursingDiagnosis) Evidence() []string {
	return n.obj.GetArray(KeyDiagnosisEvidence).Strings()
}

// RiskFactors returns the risk factors for risk-type diagnoses.
func (n NursingDiagnosis) RiskFactors() []string {
	return n.obj.GetArray(KeyDiagnosisRisks).Strings()
}

// Goals returns the positionally ordered goals under this diagnosis.
func (n NursingDiagnosis) Goals() []Goal {
	arr := n.obj.GetArray(KeyGoals)
	out := make([]Goal, 0, len(arr))
	for _, v := range arr {
		if obj, ok := v.(Object); ok {
			out = append(out, Goal{obj: obj})
		}
	}
	return out
}

// Goal is a typed view over one SMART goal object.
type Goal struct {
	obj Object
}

// Description returns the goal description.
func (g Goal) Description() string { return g.obj.GetString("goal_description") }

// TargetDate returns the goal target date string.
func (g Goal) TargetDate() string { return g.obj.GetString("goal_target_date") }

// Outcomes returns the expected outcome strings.
func (g Goal) Outcomes() []string { return g.obj.GetArray("goal_outcomes").Strings() }

// Rationale returns the goal rationale.
func (g Goal) Rationale() string { return g.obj.GetString("goal_rationale") }

// Interventions returns the interventions planned for this goal.
func (g Goal) Interventions() []Intervention {
	arr := g.obj.GetArray(KeyInterventions)
	out := make([]Intervention, 0, len(arr))
	for _, v := range arr {
		if obj, ok := v.(Object); ok {
			out = append(out, Intervention{obj: obj})
		}
	}
	return out
}

// Evaluation returns this goal's evaluation record and whether one is set.
func (g Goal) Evaluation() (Evaluation, bool) {
	obj := g.obj.GetObject(KeyEvaluation)
	return Evaluation{obj: obj}, obj != nil
}

// Intervention is a typed view over one nursing intervention object.
type Intervention struct {
	obj Object
}

// Text returns the intervention action text.
func (i Intervention) Text() string { return i.obj.GetString("interventionText") }

// Type returns the intervention type tag
// (general, health_teaching, monitoring, psychosocial).
func (i Intervention) Type() string { return i.obj.GetString("interventionType") }

// Rationale returns the evidence-based rationale.
func (i Intervention) Rationale() string { return i.obj.GetString("rationale") }

// Evaluation is a typed view over one goal evaluation object.
type Evaluation struct {
	obj Object
}

// Text returns the evaluation narrative.
func (e Evaluation) Text() string { return e.obj.GetString("evaluationText") }

// Method returns the evaluation method.
func (e Evaluation) Method() string { return e.obj.GetString("evaluationMethod") }

// TargetDate returns the evaluation target date string.
func (e Evaluation) TargetDate() string { return e.obj.GetString("evaluationTargetDate") }

// Status returns the status tag (met, partially_met, not_met, ongoing).
func (e Evaluation) Status() string { return e.obj.GetString("evaluationStatus") }
