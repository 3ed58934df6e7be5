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

import "careplan/platform/careplan/docjson"

// carePlanSchemaJSON is the full JSON Schema for a generated care plan.
// Each stage receives a projection of this document; see SchemaProjector.
const carePlanSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CarePlanJsonData",
  "description": "Schema for AI-Powered Comprehensive Plan of Care data",
  "type": "object",
  "properties": {
    "patientData": {
      "type": "object",
      "properties": {
        "patient_full_name": {"type": "string"},
        "patient_age": {"type": ["string", "number"]},
        "patient_gender": {"type": "string"},
        "patient_mrn": {"type": "string"},
        "patient_dob": {"type": "string"},
        "patient_insurance_plan": {"type": "string"},
        "patient_policy_number": {"type": "string"},
        "patient_primary_provider": {"type": "string"},
        "patient_admission_date": {"type": "string"},
        "allergies": {"type": "array", "items": {"type": "string"}},
        "vitalSigns": {
          "type": "object",
          "properties": {
            "vital_bp": {"type": "string"},
            "vital_pulse": {"type": "string"},
            "vital_resp_rate": {"type": "string"},
            "vital_temp": {"type": "string"},
            "vital_o2sat": {"type": "string"},
            "vital_pain_score": {"type": "string"}
          }
        },
        "nyha_class_description": {"type": "string"}
      }
    },
    "clinicalData": {
      "type": "object",
      "properties": {
        "primary_diagnosis_text": {"type": "string"},
        "secondaryDiagnoses": {"type": "array", "items": {"type": "string"}},
        "labs": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "lab_n_name": {"type": "string"},
              "lab_n_value": {"type": "string"},
              "lab_n_flag": {"type": "string"},
              "lab_n_trend": {"type": "string"}
            }
          }
        },
        "medications": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "med_n_name": {"type": "string"},
              "med_n_dosage": {"type": "string"},
              "med_n_route": {"type": "string"},
              "med_n_frequency": {"type": "string"},
              "med_n_status": {"type": "string"},
              "med_n_pa_required": {"type": ["boolean", "string"]}
            }
          }
        },
        "treatments": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "treatment_n_name": {"type": "string"},
              "treatment_n_status": {"type": "string"},
              "treatment_n_details": {"type": "string"},
              "treatment_n_date": {"type": "string"},
              "treatment_n_pa_required": {"type": ["boolean", "string"]}
            }
          }
        },
        "last_imaging_summary": {"type": "string"},
        "last_ecg_summary": {"type": "string"}
      }
    },
    "aiAgents": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "specialty": {"type": "string"},
          "confidenceScore": {"type": "number", "description": "Overall confidence of this agent in its contributions (0.0 to 1.0)"},
          "insights": {"type": "array", "items": {"type": "string"}, "description": "Key insights or summaries provided by this agent"},
          "assessmentContribution": {"type": "string", "description": "Summary of this agent's contribution to the assessment phase"},
          "planningContribution": {"type": "string", "description": "Summary of this agent's contribution to the planning phase (diagnoses, goals)"},
          "implementationContribution": {"type": "string", "description": "Summary of this agent's contribution to the implementation phase (interventions)"},
          "evaluationContribution": {"type": "string", "description": "Summary of this agent's contribution to the evaluation phase"}
        },
        "required": ["name", "specialty", "confidenceScore", "insights"],
        "additionalProperties": false
      }
    },
    "recommendedAssessmentsList": {
      "type": "array",
      "description": "List of recommended assessments to be performed, with rationales and status.",
      "items": {
        "type": "object",
        "properties": {
          "item": {"type": "string", "description": "Specific assessment to be performed (e.g., 'Monitor blood pressure q4h')"},
          "rationale": {"type": "string", "description": "Reason for performing this assessment"},
          "status": {"type": "string", "enum": ["pending", "in_progress", "completed", "deferred"], "description": "Current status of the assessment"}
        },
        "required": ["item", "rationale", "status"]
      }
    },
    "priorAuthItems": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "item": {"type": "string"},
          "type": {"type": "string"},
          "status": {"type": "string"},
          "submittedDate": {"type": "string"},
          "approvedDate": {"type": "string"},
          "expirationDate": {"type": "string"},
          "estimatedResponse": {"type": "string"},
          "estimatedSubmission": {"type": "string"},
          "confidence": {"type": "string"},
          "criteria": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "met": {"type": ["boolean", "string"]},
                "notes": {"type": "string"}
              }
            }
          }
        },
        "additionalProperties": true
      }
    },
    "sourcesData": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "type": {"type": "string"},
          "url": {"type": "string"},
          "snippet": {"type": "string"},
          "retrieval_date": {"type": "string"},
          "agent_source": {"type": "string"}
        },
        "additionalProperties": true
      }
    },
    "assessment_subjective_chief_complaint": {"type": "string"},
    "assessment_subjective_hpi": {"type": "string"},
    "assessment_subjective_goals": {"type": "string"},
    "assessment_subjective_other": {"type": "string"},
    "assessment_objective_vitals_summary": {"type": "string"},
    "assessment_objective_physical_exam": {"type": "string"},
    "assessment_objective_diagnostics": {"type": "string"},
    "assessment_objective_meds_reviewed": {"type": "string"},
    "assessment_objective_other": {"type": "string"},
    "nursingDiagnoses": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "diagnosis_nanda": {"type": "string"},
          "diagnosis_related_to": {"type": "string"},
          "diagnosis_evidence": {"type": "array", "items": {"type": "string"}},
          "diagnosis_is_risk": {"type": "boolean"},
          "diagnosis_risk_factors": {"type": "array", "items": {"type": "string"}},
          "goals": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "goal_description": {"type": "string"},
                "goal_target_date": {"type": "string", "format": "date"},
                "goal_outcomes": {"type": "array", "items": {"type": "string"}},
                "goal_rationale": {"type": "string"},
                "interventions": {
                  "type": "array",
                  "description": "Interventions specific to this goal.",
                  "items": {
                    "type": "object",
                    "properties": {
                      "interventionText": {"type": "string", "description": "The specific nursing intervention action."},
                      "interventionType": {"type": "string", "enum": ["general", "health_teaching", "monitoring", "psychosocial"], "description": "Type of intervention."},
                      "rationale": {"type": "string", "description": "Evidence-based rationale for the intervention."}
                    },
                    "required": ["interventionText", "interventionType", "rationale"]
                  }
                },
                "evaluation": {
                  "type": "object",
                  "description": "Evaluation criteria and status for this goal.",
                  "properties": {
                    "evaluationText": {"type": "string", "description": "Description of how the goal achievement will be evaluated."},
                    "evaluationMethod": {"type": "string", "description": "Method used for evaluation (e.g., patient report, observation, lab values)."},
                    "evaluationTargetDate": {"type": "string", "format": "date", "description": "Target date for this specific evaluation point."},
                    "evaluationStatus": {"type": "string", "enum": ["met", "partially_met", "not_met", "ongoing"], "description": "Status of goal achievement."}
                  },
                  "required": ["evaluationText", "evaluationMethod", "evaluationStatus"]
                }
              },
              "required": ["goal_description", "goal_outcomes", "interventions", "evaluation"]
            }
          }
        },
        "required": ["diagnosis_nanda", "diagnosis_evidence", "goals"]
      }
    },
    "interdisciplinaryPlan": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "discipline": {"type": "string"},
          "plan_item": {"type": "string"}
        },
        "required": ["discipline", "plan_item"]
      }
    },
    "overall_plan_summary": {"type": "string"},
    "next_steps": {"type": "array", "items": {"type": "string"}, "default": []},
    "notification_title": {"type": "string"},
    "notification_message": {"type": "string"},
    "notification_detail_1": {"type": "string"},
    "notification_detail_2": {"type": "string"}
  },
  "required": ["patientData", "clinicalData", "nursingDiagnoses", "recommendedAssessmentsList", "next_steps"]
}`

// CarePlanSchema is the decoded care-plan schema. It is read-only; callers
// that need to modify it must Clone first.
var CarePlanSchema = docjson.MustDecodeObject([]byte(carePlanSchemaJSON))
