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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careplan/platform/careplan/docjson"
)

func projectedProps(t *testing.T, sub docjson.Object) docjson.Object {
	t.Helper()
	props, ok := sub["properties"].(docjson.Object)
	require.True(t, ok, "projection must carry a properties object")
	return props
}

func TestProject_TopLevelProperty(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project([]string{"patientData"}, []string{"patientData"})

	assert.Equal(t, docjson.String("object"), sub["type"])
	props := projectedProps(t, sub)
	require.Len(t, props, 1)

	// The full subtree comes across, not a shell.
	patient := props.GetObject("patientData")
	require.NotNil(t, patient)
	assert.NotNil(t, patient.GetObject("properties").GetObject("vitalSigns"))

	required, ok := sub["required"].(docjson.Array)
	require.True(t, ok)
	assert.Equal(t, []string{"patientData"}, required.Strings())
}

func TestProject_WildcardDescendsIntoItems(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project([]string{"nursingDiagnoses.*.goals"}, []string{"nursingDiagnoses"})

	props := projectedProps(t, sub)
	diagnoses := props.GetObject("nursingDiagnoses")
	require.NotNil(t, diagnoses)
	assert.Equal(t, "array", diagnoses.GetString("type"))

	itemProps := diagnoses.GetObject("items").GetObject("properties")
	require.NotNil(t, itemProps)

	// Only the traversed child survives; siblings are excluded.
	assert.Len(t, itemProps, 1)
	goals := itemProps.GetObject("goals")
	require.NotNil(t, goals)
	assert.Equal(t, "array", goals.GetString("type"))

	// The leaf subtree is complete.
	goalProps := goals.GetObject("items").GetObject("properties")
	assert.NotNil(t, goalProps.GetObject("interventions"))
	assert.NotNil(t, goalProps.GetObject("evaluation"))
}

func TestProject_SiblingPathsMergeUnderOnePrefix(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project([]string{
		"nursingDiagnoses.*.diagnosis_evidence",
		"nursingDiagnoses.*.diagnosis_risk_factors",
		"nursingDiagnoses.*.goals",
	}, nil)

	props := projectedProps(t, sub)
	require.Len(t, props, 1)

	itemProps := props.GetObject("nursingDiagnoses").GetObject("items").GetObject("properties")
	assert.Len(t, itemProps, 3)
	assert.NotNil(t, itemProps.GetObject("diagnosis_evidence"))
	assert.NotNil(t, itemProps.GetObject("diagnosis_risk_factors"))
	assert.NotNil(t, itemProps.GetObject("goals"))
}

func TestProject_DoubleWildcard(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project([]string{"nursingDiagnoses.*.goals.*.interventions"}, nil)

	goalItemProps := projectedProps(t, sub).
		GetObject("nursingDiagnoses").GetObject("items").GetObject("properties").
		GetObject("goals").GetObject("items").GetObject("properties")
	require.NotNil(t, goalItemProps)
	assert.Len(t, goalItemProps, 1)

	interventions := goalItemProps.GetObject("interventions")
	require.NotNil(t, interventions)
	intProps := interventions.GetObject("items").GetObject("properties")
	assert.NotNil(t, intProps.GetObject("interventionText"))
	assert.NotNil(t, intProps.GetObject("rationale"))
}

func TestProject_UnresolvablePathSkipped(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project([]string{
		"no_such_property",
		"patientData.no_such_child",
		"overall_plan_summary.*.bogus",
		"overall_plan_summary",
	}, nil)

	props := projectedProps(t, sub)
	assert.Len(t, props, 1)
	assert.NotNil(t, props.GetObject("overall_plan_summary"))
	_, hasRequired := sub["required"]
	assert.False(t, hasRequired)
}

func TestProject_RequiredSortedDeduplicatedAndFiltered(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	sub := projector.Project(
		[]string{"nursingDiagnoses", "patientData", "clinicalData"},
		[]string{"patientData", "nursingDiagnoses.*.goals", "nursingDiagnoses", "clinicalData", "aiAgents"},
	)

	required, ok := sub["required"].(docjson.Array)
	require.True(t, ok)
	// aiAgents was never projected; nested required paths collapse to their
	// top-level segment.
	assert.Equal(t, []string{"clinicalData", "nursingDiagnoses", "patientData"}, required.Strings())
}

func TestProject_MutationIsolation(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	before := CarePlanSchema.Clone()
	sub := projector.Project([]string{"patientData", "nursingDiagnoses.*.goals"}, nil)

	// Mutate the projection aggressively.
	props := projectedProps(t, sub)
	props.GetObject("patientData")["properties"] = docjson.Object{}
	props.GetObject("nursingDiagnoses").GetObject("items").GetObject("properties")["goals"] = docjson.Null{}

	assert.True(t, CarePlanSchema.Equal(before), "source schema must not change when a projection is mutated")
}

func TestProject_Idempotent(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)
	paths := []string{"nursingDiagnoses.*.goals.*.evaluation", "aiAgents"}
	required := []string{"nursingDiagnoses"}

	first := projector.Project(paths, required)
	second := projector.Project(paths, required)

	assert.True(t, first.Equal(second))
}

func TestProject_EveryStageProjects(t *testing.T) {
	projector := NewSchemaProjector(CarePlanSchema)

	for _, stage := range Stages {
		t.Run(stage.Name, func(t *testing.T) {
			sub := projector.Project(stage.PropertyPaths, stage.RequiredPaths)
			props := projectedProps(t, sub)
			assert.NotEmpty(t, props, "stage projection must contain properties")
			if len(stage.RequiredPaths) > 0 {
				_, ok := sub["required"].(docjson.Array)
				assert.True(t, ok)
			}
		})
	}
}
