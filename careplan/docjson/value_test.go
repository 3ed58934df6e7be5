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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_AllNodeKinds(t *testing.T) {
	v, err := Decode([]byte(`{
		"name": "Jane",
		"age": 65,
		"active": true,
		"notes": null,
		"tags": ["a", "b"],
		"nested": {"k": "v"}
	}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)

	assert.Equal(t, String("Jane"), obj["name"])
	assert.Equal(t, Number(65), obj["age"])
	assert.Equal(t, Bool(true), obj["active"])
	assert.Equal(t, Null{}, obj["notes"])
	assert.Equal(t, Array{String("a"), String("b")}, obj["tags"])
	assert.Equal(t, Object{"k": String("v")}, obj["nested"])
}

func TestDecodeObject_RejectsNonObject(t *testing.T) {
	_, err := DecodeObject([]byte(`[1, 2, 3]`))
	assert.Error(t, err)

	_, err = DecodeObject([]byte(`"just a string"`))
	assert.Error(t, err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"unterminated":`))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	original := []byte(`{"a":{"b":[1,true,null,"x"]},"c":"d"}`)

	v, err := Decode(original)
	require.NoError(t, err)

	encoded, err := Encode(v)
	require.NoError(t, err)

	reparsed, err := Decode(encoded)
	require.NoError(t, err)
	assert.True(t, v.Equal(reparsed))
}

func TestClone_IsDeep(t *testing.T) {
	obj := Object{
		"list": Array{Object{"x": String("1")}},
		"sub":  Object{"y": Number(2)},
	}

	cloned := obj.Clone().(Object)
	require.True(t, obj.Equal(cloned))

	// Mutating the clone must not leak into the original.
	cloned["sub"].(Object)["y"] = Number(99)
	cloned["list"].(Array)[0].(Object)["x"] = String("mutated")

	assert.Equal(t, Number(2), obj["sub"].(Object)["y"])
	assert.Equal(t, String("1"), obj["list"].(Array)[0].(Object)["x"])
}

func TestEqual_Mismatches(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
	}{
		{"different scalar kinds", String("1"), Number(1)},
		{"different strings", String("a"), String("b")},
		{"array length", Array{Number(1)}, Array{Number(1), Number(2)}},
		{"array order", Array{Number(1), Number(2)}, Array{Number(2), Number(1)}},
		{"object keys", Object{"a": Null{}}, Object{"b": Null{}}},
		{"object vs array", Object{}, Array{}},
		{"null vs bool", Null{}, Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.a.Equal(tt.b))
		})
	}
}

func TestObjectAccessors(t *testing.T) {
	obj := Object{
		"s":   String("text"),
		"o":   Object{"inner": String("v")},
		"arr": Array{String("one"), Number(2), String("three")},
	}

	assert.Equal(t, "text", obj.GetString("s"))
	assert.Equal(t, "", obj.GetString("missing"))
	assert.Equal(t, "", obj.GetString("o")) // wrong kind

	assert.Equal(t, Object{"inner": String("v")}, obj.GetObject("o"))
	assert.Nil(t, obj.GetObject("s"))

	assert.Equal(t, []string{"one", "three"}, obj.GetArray("arr").Strings())
	assert.Nil(t, obj.GetArray("missing"))

	assert.Equal(t, []string{"arr", "o", "s"}, obj.Keys())
}

func TestFromAny_Passthrough(t *testing.T) {
	// Already-converted values come back unchanged.
	v := FromAny(Object{"a": Number(1)})
	assert.Equal(t, Object{"a": Number(1)}, v)

	// Plain ints are accepted alongside float64.
	assert.Equal(t, Number(7), FromAny(7))
}

func TestCarePlanDocument_TypedViews(t *testing.T) {
	root := MustDecodeObject([]byte(`{
		"patientData": {"patient_full_name": "Jane Doe"},
		"nursingDiagnoses": [
			{
				"diagnosis_nanda": "Decreased Cardiac Output",
				"diagnosis_related_to": "altered contractility",
				"diagnosis_evidence": ["dyspnea", "edema"],
				"goals": [
					{
						"goal_description": "Maintain adequate cardiac output",
						"goal_outcomes": ["stable vitals"],
						"interventions": [
							{"interventionText": "Monitor vital signs q4h", "interventionType": "monitoring", "rationale": "early detection"}
						],
						"evaluation": {"evaluationText": "Vitals within limits", "evaluationMethod": "observation", "evaluationStatus": "ongoing"}
					}
				]
			},
			{
				"diagnosis_nanda": "Risk for Falls",
				"diagnosis_is_risk": true,
				"diagnosis_risk_factors": ["weakness"],
				"goals": []
			}
		],
		"overall_plan_summary": "Stabilize and educate.",
		"next_steps": ["Follow up in 2 weeks"]
	}`))

	doc := NewCarePlanDocument(root)
	assert.Equal(t, "Jane Doe", doc.PatientData().GetString("patient_full_name"))
	assert.Equal(t, "Stabilize and educate.", doc.PlanSummary())
	assert.Equal(t, []string{"Follow up in 2 weeks"}, doc.NextSteps())

	diagnoses := doc.Diagnoses()
	require.Len(t, diagnoses, 2)

	first := diagnoses[0]
	assert.Equal(t, "Decreased Cardiac Output", first.Label())
	assert.Equal(t, "altered contractility", first.RelatedTo())
	assert.Equal(t, []string{"dyspnea", "edema"}, first.Evidence())
	assert.False(t, first.IsRisk())

	goals := first.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Maintain adequate cardiac output", goals[0].Description())
	assert.Equal(t, []string{"stable vitals"}, goals[0].Outcomes())

	interventions := goals[0].Interventions()
	require.Len(t, interventions, 1)
	assert.Equal(t, "monitoring", interventions[0].Type())

	eval, ok := goals[0].Evaluation()
	require.True(t, ok)
	assert.Equal(t, "ongoing", eval.Status())

	second := diagnoses[1]
	assert.True(t, second.IsRisk())
	assert.Equal(t, []string{"weakness"}, second.RiskFactors())
	assert.Empty(t, second.Goals())

	_, hasEval := Goal{}.Evaluation()
	assert.False(t, hasEval)
}
