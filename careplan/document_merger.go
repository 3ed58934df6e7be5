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

// positionalMergeStages are the stages whose nursingDiagnoses output is
// merged into the accumulated document by list position instead of wholesale
// array replacement. These stages return partial diagnosis objects keyed
// only by their index.
var positionalMergeStages = map[string]bool{
	StageDiagnosisGoals:     true,
	StageInterventions:      true,
	StageEvaluationCriteria: true,
}

// MergeStageOutput folds one stage's JSON fragment into the accumulated
// care-plan document. For the goal, intervention and evaluation stages the
// nursingDiagnoses list is merged positionally; everything else goes
// through the default deep merge. The fragment itself is never mutated.
func MergeStageOutput(stageName string, fragment, doc docjson.Object) {
	if len(fragment) == 0 {
		return
	}
	frag, _ := fragment.Clone().(docjson.Object)

	if positionalMergeStages[stageName] {
		fragDiags, fragOK := frag[docjson.KeyNursingDiagnoses].(docjson.Array)
		docDiags, docOK := doc[docjson.KeyNursingDiagnoses].(docjson.Array)
		if fragOK && docOK {
			mergeDiagnosesByPosition(stageName, fragDiags, docDiags)
			// Remove so the default pass cannot overwrite the targeted merge.
			delete(frag, docjson.KeyNursingDiagnoses)
		}
	}

	Merge(frag, doc)
}

// Merge deep-merges fragment into doc: nested objects merge recursively,
// arrays and scalars replace whatever the document held. Fragment values
// are stored without copying; pass a clone if the fragment is reused.
func Merge(fragment, doc docjson.Object) {
	for key, value := range fragment {
		if obj, ok := value.(docjson.Object); ok {
			node, ok := doc[key].(docjson.Object)
			if !ok {
				node = docjson.Object{}
				doc[key] = node
			}
			Merge(obj, node)
			continue
		}
		doc[key] = value
	}
}

// mergeDiagnosesByPosition applies a stage's partial diagnosis objects onto
// the accumulated list index by index. A fragment list shorter than the
// document's is tolerated: trailing diagnoses keep their prior state.
// Non-object entries on either side are skipped. Untouched sibling fields
// of each diagnosis are preserved.
func mergeDiagnosesByPosition(stageName string, fragDiags, docDiags docjson.Array) {
	for i, dv := range docDiags {
		if i >= len(fragDiags) {
			break
		}
		fragDiag, ok := fragDiags[i].(docjson.Object)
		if !ok {
			continue
		}
		docDiag, ok := dv.(docjson.Object)
		if !ok {
			continue
		}

		if stageName == StageDiagnosisGoals {
			if ev, ok := fragDiag[docjson.KeyDiagnosisEvidence]; ok {
				docDiag[docjson.KeyDiagnosisEvidence] = ev
			}
			if rf, ok := fragDiag[docjson.KeyDiagnosisRisks]; ok {
				docDiag[docjson.KeyDiagnosisRisks] = rf
			}
			if goals, ok := fragDiag[docjson.KeyGoals].(docjson.Array); ok {
				docDiag[docjson.KeyGoals] = goals
			}
			continue
		}

		fragGoals, ok := fragDiag[docjson.KeyGoals].(docjson.Array)
		if !ok {
			continue
		}
		docGoals, ok := docDiag[docjson.KeyGoals].(docjson.Array)
		if !ok {
			continue
		}
		for gi, gv := range docGoals {
			if gi >= len(fragGoals) {
				break
			}
			fragGoal, ok := fragGoals[gi].(docjson.Object)
			if !ok {
				continue
			}
			docGoal, ok := gv.(docjson.Object)
			if !ok {
				continue
			}
			switch stageName {
			case StageInterventions:
				if iv, ok := fragGoal[docjson.KeyInterventions]; ok {
					docGoal[docjson.KeyInterventions] = iv
				}
			case StageEvaluationCriteria:
				if ev, ok := fragGoal[docjson.KeyEvaluation]; ok {
					docGoal[docjson.KeyEvaluation] = ev
				}
			}
		}
	}
}
