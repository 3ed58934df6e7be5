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
	"sort"
	"strings"

	"careplan/platform/careplan/docjson"
	"careplan/platform/shared/logger"
)

// SchemaProjector extracts per-stage sub-schemas from the full care-plan
// schema. Projections are deep copies; mutating a projection never touches
// the source schema.
type SchemaProjector struct {
	full docjson.Object
	log  *logger.Logger
}

// NewSchemaProjector creates a projector over the given full schema.
func NewSchemaProjector(full docjson.Object) *SchemaProjector {
	return &SchemaProjector{
		full: full,
		log:  logger.New("schema-projector"),
	}
}

// Project builds the sub-schema containing exactly the properties named by
// propertyPaths. Paths are dotted; a "*" segment descends into an array's
// item schema. The final segment of each path copies the complete source
// subtree; intermediate segments are re-created as shells holding only the
// traversed children.
//
// Paths that do not resolve against the source schema are logged and
// skipped; projection never fails outright. The result always has the shape
// {"type": "object", "properties": {...}} with a sorted, deduplicated
// "required" list when any requiredPaths resolve to projected top-level
// properties.
func (p *SchemaProjector) Project(propertyPaths, requiredPaths []string) docjson.Object {
	root := docjson.Object{
		"type":       docjson.String("object"),
		"properties": docjson.Object{},
	}

	for _, path := range propertyPaths {
		if !projectPath(p.full, root, strings.Split(path, ".")) {
			p.log.Warn("", "", "Schema property path did not resolve, skipping", map[string]interface{}{
				"path": path,
			})
		}
	}

	props := root["properties"].(docjson.Object)
	seen := make(map[string]bool)
	var required []string
	for _, path := range requiredPaths {
		top := strings.SplitN(path, ".", 2)[0]
		if _, ok := props[top]; ok && !seen[top] {
			seen[top] = true
			required = append(required, top)
		}
	}
	if len(required) > 0 {
		sort.Strings(required)
		arr := make(docjson.Array, len(required))
		for i, name := range required {
			arr[i] = docjson.String(name)
		}
		root["required"] = arr
	}

	return root
}

// projectPath copies the part of the src schema node reachable via parts
// into dst, a node of the same kind. Returns false if the path cannot be
// resolved against src.
func projectPath(src, dst docjson.Object, parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	part := parts[0]

	if part == "*" {
		if src.GetString("type") != "array" {
			return false
		}
		srcItems, ok := src["items"].(docjson.Object)
		if !ok {
			return false
		}
		dstItems, ok := dst["items"].(docjson.Object)
		if !ok {
			dstItems = docjson.Object{
				"type":       docjson.String("object"),
				"properties": docjson.Object{},
			}
			dst["items"] = dstItems
		}
		return projectPath(srcItems, dstItems, parts[1:])
	}

	srcProps, ok := src["properties"].(docjson.Object)
	if !ok {
		return false
	}
	def, ok := srcProps[part].(docjson.Object)
	if !ok {
		return false
	}
	dstProps, ok := dst["properties"].(docjson.Object)
	if !ok {
		dstProps = docjson.Object{}
		dst["properties"] = dstProps
	}

	if len(parts) == 1 {
		dstProps[part] = def.Clone()
		return true
	}

	child, ok := dstProps[part].(docjson.Object)
	if !ok {
		child = schemaShell(def)
		dstProps[part] = child
	}
	return projectPath(def, child, parts[1:])
}

// schemaShell creates an empty container node matching def's kind, ready
// for children to be projected into it.
func schemaShell(def docjson.Object) docjson.Object {
	shell := docjson.Object{}
	if t, ok := def["type"]; ok {
		shell["type"] = t.Clone()
	}
	switch def.GetString("type") {
	case "object":
		shell["properties"] = docjson.Object{}
	case "array":
		shell["items"] = docjson.Object{
			"type":       docjson.String("object"),
			"properties": docjson.Object{},
		}
	}
	return shell
}
