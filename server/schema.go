// SPDX-License-Identifier: MIT
package server

import "github.com/santhosh-tekuri/jsonschema/v5"

// routeRequestSchema describes the body of POST /api/route.
const routeRequestSchema = `{
  "type": "object",
  "required": ["source", "destination"],
  "additionalProperties": false,
  "properties": {
    "source": {"$ref": "#/definitions/point"},
    "destination": {"$ref": "#/definitions/point"},
    "condensed": {"type": "boolean"}
  },
  "definitions": {
    "point": {
      "type": "array",
      "items": {"type": "number"},
      "minItems": 2,
      "maxItems": 2
    }
  }
}`

var routeSchema = jsonschema.MustCompileString("route.json", routeRequestSchema)
