package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/NeuralTrust/ComplianceHawk/docs"
)

const defaultOpenAPIFile = "openapi.json"

func exportOpenAPI(path string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(docs.SwaggerInfo.ReadDoc()), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
