package report

import (
	"encoding/json"

	"github.com/IvanShishkin/permlens/pkg/models"
	"gopkg.in/yaml.v3"
)

// renderJSON encodes the result as indented JSON
func renderJSON(result *models.InspectionResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// renderYAML encodes the result as YAML
func renderYAML(result *models.InspectionResult) ([]byte, error) {
	return yaml.Marshal(result)
}
