package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

const skillSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"level": {"type": "string", "enum": ["Beginner", "Intermediate", "Advanced", "Expert"]}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "skill.schema.json", skillSchema)

	t.Run("valid", func(t *testing.T) {
		doc := writeFile(t, dir, "valid.json", `{"name": "Go", "level": "Expert"}`)
		assert.NoError(t, ValidateJSON(schemaPath, doc))
	})

	t.Run("missing field", func(t *testing.T) {
		doc := writeFile(t, dir, "missing.json", `{"level": "Expert"}`)
		err := ValidateJSON(schemaPath, doc)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Errors, 1)
		assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	})

	t.Run("wrong type", func(t *testing.T) {
		doc := writeFile(t, dir, "type.json", `{"name": 42}`)
		err := ValidateJSON(schemaPath, doc)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Errors[0].Field)
		assert.Contains(t, err.Error(), "1. name:")
	})

	t.Run("missing files", func(t *testing.T) {
		err := ValidateJSON(filepath.Join(dir, "nope.json"), schemaPath)
		assert.ErrorContains(t, err, "schema file not found")

		err = ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
		assert.ErrorContains(t, err, "JSON file not found")
	})
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("nope.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "unknown schema", loadErr.Message)
}

func TestValidateBytes_ScoreReportsConform(t *testing.T) {
	resume := &types.Resume{
		Education: []types.Education{{Level: types.LevelSSC, Institution: "Dhaka College", StartDate: "2014", Present: true}},
		Skills:    []types.Skill{{Name: "Go"}},
	}

	score, err := json.Marshal(scoring.ScoreResume(resume))
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(ResumeScoreSchema, score))

	report, err := json.Marshal(ats.AnalyzeResume("Go developer with PostgreSQL and Kafka", resume))
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(ATSScoreSchema, report))

	doc, err := json.Marshal(resume)
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(ResumeSchema, doc))
}

func TestResolveSchemaPath(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(filepath.Join("schemas", ResumeSchema)))
	assert.Empty(t, ResolveSchemaPath(filepath.Join("schemas", "missing.schema.json")))
}
