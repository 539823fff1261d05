package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRun       = "run_id"
	FieldJob       = "job_id"
	FieldCandidate = "candidate_id"

	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger
// when logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RunFields identifies one ranking run.
func RunFields(runID, jobID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRun, Value: runID},
		StringField{Key: FieldJob, Value: jobID},
	)
}

func WithRunFields(logger *zap.Logger, runID, jobID string) *zap.Logger {
	return WithFields(logger, RunFields(runID, jobID)...)
}

func CandidateField(id string) zap.Field {
	return zap.String(FieldCandidate, id)
}

// AIFields describe the AI provider and model. Empty values are skipped.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}
