package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldCareer   = "career"
	FieldSector   = "sector"
	FieldSource   = "job_source"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
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

// WithFields attaches fields to l, falling back to a no-op logger when l is nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	l = OrNop(l)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// WithCommonFields tags l with the AI provider and model.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(l, StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)...)
}

// CareerFields describes the career a log entry is about.
func CareerFields(title, sector string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCareer, Value: title},
		StringField{Key: FieldSector, Value: sector},
	)
}
