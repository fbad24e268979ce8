package port

// Fields - ключ-значение для структурированного лога
type Fields map[string]interface{}

// Merge возвращает новую карту: поля f, поверх них поля other
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// LoggerPort - логгер, который ядро получает из контекста или через конструктор.
// Реализации: slog (stdout), fluent-bit и их композиция.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields не меняет исходный логгер
	WithFields(fields Fields) LoggerPort
}
