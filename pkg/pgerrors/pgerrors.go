package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагируют репозитории
const (
	CodeUniqueViolation    pq.ErrorCode = "23505"
	CodeExclusionViolation pq.ErrorCode = "23P01"
	CodeInvalidText        pq.ErrorCode = "22P02"
	CodeForeignKey         pq.ErrorCode = "23503"
)

// Code возвращает код ошибки PostgreSQL или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsExclusionViolation нарушение EXCLUDE-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsInvalidUUID некорректное текстовое представление значения (например, uuid)
func IsInvalidUUID(err error) bool {
	return Code(err) == CodeInvalidText
}

// IsForeignKeyViolation ссылка на несуществующую запись
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKey
}
