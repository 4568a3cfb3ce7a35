package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда бронирование пересекается с другим активным (EXCLUDE-ограничение)
	ErrOverlap = errors.New("booking.repository: range overlaps an active booking")

	// ErrHoldAlreadyBooked возвращается, когда по холду уже создано бронирование
	ErrHoldAlreadyBooked = errors.New("booking.repository: hold already has a booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
