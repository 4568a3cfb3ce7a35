package release_hold

// Request модель запроса на освобождение холда
type Request struct {
	HoldID string // ID холда
	UserID int64  // ID пользователя из X-User-ID (для логов)
}

// Response результат освобождения
type Response struct {
	Released bool // false, если холд уже был expired
}
