package sweep_holds

import "time"

// Request модель запроса на очистку. Нулевой Now означает текущее время.
type Request struct {
	Now time.Time
}

// Response результат очистки
type Response struct {
	Expired int64 // Холды, переведенные из active в expired
	Deleted int64 // Удаленные expired холды старше периода хранения
}
