package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// computeAvailability вычисляет свободные слоты ресурса в диапазоне [from, to)
// Кандидаты строятся по рабочим окнам из windows, затем исключаются:
// - слоты, начинающиеся раньше now
// - слоты, пересекающиеся с действующим холдом или pending/confirmed бронированием
//
// Пересечение строгое: слот 10:00-11:00 и холд 09:00-10:00 не пересекаются.
// Функция чистая: одинаковые входные данные дают одинаковый упорядоченный результат.
func computeAvailability(
	resource *domain.Resource,
	windows domain.WindowSource,
	from, to, now time.Time,
	reservations domain.ReservationSet,
) ([]domain.Slot, error) {
	candidates, err := resource.CandidateSlots(windows, from, to)
	if err != nil {
		return nil, err
	}

	blocked := reservations.Blocking(now)

	available := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if slot.Start.Before(now) {
			continue
		}
		if overlapsAny(slot.Range(), blocked) {
			continue
		}
		available = append(available, slot)
	}

	return available, nil
}

func overlapsAny(r domain.TimeRange, blocked []domain.TimeRange) bool {
	for _, b := range blocked {
		if b.Overlaps(r) {
			return true
		}
	}
	return false
}
