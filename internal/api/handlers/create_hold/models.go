package create_hold

import (
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createHold "github.com/m04kA/SMC-ReservationService/internal/usecase/create_hold"
)

// CreateHoldRequest тело запроса
type CreateHoldRequest struct {
	ResourceID string `json:"resource_id"`
	Start      string `json:"start_t"`
	End        string `json:"end_t"`
}

// HoldResponse созданный холд
type HoldResponse struct {
	ID         string `json:"id"`
	ResourceID string `json:"resource_id"`
	Start      string `json:"start_t"`
	End        string `json:"end_t"`
	ExpiresAt  string `json:"expires_at"`
	Status     string `json:"status"`
}

// CreateHoldResponse HTTP ответ
type CreateHoldResponse struct {
	Hold HoldResponse `json:"hold"`
}

// ToUseCaseRequest парсит временные метки и формирует запрос к use case
func (r *CreateHoldRequest) ToUseCaseRequest() (*createHold.Request, error) {
	req := &createHold.Request{ResourceID: r.ResourceID}

	if r.Start != "" {
		start, err := handlers.ParseTimestamp(r.Start)
		if err != nil {
			return nil, err
		}
		req.Start = start
	}
	if r.End != "" {
		end, err := handlers.ParseTimestamp(r.End)
		if err != nil {
			return nil, err
		}
		req.End = end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createHold.Response) *CreateHoldResponse {
	return &CreateHoldResponse{
		Hold: HoldResponse{
			ID:         resp.ID,
			ResourceID: resp.ResourceID,
			Start:      handlers.FormatTimestamp(resp.Start),
			End:        handlers.FormatTimestamp(resp.End),
			ExpiresAt:  handlers.FormatTimestamp(resp.ExpiresAt),
			Status:     string(resp.Status),
		},
	}
}
