package check_boarding_range

import (
	checkBoardingRange "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_boarding_range"
)

// BoardingCheckResponse HTTP response model
type BoardingCheckResponse struct {
	SitterID     int64         `json:"sitterId"`
	Start        string        `json:"start"`
	End          string        `json:"end"`
	Status       string        `json:"status"`
	BlockingDays []string      `json:"blockingDays"`
	Days         []BoardingDay `json:"days"`
}

// BoardingDay вердикт по одной дате проживания
type BoardingDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkBoardingRange.Response) *BoardingCheckResponse {
	days := make([]BoardingDay, len(resp.Result.Days))
	for i, d := range resp.Result.Days {
		days[i] = BoardingDay{
			Date:   d.Date,
			Status: string(d.Status),
			Reason: d.Reason,
		}
	}

	blocking := resp.Result.BlockingDays
	if blocking == nil {
		blocking = []string{}
	}

	return &BoardingCheckResponse{
		SitterID:     resp.SitterID,
		Start:        resp.StartDate,
		End:          resp.EndDate,
		Status:       string(resp.Result.Status),
		BlockingDays: blocking,
		Days:         days,
	}
}
