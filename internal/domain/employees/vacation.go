package employees

import "time"

type VacationStatus string

const (
	VacationApproved VacationStatus = "Approved"
	VacationPending  VacationStatus = "Pending"
	VacationRejected VacationStatus = "Rejected"
)

// DefaultVacationAllotment is the yearly number of vacation days.
const DefaultVacationAllotment = 22

// VacationStatusFromStore translates a stored approval state. Anything
// unrecognised is pending.
func VacationStatusFromStore(raw string) VacationStatus {
	switch raw {
	case "Aprovado":
		return VacationApproved
	case "Rejeitado":
		return VacationRejected
	default:
		return VacationPending
	}
}

// UsedVacationDays sums approved days whose start date falls in year.
func UsedVacationDays(history []VacationRecord, year int) int {
	used := 0
	for _, v := range history {
		if v.Status != VacationApproved {
			continue
		}
		start, err := time.Parse(time.DateOnly, v.StartDate)
		if err != nil || start.Year() != year {
			continue
		}
		used += v.DaysUsed
	}
	return used
}

func SummarizeVacations(history []VacationRecord, allotment int, now time.Time) Vacations {
	if history == nil {
		history = []VacationRecord{}
	}
	used := UsedVacationDays(history, now.Year())
	return Vacations{
		TotalDays:     allotment,
		UsedDays:      used,
		RemainingDays: allotment - used,
		History:       history,
	}
}
