package trainings

type Status string

const (
	StatusPlanned    Status = "Planned"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// DefaultProvider is reported for in-house programs; the store keeps no
// provider column.
const DefaultProvider = "Empresa"

var storeStatuses = map[string]Status{
	"Planeada":  StatusPlanned,
	"Em curso":  StatusInProgress,
	"Concluída": StatusCompleted,
	"Cancelada": StatusCancelled,
}

// StatusFromStore translates a stored status. Unknown values pass through.
func StatusFromStore(raw string) Status {
	if s, ok := storeStatuses[raw]; ok {
		return s
	}
	return Status(raw)
}

// StoreValue returns the stored spelling of s.
func (s Status) StoreValue() (string, bool) {
	for raw, status := range storeStatuses {
		if status == s {
			return raw, true
		}
	}
	return "", false
}

type Program struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	Status              Status   `json:"status"`
	Provider            string   `json:"provider"`
	EnrolledEmployeeIDs []string `json:"enrolledEmployeeIds"`
}

// Attendance is one program as seen from an enrolled employee.
type Attendance struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      Status `json:"status"`
	Provider    string `json:"provider"`
	Certificate string `json:"certificate,omitempty"`
}
