package recruitment

type JobStatus string

const (
	JobOpen      JobStatus = "Open"
	JobClosed    JobStatus = "Closed"
	JobSuspended JobStatus = "Suspended"
)

type CandidateStatus string

const (
	CandidateSubmitted CandidateStatus = "Submitted"
	CandidateScreening CandidateStatus = "Screening"
	CandidateInterview CandidateStatus = "Interview"
	CandidateHired     CandidateStatus = "Hired"
	CandidateRejected  CandidateStatus = "Rejected"
)

var jobStatuses = map[string]JobStatus{
	"Aberta":   JobOpen,
	"Fechada":  JobClosed,
	"Suspensa": JobSuspended,
}

var candidateStatuses = map[string]CandidateStatus{
	"Submetido":  CandidateSubmitted,
	"Em análise": CandidateScreening,
	"Entrevista": CandidateInterview,
	"Contratado": CandidateHired,
	"Rejeitado":  CandidateRejected,
}

func JobStatusFromStore(raw string) JobStatus {
	if s, ok := jobStatuses[raw]; ok {
		return s
	}
	return JobStatus(raw)
}

func (s JobStatus) StoreValue() (string, bool) {
	return storeValue(jobStatuses, s)
}

func CandidateStatusFromStore(raw string) CandidateStatus {
	if s, ok := candidateStatuses[raw]; ok {
		return s
	}
	return CandidateStatus(raw)
}

func (s CandidateStatus) StoreValue() (string, bool) {
	return storeValue(candidateStatuses, s)
}

// ParseCandidateStatus accepts either the API or the stored spelling and
// returns the stored one.
func ParseCandidateStatus(v string) (string, bool) {
	if _, ok := candidateStatuses[v]; ok {
		return v, true
	}
	return CandidateStatus(v).StoreValue()
}

func storeValue[S ~string](m map[string]S, s S) (string, bool) {
	for raw, status := range m {
		if status == s {
			return raw, true
		}
	}
	return "", false
}

// JobDescription is the generated description of an opening.
func JobDescription(department string) string {
	return "Vaga para o departamento de " + department
}

type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	DepartmentID   string    `json:"departmentId"`
	Description    string    `json:"description"`
	Status         JobStatus `json:"status"`
	OpenDate       string    `json:"openDate"`
	Requirements   []string  `json:"requirements"`
	CandidateCount int       `json:"candidateCount"`
}

// Candidate is one application: an applicant for a given job.
type Candidate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	JobID         string          `json:"jobId"`
	JobTitle      string          `json:"jobTitle"`
	Status        CandidateStatus `json:"status"`
	AppliedDate   string          `json:"appliedDate"`
	RecruiterID   *string         `json:"recruiterId"`
	RecruiterName string          `json:"recruiterName,omitempty"`
}

// CandidateUpdate changes an application. Empty Status and nil RecruiterID
// leave the field as is; ClearRecruiter unassigns the recruiter.
type CandidateUpdate struct {
	Status         string
	RecruiterID    *int64
	ClearRecruiter bool
}
