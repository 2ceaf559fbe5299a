package employees

import (
	"strings"
	"time"

	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/trainings"
)

// Employee is the base profile shared by the list and detail views.
type Employee struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	NIF           string `json:"nif"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Street        string `json:"street"`
	Locality      string `json:"locality"`
	PostalCode    string `json:"postalCode"`
	BirthDate     string `json:"birthDate"`
	Age           int    `json:"age"`
	DepartmentID  string `json:"departmentId"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	AdmissionDate string `json:"admissionDate,omitempty"`
}

// Summary is one row of the employee list.
type Summary struct {
	Employee
	BaseSalaryGross float64 `json:"baseSalaryGross"`
	NetSalary       float64 `json:"netSalary"`
	Deductions      float64 `json:"deductions"`
}

type Detail struct {
	Employee
	Financials  Financials               `json:"financials"`
	Vacations   Vacations                `json:"vacations"`
	Trainings   []trainings.Attendance   `json:"trainings"`
	Evaluations []evaluations.Evaluation `json:"evaluations"`
	JobHistory  []JobHistory             `json:"jobHistory"`
	Dependents  []Dependent              `json:"dependents"`
	Absences    []Absence                `json:"absences"`
}

type Financials struct {
	BaseSalaryGross float64       `json:"baseSalaryGross"`
	NetSalary       float64       `json:"netSalary"`
	Deductions      float64       `json:"deductions"`
	Benefits        []Benefit     `json:"benefits"`
	History         []SalaryEntry `json:"history"`
}

type Benefit struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	StartDate string  `json:"startDate"`
}

const SalaryUpdateReason = "Atualização salarial"

type SalaryEntry struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

type Vacations struct {
	TotalDays     int              `json:"totalDays"`
	UsedDays      int              `json:"usedDays"`
	RemainingDays int              `json:"remainingDays"`
	History       []VacationRecord `json:"history"`
}

type VacationRecord struct {
	ID        string         `json:"id"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	DaysUsed  int            `json:"daysUsed"`
	Status    VacationStatus `json:"status"`
}

type JobHistory struct {
	Company    string `json:"company"`
	Role       string `json:"role"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate,omitempty"`
	IsInternal bool   `json:"isInternal"`
}

type Dependent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	BirthDate    string `json:"birthDate,omitempty"`
}

type Absence struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	Justified bool   `json:"justified"`
}

// NewEmployee is the input of a hire. DepartmentName is used when
// DepartmentID is zero. A zero AdmissionDate means today.
type NewEmployee struct {
	NIF             string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Street          string
	Locality        string
	PostalCode      string
	BirthDate       time.Time
	Role            string
	DepartmentID    int64
	DepartmentName  string
	AdmissionDate   time.Time
	BaseSalaryGross *float64
}

// Changes holds the mutable profile fields.
type Changes struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Street         string
	Locality       string
	PostalCode     string
	Role           string
	DepartmentID   int64
	DepartmentName string
}

// AssembleAddress renders "street, locality postalCode", skipping empty parts.
func AssembleAddress(street, locality, postalCode string) string {
	tail := strings.TrimSpace(strings.Join([]string{locality, postalCode}, " "))
	switch {
	case street == "":
		return tail
	case tail == "":
		return street
	default:
		return street + ", " + tail
	}
}

// SplitAddress is the inverse of AssembleAddress for addresses typed as one
// line. The last token after the comma is taken as the postal code when it
// contains a digit.
func SplitAddress(address string) (street, locality, postalCode string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", "", ""
	}
	head, tail, found := strings.Cut(address, ",")
	if !found {
		return address, "", ""
	}
	street = strings.TrimSpace(head)
	fields := strings.Fields(tail)
	if n := len(fields); n > 0 && strings.ContainsAny(fields[n-1], "0123456789") {
		postalCode = fields[n-1]
		fields = fields[:n-1]
	}
	return street, strings.Join(fields, " "), postalCode
}

// SplitFullName takes the first word as first name and the rest as last name.
func SplitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// AgeOn returns the age in whole years at now, or 0 for an unparseable date.
func AgeOn(birthDate string, now time.Time) int {
	birth, err := time.Parse(time.DateOnly, birthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
