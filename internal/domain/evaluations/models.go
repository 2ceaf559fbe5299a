package evaluations

import (
	"strconv"
	"time"
)

type Type string

const (
	TypeManager Type = "Manager"
	TypeSelf    Type = "Self"
	TypePeer    Type = "Peer"
)

// TypeFor derives the evaluation type from its authorship. Peer reviews are
// never inferred.
func TypeFor(employeeID, reviewerID string) Type {
	if reviewerID != "" && reviewerID == employeeID {
		return TypeSelf
	}
	return TypeManager
}

type Evaluation struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName,omitempty"`
	Date           string  `json:"date"`
	Score          float64 `json:"score"`
	ReviewerID     string  `json:"reviewerId,omitempty"`
	Reviewer       string  `json:"reviewer"`
	Comments       string  `json:"comments"`
	SelfEvaluation string  `json:"selfEvaluation,omitempty"`
	Type           Type    `json:"type"`
}

type NewEvaluation struct {
	EmployeeID     int64
	ReviewerID     int64
	Date           time.Time
	Score          float64
	Comments       string
	SelfEvaluation string
}

func (n NewEvaluation) Type() Type {
	return TypeFor(strconv.FormatInt(n.EmployeeID, 10), strconv.FormatInt(n.ReviewerID, 10))
}

const (
	MinScore = 0.0
	MaxScore = 5.0
)
