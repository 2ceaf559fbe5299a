package departments

type Department struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ManagerID     *string `json:"managerId"`
	ManagerName   string  `json:"managerName,omitempty"`
	EmployeeCount int     `json:"employeeCount"`
}

// Member is an employee as listed under their department.
type Member struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsManager bool   `json:"isManager"`
}
