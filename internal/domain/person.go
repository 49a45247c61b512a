package domain

// Person is one schedulable individual. The short key is the identity; the
// remaining attributes may be refreshed by later roster reads.
type Person struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	EmployeeNo string `json:"employeeNo"`
	Role       string `json:"role"`
	Active     bool   `json:"active"`
}
