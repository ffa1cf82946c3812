package outsystems

import (
	// Packages
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// SUM NUMBERS

// SumNumbers adds two integers remotely. The sum is returned as plain text.
func SumNumbers(endpoint string) *schema.Descriptor {
	return &schema.Descriptor{
		Name:        "sum_numbers",
		Description: "Sum two integers using the remote service and return the result.",
		Result:      schema.TypeInteger,
		Parameters: []schema.Parameter{
			{Name: "number1", Remote: "Number1", Type: schema.TypeInteger, Required: true, Description: "The first number"},
			{Name: "number2", Remote: "Number2", Type: schema.TypeInteger, Required: true, Description: "The second number"},
		},
		Remote: schema.RemoteCall{
			URL:      endpoint + "/SumNumbers",
			Encoding: schema.EncodingQuery,
		},
	}
}

///////////////////////////////////////////////////////////////////////////////
// CREATE EMPLOYEE

// CreateEmployee creates an employee record remotely and returns the
// response body, which is the new employee identifier.
func CreateEmployee(endpoint string) *schema.Descriptor {
	return &schema.Descriptor{
		Name:        "create_employee",
		Description: "Create a new employee record and return the employee identifier.",
		Result:      schema.TypeString,
		Parameters: []schema.Parameter{
			{Name: "employee_name", Remote: "EmployeeName", Type: schema.TypeString, Required: true, Description: "Full name of the employee"},
			{Name: "nif", Remote: "NIF", Type: schema.TypeInteger, Default: 0, Description: "Tax identification number"},
			{Name: "date_of_birth", Remote: "DateOfBirth", Type: schema.TypeString, Default: "", Format: "date", Description: "Date of birth, as YYYY-MM-DD"},
			{Name: "address", Remote: "Address", Type: schema.TypeString, Default: "", Description: "Postal address"},
		},
		Remote: schema.RemoteCall{
			URL:      endpoint + "/EmployeeCreate",
			Encoding: schema.EncodingJSON,
		},
	}
}
