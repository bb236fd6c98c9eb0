package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompanySizeBuckets são os valores aceitos pelo fluxo de geração.
var CompanySizeBuckets = []string{
	"1-10",
	"11-50",
	"51-200",
	"201-500",
	"501-1000",
	"1001-5000",
	"5001-10000",
	"10001+",
}

func ValidateGenerateLeadsInput(input GenerateLeadsInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.JobTitle) == "" {
		errors = append(errors, ValidationError{"jobTitle", "is required"})
	} else if len(input.JobTitle) > 200 {
		errors = append(errors, ValidationError{"jobTitle", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.CompanySize) == "" {
		errors = append(errors, ValidationError{"companySize", "is required"})
	} else if !isValidCompanySize(input.CompanySize) {
		errors = append(errors, ValidationError{"companySize", "must be one of the size buckets"})
	}

	return errors
}

func isValidCompanySize(size string) bool {
	for _, b := range CompanySizeBuckets {
		if size == b {
			return true
		}
	}
	return false
}
