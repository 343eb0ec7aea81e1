package usecase

// ValidateSubmitLeadInput checks the required fields. Input must already be trimmed.
func ValidateSubmitLeadInput(input SubmitLeadInput) ValidationErrors {
	var errs ValidationErrors

	if input.Name == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if input.Surname == "" {
		errs = append(errs, ValidationError{"surname", "is required"})
	}
	if input.Email == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	}

	return errs
}
