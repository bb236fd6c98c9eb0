package usecase

import (
	"context"
)

type GenerateLeadsUseCase struct {
	Trigger LeadGenTrigger
}

func NewGenerateLeadsUseCase(trigger LeadGenTrigger) *GenerateLeadsUseCase {
	return &GenerateLeadsUseCase{Trigger: trigger}
}

// Execute valida o formulário e dispara o webhook de geração. Validação
// acontece ANTES de qualquer chamada de rede.
func (uc *GenerateLeadsUseCase) Execute(ctx context.Context, input GenerateLeadsInput) (*GenerateLeadsOutput, error) {
	validationErrors := ValidateGenerateLeadsInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	msg, err := uc.Trigger.Trigger(ctx, input)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "GENERATION_FAILED",
			Message: err.Error(),
		}
	}

	if msg == "" {
		msg = "Lead generation started! New leads will appear shortly."
	}

	return &GenerateLeadsOutput{Success: true, Message: msg}, nil
}
