package usecase

import (
	"context"
	"fmt"

	"github.com/remy-crypto/dunkuloans-sub000/internal/application/dto"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/port"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/service"
)

// AgentDashboardUseCase projects an agent's originated loans and the
// commission derived from them. Commission is computed on read, never stored.
type AgentDashboardUseCase struct {
	loanRepo         port.LoanRepository
	commissionPolicy *service.CommissionPolicy
}

func NewAgentDashboardUseCase(
	loanRepo port.LoanRepository,
	commissionPolicy *service.CommissionPolicy,
) *AgentDashboardUseCase {
	return &AgentDashboardUseCase{
		loanRepo:         loanRepo,
		commissionPolicy: commissionPolicy,
	}
}

func (uc *AgentDashboardUseCase) Execute(ctx context.Context, agentID string) (dto.AgentDashboardResponse, error) {
	loans, err := uc.loanRepo.FindByAgentID(ctx, agentID)
	if err != nil {
		return dto.AgentDashboardResponse{}, fmt.Errorf("finding loans for agent %s: %w", agentID, err)
	}

	return dto.AgentDashboardResponse{
		AgentID:          agentID,
		Loans:            toLoanResponses(loans),
		AttributedVolume: uc.commissionPolicy.AttributedVolume(loans),
		CommissionRate:   uc.commissionPolicy.Rate(),
		CommissionDue:    uc.commissionPolicy.Commission(loans),
	}, nil
}
