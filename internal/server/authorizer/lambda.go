package authorizer

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

const (
	policyVersion = "2012-10-17"
	invokeAction  = "execute-api:Invoke"
)

// LambdaHandler adapts Authorizer to an API Gateway TOKEN custom authorizer.
type LambdaHandler struct {
	authorizer *Authorizer
}

func NewLambdaHandler(a *Authorizer) *LambdaHandler {
	return &LambdaHandler{authorizer: a}
}

// Handle always returns a policy and a nil error, so the gateway never
// faults on a bad token.
func (h *LambdaHandler) Handle(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	p := h.authorizer.Authorize(ctx, event.AuthorizationToken)

	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: p.PrincipalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: policyVersion,
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{invokeAction},
					Effect:   string(p.Effect),
					Resource: []string{p.Resource},
				},
			},
		},
	}, nil
}
