package endpoint

import (
	"context"

	"github.com/RassulYunussov/msclient/microservice"
)

// DrugTraffickingEndpoint exposes the routes of the DrugTrafficking microservice
type DrugTraffickingEndpoint struct {
	client *Client
}

func NewDrugTraffickingEndpoint(client *Client) *DrugTraffickingEndpoint {
	return &DrugTraffickingEndpoint{client: client}
}

// GET /api/DrugTrafficking
func (e *DrugTraffickingEndpoint) DrugTrafficking(ctx context.Context) (*ApiResponse[string], error) {
	return e.client.Invoke(ctx, microservice.DrugTrafficking, microservice.DrugTraffickingRoute, nil)
}
