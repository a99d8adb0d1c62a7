package powerautomate

import (
	"context"
	"fmt"
)

// environmentsService implements the EnvironmentsService interface.
type environmentsService struct {
	*service
}

// NewEnvironmentsService initializes a new environments service.
func NewEnvironmentsService(client *Client) EnvironmentsService {
	return &environmentsService{service: &service{client}}
}

// List retrieves the environments visible to the token, in response order.
func (es *environmentsService) List(ctx context.Context) ([]Environment, error) {
	const op = "list environments"
	es.client.Logger.Debug("fetching list of environments")

	response, err := es.client.get(ctx, "")
	if err != nil {
		return nil, &FaultError{Op: op, Err: fmt.Errorf("error fetching environments: %w", err)}
	}

	if !response.IsSuccess() {
		return nil, &APIError{
			Kind:       EnvironmentListFailed,
			StatusCode: response.StatusCode(),
			Body:       string(response.Body()),
		}
	}

	resources, err := decodeList[environmentResource](op, response)
	if err != nil {
		return nil, err
	}

	result := make([]Environment, 0, len(resources))
	for i, r := range resources {
		if !r.Name.Present {
			return nil, &FaultError{Op: op, Err: fmt.Errorf("environment at index %d has no name", i)}
		}
		result = append(result, Environment{Name: r.Name.Value})
	}

	es.client.Logger.Debug("successfully fetched all environments", "totalEnvironments", len(result))
	return result, nil
}
