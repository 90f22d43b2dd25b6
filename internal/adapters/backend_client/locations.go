package backend_client

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/core/domain"
)

func (c *Client) GetCities(ctx context.Context) ([]domain.City, error) {
	var dtos []cityDTO
	if err := c.getJSON(ctx, "GetCities", "/api/cities", true, &dtos); err != nil {
		return nil, err
	}
	cities := make([]domain.City, len(dtos))
	for i, d := range dtos {
		cities[i] = domain.City{ID: int(d.ID), Name: d.Name}
	}
	return cities, nil
}

func (c *Client) GetNeighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error) {
	var dtos []neighborhoodDTO
	if err := c.getJSON(ctx, "GetNeighborhoods", fmt.Sprintf("/api/neighborhoods/%d", cityID), true, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Neighborhood, len(dtos))
	for i, d := range dtos {
		out[i] = domain.Neighborhood{ID: int(d.ID), Name: d.Name, CityID: int(d.CityID)}
		if out[i].CityID == 0 {
			out[i].CityID = cityID
		}
	}
	return out, nil
}

func (c *Client) GetFinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error) {
	var dtos []finalCityDTO
	if err := c.getJSON(ctx, "GetFinalCities", fmt.Sprintf("/api/finalCity/%d", neighborhoodID), true, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.FinalCity, len(dtos))
	for i, d := range dtos {
		out[i] = domain.FinalCity{ID: int(d.ID), Name: d.Name, NeighborhoodID: int(d.NeighborhoodID)}
		if out[i].NeighborhoodID == 0 {
			out[i].NeighborhoodID = neighborhoodID
		}
	}
	return out, nil
}
