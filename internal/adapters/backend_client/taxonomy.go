package backend_client

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/core/domain"
)

func (c *Client) GetMainTypes(ctx context.Context) ([]domain.MainType, error) {
	var dtos []mainTypeDTO
	if err := c.getJSON(ctx, "GetMainTypes", "/api/main-types", true, &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.MainType, len(dtos))
	for i, d := range dtos {
		mt := domain.MainType{ID: int(d.ID), Name: d.Name, Icon: d.Icon}
		for _, s := range d.SubTypes {
			sub := domain.SubType{ID: int(s.ID), Name: s.Name, MainID: int(s.MainID)}
			if sub.MainID == 0 {
				sub.MainID = mt.ID
			}
			mt.SubTypes = append(mt.SubTypes, sub)
		}
		out[i] = mt
	}
	return out, nil
}

func (c *Client) GetFinalTypes(ctx context.Context, subTypeID int) ([]domain.FinalType, error) {
	var dtos []finalTypeDTO
	if err := c.getJSON(ctx, "GetFinalTypes", fmt.Sprintf("/api/final-types/%d", subTypeID), true, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.FinalType, len(dtos))
	for i, d := range dtos {
		out[i] = domain.FinalType{ID: int(d.ID), Name: d.Name, SubID: int(d.SubID)}
		if out[i].SubID == 0 {
			out[i].SubID = subTypeID
		}
	}
	return out, nil
}
