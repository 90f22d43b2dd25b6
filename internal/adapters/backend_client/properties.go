package backend_client

import (
	"context"
	"fmt"

	"real-estate-marketplace/internal/core/domain"
)

func (c *Client) GetPropertiesByFinalType(ctx context.Context, finalTypeID int) ([]domain.DynamicProperty, error) {
	var dtos []dynamicPropertyDTO
	path := fmt.Sprintf("/api/properties/final-type/%d", finalTypeID)
	if err := c.getJSON(ctx, "GetPropertiesByFinalType", path, true, &dtos); err != nil {
		return nil, err
	}

	props := make([]domain.DynamicProperty, 0, len(dtos))
	for _, d := range dtos {
		p := d.toDomain()
		if p.FinalTypeID == 0 {
			p.FinalTypeID = finalTypeID
		}
		props = append(props, p)
	}
	return props, nil
}

func (c *Client) GetPropertyGroups(ctx context.Context, finalTypeID int) ([]domain.PropertyGroupInfo, error) {
	var dtos []propertyGroupDTO
	path := fmt.Sprintf("/api/properties/groups/%d", finalTypeID)
	if err := c.getJSON(ctx, "GetPropertyGroups", path, true, &dtos); err != nil {
		return nil, err
	}

	groups := make([]domain.PropertyGroupInfo, len(dtos))
	for i, d := range dtos {
		name := d.GroupName
		if name == "" {
			name = domain.DefaultGroupName
		}
		groups[i] = domain.PropertyGroupInfo{Name: name, PropertyCount: int(d.Count.GroupName)}
	}
	return groups, nil
}
