package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchSchools queries the school directory by name and level
func (c *Client) SearchSchools(ctx context.Context, name, level string) ([]SchoolRecord, error) {
	query := url.Values{}
	query.Set("schoolName", name)
	query.Set("schoolLevel", level)

	var schools []SchoolRecord
	if err := c.get(ctx, "/school-search", query, &schools); err != nil {
		return nil, fmt.Errorf("school search failed: %w", err)
	}
	return schools, nil
}

// ListMajors fetches the major options offered by a school
func (c *Client) ListMajors(ctx context.Context, educationOfficeCode, schoolCode string) ([]SelectionOption, error) {
	query := url.Values{}
	query.Set("educationOfficeCode", educationOfficeCode)
	query.Set("schoolCode", schoolCode)

	var majors []SelectionOption
	if err := c.get(ctx, "/school-search/majors", query, &majors); err != nil {
		return nil, fmt.Errorf("major lookup failed: %w", err)
	}
	return majors, nil
}

// ListClasses fetches the class options for a school, grade and major
func (c *Client) ListClasses(ctx context.Context, educationOfficeCode, schoolCode string, grade int, majorName string) ([]SelectionOption, error) {
	query := url.Values{}
	query.Set("educationOfficeCode", educationOfficeCode)
	query.Set("schoolCode", schoolCode)
	query.Set("grade", strconv.Itoa(grade))
	query.Set("majorName", majorName)

	var classes []SelectionOption
	if err := c.get(ctx, "/school-search/class-info", query, &classes); err != nil {
		return nil, fmt.Errorf("class lookup failed: %w", err)
	}
	return classes, nil
}
