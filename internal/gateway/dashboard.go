package gateway

import "context"

// countResponse is the wire shape of the admin activity-log count endpoints
type countResponse struct {
	Count int `json:"count"`
}

// CountStudents returns the total number of registered students
func (c *Client) CountStudents(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, "/admin/stats/students")
}

// CountCheckInsToday returns the number of check-ins recorded today
func (c *Client) CountCheckInsToday(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, "/admin/stats/check-ins")
}

// CountPhotosToday returns the number of meal photos uploaded today
func (c *Client) CountPhotosToday(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, "/admin/stats/photos")
}

// CountExchangesToday returns the number of product exchanges today
func (c *Client) CountExchangesToday(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, "/admin/stats/exchanges")
}

// CountPointsAwardedToday returns the points awarded today across all students
func (c *Client) CountPointsAwardedToday(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, "/admin/stats/points")
}

func (c *Client) fetchCount(ctx context.Context, path string) (int, error) {
	var resp countResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
