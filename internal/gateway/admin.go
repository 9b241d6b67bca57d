package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListStudents fetches one page of the admin member table. page is 1-based on
// the client; the wire protocol uses a zero-based page index. filterKey names
// the search column (e.g. "name"); an empty filterKey disables filtering.
func (c *Client) ListStudents(ctx context.Context, page, size int, filterKey, filterValue string) (Page[Student], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page-1))
	query.Set("size", strconv.Itoa(size))
	if filterKey != "" {
		query.Set(filterKey, filterValue)
	}

	data, err := c.do(ctx, http.MethodGet, "/admin/students", query, nil)
	if err != nil {
		return Page[Student]{}, fmt.Errorf("student list fetch failed: %w", err)
	}
	return decodePage[Student](data, page, size, c.serverPaginates)
}

// UpdateStudentProfile sends a student's editable fields and returns the
// server's echoed representation of the row
func (c *Client) UpdateStudentProfile(ctx context.Context, id int64, update *StudentProfileUpdate) (*Student, error) {
	var student Student
	path := fmt.Sprintf("/admin/students/%d/profile", id)
	if err := c.put(ctx, path, update, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteStudent removes a student account
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/students/%d", id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("student delete failed: %w", err)
	}
	return nil
}

// ListProducts fetches one page of the admin product table
func (c *Client) ListProducts(ctx context.Context, page, size int, filterKey, filterValue string) (Page[Product], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page-1))
	query.Set("size", strconv.Itoa(size))
	if filterKey != "" {
		query.Set(filterKey, filterValue)
	}

	data, err := c.do(ctx, http.MethodGet, "/admin/products", query, nil)
	if err != nil {
		return Page[Product]{}, fmt.Errorf("product list fetch failed: %w", err)
	}
	return decodePage[Product](data, page, size, c.serverPaginates)
}

// CreateProduct registers a new shop product
func (c *Client) CreateProduct(ctx context.Context, update *ProductUpdate) (*Product, error) {
	var product Product
	if err := c.post(ctx, "/admin/products", update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct sends a product's editable fields and returns the server echo
func (c *Client) UpdateProduct(ctx context.Context, id int64, update *ProductUpdate) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/admin/products/%d", id)
	if err := c.put(ctx, path, update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a shop product
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/products/%d", id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("product delete failed: %w", err)
	}
	return nil
}
