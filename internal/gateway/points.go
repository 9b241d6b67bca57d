package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
)

// CheckIn performs the daily check-in. The server enforces the once-per-day
// rule and reports a conflict when the student has already checked in.
func (c *Client) CheckIn(ctx context.Context) (*CheckInResult, error) {
	var result CheckInResult
	if err := c.post(ctx, "/points/check-in", nil, &result); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyCheckedIn, errMessage(err))
		}
		return nil, err
	}
	return &result, nil
}

// UploadMealPhoto uploads a meal photo for classification. The server runs
// the AI classifier and returns the awarded points.
func (c *Client) UploadMealPhoto(ctx context.Context, filename string, photo io.Reader) (*MealPhotoResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("photo", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	data, err := c.doMultipart(ctx, "/meals/photo", writer.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var result MealPhotoResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrMalformedResponse, "")
	}
	return &result, nil
}

// ListShopProducts fetches one page of the points shop
func (c *Client) ListShopProducts(ctx context.Context, page, size int) (Page[Product], error) {
	return c.ListProducts(ctx, page, size, "", "")
}

// ExchangeProduct exchanges points for a product. Balance validation happens
// server-side; an insufficient balance surfaces as a conflict.
func (c *Client) ExchangeProduct(ctx context.Context, productID int64) (*ExchangeResult, error) {
	var result ExchangeResult
	path := fmt.Sprintf("/shop/exchange/%d", productID)
	if err := c.post(ctx, path, nil, &result); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewCustomError(apperrors.ErrInsufficientPoints, errMessage(err))
		}
		return nil, err
	}
	return &result, nil
}

// errMessage extracts the user-facing message from a gateway error, if any
func errMessage(err error) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return ""
}
