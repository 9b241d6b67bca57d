package gateway

import (
	"encoding/json"
	"math"

	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
)

// Page is the normalized result of a server-paged endpoint.
// Page numbers are 1-based on the client; the wire format is 0-based.
type Page[T any] struct {
	Items         []T
	Page          int
	PageSize      int
	TotalPages    int
	TotalElements int
}

// pageEnvelope is the paginated wire shape
type pageEnvelope[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// decodePage normalizes the two response shapes paged endpoints are known to
// produce: a page envelope, or a bare list. The bare list is accepted only
// when the deployment is configured with serverPaginates=false; otherwise a
// non-envelope body is a malformed response rather than something to guess
// about. page is 1-based.
func decodePage[T any](data []byte, page, size int, serverPaginates bool) (Page[T], error) {
	if size <= 0 {
		size = 1
	}
	if page < 1 {
		page = 1
	}

	var envelope pageEnvelope[T]
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Content != nil {
		return Page[T]{
			Items:         envelope.Content,
			Page:          page,
			PageSize:      size,
			TotalPages:    envelope.TotalPages,
			TotalElements: envelope.TotalElements,
		}, nil
	}

	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		if serverPaginates {
			return Page[T]{}, apperrors.NewCustomError(apperrors.ErrMalformedResponse,
				"paged endpoint returned an unpaginated list")
		}
		// The server handed back the full list; page it locally. Page counts
		// derived this way are only as good as the list is complete.
		total := len(bare)
		totalPages := int(math.Ceil(float64(total) / float64(size)))
		if totalPages < 1 {
			totalPages = 1
		}
		start := (page - 1) * size
		end := start + size
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		return Page[T]{
			Items:         bare[start:end],
			Page:          page,
			PageSize:      size,
			TotalPages:    totalPages,
			TotalElements: total,
		}, nil
	}

	return Page[T]{}, apperrors.NewCustomError(apperrors.ErrMalformedResponse, "")
}
