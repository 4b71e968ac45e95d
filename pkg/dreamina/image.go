package dreamina

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

const generationsPath = "/v1/images/generations"

// ImageService provides image generation operations.
type ImageService struct {
	client *Client
}

// newImageService creates a new image service.
func newImageService(client *Client) *ImageService {
	return &ImageService{client: client}
}

// Generate submits one generation request and returns the image URLs the
// gateway answered with. Entries without a url are skipped.
//
// The call is bounded by the client timeout (600s by default) and is never
// retried.
//
// Example:
//
//	resp, err := client.Image.Generate(ctx, &dreamina.GenerateRequest{
//	    Prompt: "a red apple",
//	    Ratio:  dreamina.Ratio1x1,
//	})
func (s *ImageService) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil || req.Prompt == "" {
		return nil, errors.New("dreamina: prompt is required")
	}

	body := *req
	if body.Ratio == "" {
		body.Ratio = DefaultRatio
	}
	if !body.Ratio.Valid() {
		return nil, fmt.Errorf("dreamina: unsupported ratio %q", body.Ratio)
	}
	if body.ResponseFormat == "" {
		body.ResponseFormat = ResponseFormatURL
	}

	ctx, cancel := context.WithTimeout(ctx, s.client.config.timeout)
	defer cancel()

	requestID := uuid.NewString()
	data, err := s.client.http.request(ctx, http.MethodPost, generationsPath, requestID, &body)
	if err != nil {
		return nil, err
	}

	urls, err := parseImageURLs(data)
	if err != nil {
		return nil, err
	}

	images := make([]ImageData, len(urls))
	for i, u := range urls {
		images[i] = ImageData{URL: u}
	}

	return &GenerateResponse{
		Images:    images,
		RequestID: requestID,
	}, nil
}

// parseImageURLs extracts data[].url from a generation response body.
// A missing or non-list "data" is ErrUnexpectedResponse; a null one is an
// empty result.
func parseImageURLs(body []byte) ([]string, error) {
	var envelope map[string]json.RawMessage
	if err := decodeJSON(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, truncateRunes(string(body), maxErrorBodyRunes))
	}

	raw, ok := envelope["data"]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, truncateRunes(string(body), maxErrorBodyRunes))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: data is not a list", ErrUnexpectedResponse)
	}

	urls := make([]string, 0, len(items))
	for _, item := range items {
		var entry struct {
			URL any `json:"url"`
		}
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		if u, ok := entry.URL.(string); ok && u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
