// Package api is a thin REST client for the PlantKeeper server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
)

const apiPrefix = "/api/v1"

type Plant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Pot struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	PlantID   *int64    `json:"plantId,omitempty"`
	PlantName *string   `json:"plantName,omitempty"`
}

type Photo struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UploadURL string    `json:"uploadUrl,omitempty"`
	URL       string    `json:"url,omitempty"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for baseURL. token may be empty for register/login.
func New(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

// HTTPClient exposes the underlying client for direct uploads.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", credentials{email, password}, &out)
	return out.Token, err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{email, password}, &out)
	return out.Token, err
}

type linkRequest struct {
	PlantID int64 `json:"plantId"`
	PotID   int64 `json:"potId"`
}

func (c *Client) Link(ctx context.Context, plantID, potID int64) error {
	return c.do(ctx, http.MethodPost, "/link", linkRequest{plantID, potID}, nil)
}

func (c *Client) Unlink(ctx context.Context, plantID, potID int64) error {
	return c.do(ctx, http.MethodDelete, "/link", linkRequest{plantID, potID}, nil)
}

func (c *Client) CreatePlant(ctx context.Context, name string) (*Plant, error) {
	var p Plant
	if err := c.do(ctx, http.MethodPost, "/plants", map[string]string{"name": name}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListPlants(ctx context.Context) ([]Plant, error) {
	var list []Plant
	err := c.do(ctx, http.MethodGet, "/plants", nil, &list)
	return list, err
}

func (c *Client) CreatePot(ctx context.Context) (*Pot, error) {
	var p Pot
	if err := c.do(ctx, http.MethodPost, "/pots", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListPots(ctx context.Context) ([]Pot, error) {
	var list []Pot
	err := c.do(ctx, http.MethodGet, "/pots", nil, &list)
	return list, err
}

func (c *Client) RequestPhotoUpload(ctx context.Context, plantID int64) (*Photo, error) {
	var p Photo
	if err := c.do(ctx, http.MethodPost, photosPath(plantID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CompletePhoto(ctx context.Context, plantID, photoID int64) (*Photo, error) {
	var p Photo
	path := photosPath(plantID) + "/" + strconv.FormatInt(photoID, 10) + "/complete"
	if err := c.do(ctx, http.MethodPost, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListPhotos(ctx context.Context, plantID int64) ([]Photo, error) {
	var list []Photo
	err := c.do(ctx, http.MethodGet, photosPath(plantID), nil, &list)
	return list, err
}

func photosPath(plantID int64) string {
	return "/plants/" + strconv.FormatInt(plantID, 10) + "/photos"
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
		return &Error{Status: resp.StatusCode, Message: eb.Error, Field: eb.Field}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
