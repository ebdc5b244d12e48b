// Package client is the HTTP implementation of the persistence collaborator,
// speaking the slot-service JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/appointease/slot-service/internal/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type slotWire struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	BookedBy        *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
		Notes string `json:"notes"`
	} `json:"booked_by"`
}

func (s slotWire) toModel() model.Slot {
	slot := model.Slot{
		ID:              s.ID,
		Date:            s.Date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Status:          model.SlotStatus(s.Status),
	}
	if s.BookedBy != nil {
		slot.BookedBy = &model.ClientInfo{
			Name:  s.BookedBy.Name,
			Email: s.BookedBy.Email,
			Phone: s.BookedBy.Phone,
			Notes: s.BookedBy.Notes,
		}
	}
	return slot
}

type slotWireRequest struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
}

func toWireRequest(desc model.SlotDescriptor) slotWireRequest {
	return slotWireRequest{
		Date:            desc.Date,
		StartTime:       desc.StartTime,
		EndTime:         desc.EndTime,
		Title:           desc.Title,
		Description:     desc.Description,
		DurationMinutes: desc.DurationMinutes,
	}
}

func (c *Client) FetchSlotsForDate(ctx context.Context, date string) ([]model.Slot, error) {
	q := url.Values{"date": {date}}
	var wire []slotWire
	if err := c.do(ctx, http.MethodGet, "/api/slots?"+q.Encode(), nil, &wire); err != nil {
		return nil, err
	}
	slots := make([]model.Slot, 0, len(wire))
	for _, s := range wire {
		slots = append(slots, s.toModel())
	}
	return slots, nil
}

func (c *Client) FetchMonthAvailability(ctx context.Context, year int, month time.Month) (map[string]model.DayAvailability, error) {
	q := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}
	var m map[string]model.DayAvailability
	if err := c.do(ctx, http.MethodGet, "/api/slots/availability?"+q.Encode(), nil, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Client) CreateSlot(ctx context.Context, desc model.SlotDescriptor) (model.Slot, error) {
	var wire slotWire
	if err := c.do(ctx, http.MethodPost, "/api/slots", toWireRequest(desc), &wire); err != nil {
		return model.Slot{}, err
	}
	return wire.toModel(), nil
}

func (c *Client) CreateSlotsBulk(ctx context.Context, descs []model.SlotDescriptor) ([]model.Slot, error) {
	body := struct {
		Slots []slotWireRequest `json:"slots"`
	}{Slots: make([]slotWireRequest, 0, len(descs))}
	for _, d := range descs {
		body.Slots = append(body.Slots, toWireRequest(d))
	}
	var wire []slotWire
	if err := c.do(ctx, http.MethodPost, "/api/slots/bulk", body, &wire); err != nil {
		return nil, err
	}
	slots := make([]model.Slot, 0, len(wire))
	for _, s := range wire {
		slots = append(slots, s.toModel())
	}
	return slots, nil
}

func (c *Client) DeleteSlot(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/slots/"+url.PathEscape(id), nil, nil)
}

func (c *Client) BookSlot(ctx context.Context, id string, client model.ClientInfo) error {
	body := struct {
		ClientName  string `json:"client_name"`
		ClientEmail string `json:"client_email"`
		ClientPhone string `json:"client_phone,omitempty"`
		Notes       string `json:"notes,omitempty"`
	}{
		ClientName:  client.Name,
		ClientEmail: client.Email,
		ClientPhone: client.Phone,
		Notes:       client.Notes,
	}
	return c.do(ctx, http.MethodPost, "/api/slots/"+url.PathEscape(id)+"/book", body, nil)
}

// do sends a request and decodes the API envelope, normalizing failures to
// the server's message field so callers surface one readable line.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 400 || !env.Success {
		if env.Message != "" {
			return errors.New(env.Message)
		}
		return fmt.Errorf("request failed (status %d)", resp.StatusCode)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
