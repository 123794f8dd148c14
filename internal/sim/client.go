package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client the simulator uses to talk to the dispatch API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the dispatch API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// DriverState is one entry of the heartbeat batch.
type DriverState struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

// ReportLocations POSTs the heartbeat batch for the whole fleet.
func (c *Client) ReportLocations(ctx context.Context, drivers []DriverState) error {
	return c.post(ctx, "/api/driver-locations", map[string]any{"drivers": drivers}, nil)
}

type missionResponse struct {
	OrderID   string `json:"orderId"`
	Warehouse struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"warehouse"`
	Customer struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"customer"`
}

// GetMission fetches the driver's current mission briefing.
// Returns ok=false when the driver has never been assigned.
func (c *Client) GetMission(ctx context.Context, driverID string) (Mission, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/missions/"+driverID, nil)
	if err != nil {
		return Mission{}, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Mission{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Mission{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Mission{}, false, fmt.Errorf("get mission: unexpected status %d", resp.StatusCode)
	}

	var mr missionResponse
	if err = json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return Mission{}, false, err
	}

	return Mission{
		OrderID:  mr.OrderID,
		Staging:  Target{Lat: mr.Warehouse.Lat, Lng: mr.Warehouse.Lng},
		Customer: Target{Lat: mr.Customer.Lat, Lng: mr.Customer.Lng},
	}, true, nil
}

// FinishOrder reports a completed delivery.
func (c *Client) FinishOrder(ctx context.Context, orderID, driverID string) error {
	return c.post(ctx, "/api/orders/finish", map[string]string{
		"orderId":  orderID,
		"driverId": driverID,
	}, nil)
}

// ReportRoute publishes the straight-line path a driver is about to drive.
func (c *Client) ReportRoute(ctx context.Context, driverID, orderID, routeType string, path []Target) error {
	points := make([]map[string]float64, 0, len(path))
	for _, p := range path {
		points = append(points, map[string]float64{"lat": p.Lat, "lng": p.Lng})
	}

	return c.post(ctx, "/api/routes", map[string]any{
		"driverId": driverID,
		"orderId":  orderID,
		"type":     routeType,
		"path":     points,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, msg)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
