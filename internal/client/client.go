// ABOUTME: REST client for the engine control API
// ABOUTME: Typed methods over the /v1 endpoints with JSON error mapping
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Binaural-Lab/binaural-go/internal/version"
)

// DefaultTimeout bounds each request unless overridden in New.
const DefaultTimeout = 5 * time.Second

// Client talks to one engine's control API.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the engine at addr (host:port). A zero timeout
// falls back to DefaultTimeout.
func New(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: "http://" + addr,
		http: &http.Client{Timeout: timeout},
	}
}

// Status fetches the current engine snapshot.
func (c *Client) Status() (Snapshot, error) {
	var snap Snapshot
	err := c.do(http.MethodGet, "/v1/state", nil, &snap)
	return snap, err
}

// Start begins playback.
func (c *Client) Start() (Snapshot, error) {
	return c.playback("start")
}

// Stop ends playback and resets the session timer.
func (c *Client) Stop() (Snapshot, error) {
	return c.playback("stop")
}

// Pause ends playback, keeping the session timer.
func (c *Client) Pause() (Snapshot, error) {
	return c.playback("pause")
}

// Toggle starts playback when idle and pauses it when running.
func (c *Client) Toggle() (Snapshot, error) {
	return c.playback("toggle")
}

func (c *Client) playback(action string) (Snapshot, error) {
	var snap Snapshot
	err := c.do(http.MethodPost, "/v1/playback/"+action, nil, &snap)
	return snap, err
}

// SetCarrier retunes the carrier frequency.
func (c *Client) SetCarrier(hz float64) (Snapshot, error) {
	return c.putHz("/v1/carrier", hz)
}

// SetBeat retunes the beat frequency.
func (c *Client) SetBeat(hz float64) (Snapshot, error) {
	return c.putHz("/v1/beat", hz)
}

func (c *Client) putHz(path string, hz float64) (Snapshot, error) {
	body := struct {
		Hz float64 `json:"hz"`
	}{Hz: hz}
	var snap Snapshot
	err := c.do(http.MethodPut, path, body, &snap)
	return snap, err
}

// SetVolume sets the output volume (0-100).
func (c *Client) SetVolume(percent float64) (Snapshot, error) {
	body := struct {
		Percent float64 `json:"percent"`
	}{Percent: percent}
	var snap Snapshot
	err := c.do(http.MethodPut, "/v1/volume", body, &snap)
	return snap, err
}

// SetBand snaps the beat to a brainwave band. Unknown names surface as an
// error from the server.
func (c *Client) SetBand(name string) (ApplyResult, error) {
	var result ApplyResult
	err := c.do(http.MethodPost, "/v1/band/"+url.PathEscape(name), nil, &result)
	return result, err
}

// Bands lists the brainwave bands.
func (c *Client) Bands() ([]Band, error) {
	var result struct {
		Bands []Band `json:"bands"`
	}
	err := c.do(http.MethodGet, "/v1/bands", nil, &result)
	return result.Bands, err
}

// SetPreset applies a named preset. Unknown names report Applied=false
// without an error.
func (c *Client) SetPreset(name string) (ApplyResult, error) {
	var result ApplyResult
	err := c.do(http.MethodPost, "/v1/preset/"+url.PathEscape(name), nil, &result)
	return result, err
}

// Presets lists the available presets.
func (c *Client) Presets() ([]Preset, error) {
	var result struct {
		Presets []Preset `json:"presets"`
	}
	err := c.do(http.MethodGet, "/v1/presets", nil, &result)
	return result.Presets, err
}

// do sends one request and decodes the response into out. Error bodies
// from the API are unwrapped into their message.
func (c *Client) do(method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach engine at %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
