package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/engine"
)

// Client talks to the REST surface of a running daemon, used by the
// command line interface to deliver operator commands.
type Client struct {
	baseUrl string
	client  *http.Client
}

func NewClient(config configuration.ApiConfig) *Client {
	return &Client{
		baseUrl: fmt.Sprintf("http://%s:%d", config.Host, config.Port),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) Status() (status engine.Status, err error) {
	response, err := c.client.Get(c.baseUrl + "/status/")
	if err != nil {
		return status, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return status, fmt.Errorf("unexpected response: %s", response.Status)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return status, err
	}
	err = json.Unmarshal(data, &status)
	return status, err
}

func (c *Client) SetSpeed(level string) error {
	return c.post(fmt.Sprintf("/speed/%s/", level))
}

func (c *Client) SetAuto() error {
	return c.post("/mode/auto/")
}

func (c *Client) StartTest() error {
	return c.post("/test/")
}

func (c *Client) post(path string) error {
	response, err := c.client.Post(c.baseUrl+path, "application/json", nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(response.Body)
		var result Result
		if json.Unmarshal(data, &result) == nil && len(result.Message) > 0 {
			return fmt.Errorf("%s", result.Message)
		}
		return fmt.Errorf("unexpected response: %s", response.Status)
	}
	return nil
}
