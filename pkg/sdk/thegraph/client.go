package thegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a minimal GraphQL client for The Graph hosted subgraphs.
type Client struct {
	client *http.Client
}

func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{client: client}
}

type graphRequest struct {
	Query string `json:"query"`
}

type graphResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query posts a GraphQL query to the given subgraph endpoint and unmarshals
// the data payload into out.
func (c *Client) Query(ctx context.Context, endpoint, query string, out any) error {
	payload, err := json.Marshal(graphRequest{Query: query})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request do: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var gr graphResponse
	if err = json.Unmarshal(body, &gr); err != nil {
		return fmt.Errorf("unmarshal body: %w", err)
	}

	if len(gr.Errors) > 0 {
		return fmt.Errorf("graphql: %s", gr.Errors[0].Message)
	}

	if err = json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
