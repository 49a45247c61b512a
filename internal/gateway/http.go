// Package gateway provides the HTTP implementation of the grid engine's
// remote contract, speaking the API's JSON envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
)

type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode)
	}

	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%s %s: %s", method, path, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (g *HTTPGateway) ListPersons(ctx context.Context, filter string) ([]domain.Person, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("q", filter)
	}

	persons := []domain.Person{}
	if err := g.do(ctx, http.MethodGet, "/persons", query, nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (g *HTTPGateway) ListCalendarDays(ctx context.Context, from, to string) ([]string, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	days := []string{}
	if err := g.do(ctx, http.MethodGet, "/calendar", query, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (g *HTTPGateway) ListLegendCodes(ctx context.Context) ([]domain.LegendCode, error) {
	codes := []domain.LegendCode{}
	if err := g.do(ctx, http.MethodGet, "/legend", nil, nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (g *HTTPGateway) ListScheduleCells(ctx context.Context, personKeys []string, from, to string) ([]domain.ScheduleCell, error) {
	if len(personKeys) == 0 {
		return []domain.ScheduleCell{}, nil
	}

	query := url.Values{}
	query.Set("keys", strings.Join(personKeys, ","))
	query.Set("from", from)
	query.Set("to", to)

	cells := []domain.ScheduleCell{}
	if err := g.do(ctx, http.MethodGet, "/schedule/cells", query, nil, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

func (g *HTTPGateway) SaveScheduleCells(ctx context.Context, items []domain.ScheduleCell) (domain.SaveResult, error) {
	body := map[string]any{"items": items}

	result := domain.SaveResult{}
	if err := g.do(ctx, http.MethodPost, "/schedule/cells", nil, body, &result); err != nil {
		return domain.SaveResult{}, err
	}
	return result, nil
}

func (g *HTTPGateway) DeleteScheduleCell(ctx context.Context, personKey, date string) (int, error) {
	path := fmt.Sprintf("/schedule/cells/%s/%s", url.PathEscape(personKey), url.PathEscape(date))

	out := struct {
		Deleted int `json:"deleted"`
	}{}
	if err := g.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}
