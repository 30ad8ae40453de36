package planilha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetsClient lê valores de uma planilha de recebimento no Google Sheets.
type SheetsClient struct {
	apiKey string
	http   *http.Client
}

func NewSheetsClient(apiKey string) *SheetsClient {
	return &SheetsClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

type valoresResponse struct {
	Values [][]string `json:"values"`
}

// Valores devolve as linhas do intervalo pedido (cabeçalho incluído).
func (c *SheetsClient) Valores(ctx context.Context, planilhaID, intervalo string) ([][]string, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SHEETS_API_KEY não configurada")
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s?key=%s",
		sheetsBaseURL,
		url.PathEscape(planilhaID),
		url.PathEscape(intervalo),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar a planilha %s: %w", planilhaID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planilha %s: resposta %s", planilhaID, resp.Status)
	}

	var body valoresResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a planilha %s: %w", planilhaID, err)
	}
	return body.Values, nil
}
