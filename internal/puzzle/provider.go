package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
)

const DefaultAPIURL = "https://marcconrad.com/uob/banana/api.php"

// Puzzle is one arithmetic picture puzzle. Solution stays a raw string;
// answers are compared without numeric coercion.
type Puzzle struct {
	ImageURL string
	Solution string
}

type Provider interface {
	FetchPuzzle(ctx context.Context) (*Puzzle, error)
}

type BananaProvider struct {
	apiURL string
	client *http.Client
}

func NewBananaProvider(apiURL string) *BananaProvider {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &BananaProvider{
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiResponse struct {
	Question string          `json:"question"`
	Solution json.RawMessage `json:"solution"`
}

func (p *BananaProvider) FetchPuzzle(ctx context.Context) (*Puzzle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?out=json", nil)
	if err != nil {
		return nil, apperrors.NewProviderError("Could not load puzzle", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError("Could not load puzzle", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderError("Could not load puzzle",
			fmt.Errorf("puzzle api returned status %d", resp.StatusCode))
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewProviderError("Could not load puzzle", err)
	}

	solution, err := decodeSolution(body.Solution)
	if err != nil || body.Question == "" {
		return nil, apperrors.NewProviderError("Could not load puzzle",
			fmt.Errorf("malformed puzzle api response: %v", err))
	}

	return &Puzzle{ImageURL: body.Question, Solution: solution}, nil
}

// decodeSolution accepts the solution both as a JSON number and as a JSON
// string, which is how the API has been observed to answer.
func decodeSolution(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing solution")
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return "", err
	}
	return asNumber.String(), nil
}
