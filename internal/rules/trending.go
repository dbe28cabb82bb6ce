package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// DefaultGitHubAPI is the public GitHub REST endpoint.
const DefaultGitHubAPI = "https://api.github.com"

// Trending asks GitHub for the most starred TypeScript repository. The name
// is fetched once per session; failed lookups are retried on the next input.
type Trending struct {
	client  *http.Client
	baseURL string

	mu   sync.Mutex
	repo string
}

func NewTrending(baseURL string, client *http.Client) *Trending {
	if baseURL == "" {
		baseURL = DefaultGitHubAPI
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Trending{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Repo returns the cached repository name, fetching it on first use.
func (t *Trending) Repo(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.repo != "" {
		return t.repo, nil
	}

	q := url.Values{}
	q.Set("q", "language:typescript")
	q.Set("sort", "stars")
	q.Set("order", "desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/search/repositories?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github search returned %s", resp.Status)
	}

	var result struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding github search: %w", err)
	}
	if len(result.Items) == 0 || result.Items[0].Name == "" {
		return "", fmt.Errorf("github search returned no repositories")
	}

	t.repo = result.Items[0].Name
	return t.repo, nil
}

// Validate reports whether the input names the trending repository.
func (t *Trending) Validate(ctx context.Context, input string) (bool, error) {
	repo, err := t.Repo(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(input), strings.ToLower(repo)), nil
}

// TrendingRule wraps t as the rule with the given id.
func TrendingRule(id int, t *Trending) Rule {
	return Rule{
		ID:          id,
		Description: "Include the current GitHub trending TypeScript repo name",
		Validator:   t.Validate,
	}
}
