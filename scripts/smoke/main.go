// Command smoke exercises a running grievance-desk instance end to end:
// login, list, stats and export. It is meant for post-deploy verification
// and exits nonzero when any critical check fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type check struct {
	Name     string
	Method   string
	Path     string
	WantCode int
	Critical bool
	Validate func(body []byte) error
}

type result struct {
	Check    check
	Status   int
	Duration time.Duration
	Err      error
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func main() {
	var (
		base     string
		email    string
		password string
		timeout  time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&email, "email", "", "login email")
	flag.StringVar(&password, "password", "", "login password")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	if email == "" || password == "" {
		log.Fatal("both -email and -password are required")
	}

	client := &http.Client{Timeout: timeout}
	base = strings.TrimRight(base, "/")

	token, err := login(client, base, email, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	checks := []check{
		{Name: "health", Method: http.MethodGet, Path: "/health", WantCode: http.StatusOK, Critical: true},
		{Name: "list grievances", Method: http.MethodGet, Path: "/api/v1/grievances", WantCode: http.StatusOK, Critical: true, Validate: hasData},
		{Name: "filtered list", Method: http.MethodGet, Path: "/api/v1/grievances?status=all&priority=all", WantCode: http.StatusOK, Critical: false, Validate: hasData},
		{Name: "stats overview", Method: http.MethodGet, Path: "/api/v1/stats/overview", WantCode: http.StatusOK, Critical: true, Validate: hasStatsTotal},
		{Name: "csv export", Method: http.MethodGet, Path: "/api/v1/grievances/export", WantCode: http.StatusOK, Critical: false, Validate: looksLikeCSV},
		{Name: "current account", Method: http.MethodGet, Path: "/api/v1/auth/me", WantCode: http.StatusOK, Critical: false, Validate: hasData},
	}

	var failures int
	results := make([]result, 0, len(checks))
	for _, c := range checks {
		res := run(client, base, token, c)
		if res.Err != nil && c.Critical {
			failures++
		}
		results = append(results, res)
	}

	printReport(results)
	if failures > 0 {
		fmt.Printf("critical failures: %d\n", failures)
		os.Exit(1)
	}
}

func login(client *http.Client, base, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := client.Post(base+"/api/v1/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", err
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return data.AccessToken, nil
}

func run(client *http.Client, base, token string, c check) result {
	res := result{Check: c}

	req, err := http.NewRequest(c.Method, base+c.Path, nil)
	if err != nil {
		res.Err = err
		return res
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if resp.StatusCode != c.WantCode {
		res.Err = fmt.Errorf("want status %d, got %d", c.WantCode, resp.StatusCode)
		return res
	}

	if c.Validate != nil {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			res.Err = fmt.Errorf("read body: %w", err)
			return res
		}
		res.Err = c.Validate(body)
	}
	return res
}

func hasData(body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Error != nil {
		return fmt.Errorf("envelope carries error: %v", env.Error)
	}
	return nil
}

func hasStatsTotal(body []byte) error {
	if err := hasData(body); err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	var stats struct {
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	if stats.Total == nil {
		return fmt.Errorf("stats payload has no total")
	}
	return nil
}

func looksLikeCSV(body []byte) error {
	header, _, _ := strings.Cut(string(body), "\n")
	if !strings.HasPrefix(header, "id,") {
		return fmt.Errorf("unexpected csv header: %q", header)
	}
	return nil
}

func printReport(results []result) {
	fmt.Println("Smoke Check Report")
	fmt.Println("==================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s (%d, %s)\n", status, res.Check.Method, res.Check.Path, res.Status, res.Duration)
		if res.Err != nil {
			fmt.Printf("  %v\n", res.Err)
		}
	}
}
