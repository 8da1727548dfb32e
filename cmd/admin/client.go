package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type contactView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Service     string  `json:"service"`
	Message     string  `json:"message"`
	SubmittedAt string  `json:"submittedAt"`
	Status      string  `json:"status"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func login(apiURL, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Post(apiURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if !envelope.Success {
		return "", fmt.Errorf("login failed: %s", envelope.Message)
	}
	return envelope.Data, nil
}

func fetchContacts(apiURL, token string) ([]contactView, string, error) {
	req, err := http.NewRequest(http.MethodGet, apiURL+"/api/contacts", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("backend responded with %s", resp.Status)
	}

	var envelope struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    []contactView `json:"data"`
		Source  string        `json:"source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, "", fmt.Errorf("failed to decode contacts response: %w", err)
	}
	if !envelope.Success {
		return nil, "", fmt.Errorf("listing failed: %s", envelope.Message)
	}
	return envelope.Data, envelope.Source, nil
}
