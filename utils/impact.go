package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// request/response payloads for the Gemini generateContent API
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// ImpactMessage asks Gemini for a short thank-you line for a donor who
// sponsored treeCount trees. Any failure falls back to a canned message;
// submission never fails because of this call.
func ImpactMessage(ctx context.Context, treeCount int) string {
	fallback := fmt.Sprintf("Amazing work! Your %d trees will help restore our natural ecosystem.", treeCount)

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fallback
	}

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = defaultGeminiURL
	}

	prompt := fmt.Sprintf(
		"Generate a short, enthusiastic one-sentence thank you message for someone who just sponsored %d trees for a re-greening project. Focus on the environmental impact. Keep it under 20 words.",
		treeCount,
	)

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal Gemini payload: %v", err)
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("Failed to create Gemini request: %v", err)
		return fallback
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini returned status %s", resp.Status)
		return fallback
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("Failed to decode Gemini response: %v", err)
		return fallback
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return fallback
	}
	return out.Candidates[0].Content.Parts[0].Text
}
