package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"localrag/types"

	"github.com/pkoukk/tiktoken-go"
)

// Generator produces a single-shot answer for a composed prompt.
type Generator interface {
	Generate(context, question string) (string, error)
}

// OllamaGenerator submits prompts to Ollama's generate endpoint. No
// retry and no timeout: a stalled model call blocks the request, which
// is the intended fail-fast behaviour.
type OllamaGenerator struct {
	apiURL string
	model  string
}

type GenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

func NewOllamaGenerator(cfg types.LLMConfig) *OllamaGenerator {
	return &OllamaGenerator{
		apiURL: cfg.GenerateURL,
		model:  cfg.GenerateModel,
	}
}

func (g *OllamaGenerator) Generate(context, question string) (string, error) {
	start := time.Now()
	defer func() {
		log.Printf("[LLM] answer took %v", time.Since(start))
	}()

	prompt := fmt.Sprintf(`Answer the question based only on the following context. If the context is empty or does not contain the information, answer 'No information for this request'. Nothing else.
Context:
%s
Question:
%s
Answer:`, context, question)

	reqBody, err := json.Marshal(GenerateRequest{
		Model:  g.model,
		System: "You are an assistant answering strictly from the provided context. Answer clearly and to the point, without introductions.",
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if count, err := CountTokens(reqBody); err == nil {
		log.Printf("[LLM] prompt size: %d tokens, %d bytes", count, len(reqBody))
	}

	resp, err := http.Post(g.apiURL, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to reach LLM: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("LLM error: status %d, body: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err == nil && genResp.Response != "" {
		return genResp.Response, nil
	}

	// Streamed body: concatenate the NDJSON fragments.
	var output string
	decoder := json.NewDecoder(bytes.NewReader(body))
	for decoder.More() {
		var chunk GenerateResponse
		if err := decoder.Decode(&chunk); err != nil {
			break
		}
		output += chunk.Response
	}
	return output, nil
}

// CountTokens sizes a payload with a tiktoken encoding compatible with
// most local models; used for logging only.
func CountTokens(data []byte) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	tokens := enc.Encode(string(data), nil, nil)
	return len(tokens), nil
}
