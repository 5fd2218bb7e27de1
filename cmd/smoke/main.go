// Command smoke walks a running server through the main learning flow:
// register, create a path, evaluate the first topic, then chat.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) send(method, path string, body interface{}) (*envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out envelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s %s: status %s, undecodable body: %w", method, path, resp.Status, err)
	}
	if resp.StatusCode >= 300 {
		return &out, fmt.Errorf("%s %s: status %s: %s", method, path, resp.Status, out.Message)
	}
	return &out, nil
}

func step(title string, fn func() error) {
	color.Yellow("\n%s", title)
	if err := fn(); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("OK")
}

func prettyPrint(raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(buf.String())
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:3000/api", "API base URL")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 2 * time.Minute}}
	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	password := "smoke-password"

	color.Cyan("Starting learning flow smoke test against %s", *baseURL)

	step("1. Register and login", func() error {
		if _, err := c.send(http.MethodPost, "/auth/register", map[string]string{
			"full_name": "Smoke Test", "email": email, "password": password,
		}); err != nil {
			return err
		}
		res, err := c.send(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
		if err != nil {
			return err
		}
		var login struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(res.Data, &login); err != nil {
			return err
		}
		c.token = login.AccessToken
		return nil
	})

	var pathId string
	step("2. Create a learning path", func() error {
		res, err := c.send(http.MethodPost, "/paths", map[string]interface{}{
			"domain": "Go",
			"items": []map[string]interface{}{
				{"topic": "Syntax", "duration": 2},
				{"topic": "Concurrency", "duration": 3},
			},
		})
		if err != nil {
			return err
		}
		var path struct {
			Id string `json:"id"`
		}
		if err := json.Unmarshal(res.Data, &path); err != nil {
			return err
		}
		pathId = path.Id
		prettyPrint(res.Data)
		return nil
	})

	step("3. Generate an assessment for topic 0", func() error {
		res, err := c.send(http.MethodPost, "/paths/"+pathId+"/assessment?topicIndex=0", nil)
		if err != nil {
			return err
		}
		prettyPrint(res.Data)
		return nil
	})

	step("4. Evaluate topic 0", func() error {
		res, err := c.send(http.MethodPost, "/paths/"+pathId+"/assessment/evaluate?topicIndex=0", map[string]interface{}{
			"answers": []map[string]string{
				{"question": "What keyword declares a function?", "correctAnswer": "func", "userAnswer": "func"},
			},
		})
		if err != nil {
			return err
		}
		prettyPrint(res.Data)
		return nil
	})

	step("5. Chat with the tutor", func() error {
		res, err := c.send(http.MethodPost, "/ai/chat", map[string]interface{}{
			"messages": []map[string]string{{"role": "user", "content": "Explain goroutines in one sentence."}},
		})
		if err != nil {
			return err
		}
		prettyPrint(res.Data)
		return nil
	})

	color.Cyan("\nSmoke test finished")
}
